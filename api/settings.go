package api

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownSetting is returned when a setting key is not recognized.
var ErrUnknownSetting = errors.New("unknown setting")

// Settings is the generator configuration shared by the parser and the
// materializer. It is a plain value: construct it with DefaultSettings and
// derive modified copies with Set, Toggle and Reset.
type Settings struct {
	// CreateEmptyFiles is kept for configuration compatibility. A file with
	// no resolved content is written empty whatever its value.
	CreateEmptyFiles bool `hcl:"create_empty_files,optional"`
	// CreateIntermediateDirectories allows a missing base directory to be created.
	CreateIntermediateDirectories bool `hcl:"create_intermediate_directories,optional"`
	// OverwriteExisting replaces files that already exist on disk.
	OverwriteExisting bool `hcl:"overwrite_existing,optional"`
	// ParseComments skips lines starting with // or # while parsing.
	ParseComments bool `hcl:"parse_comments,optional"`
	// IgnoreBlankLines skips blank lines while parsing.
	IgnoreBlankLines bool `hcl:"ignore_blank_lines,optional"`
	// FormatContent runs gofumpt / hclwrite over .go and .hcl content before writing.
	FormatContent bool `hcl:"format_content,optional"`
	// ValidateContent reports tree-sitter syntax errors in written content.
	ValidateContent bool `hcl:"validate_content,optional"`
}

// DefaultSettings returns the settings a fresh installation starts with.
func DefaultSettings() Settings {
	return Settings{
		CreateEmptyFiles:              true,
		CreateIntermediateDirectories: true,
		OverwriteExisting:             false,
		ParseComments:                 true,
		IgnoreBlankLines:              true,
		FormatContent:                 false,
		ValidateContent:               false,
	}
}

func (s *Settings) field(key string) (*bool, error) {
	switch key {
	case "create_empty_files":
		return &s.CreateEmptyFiles, nil
	case "create_intermediate_directories":
		return &s.CreateIntermediateDirectories, nil
	case "overwrite_existing":
		return &s.OverwriteExisting, nil
	case "parse_comments":
		return &s.ParseComments, nil
	case "ignore_blank_lines":
		return &s.IgnoreBlankLines, nil
	case "format_content":
		return &s.FormatContent, nil
	case "validate_content":
		return &s.ValidateContent, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSetting, key)
}

// Keys lists every setting key in sorted order.
func Keys() []string {
	keys := []string{
		"create_empty_files",
		"create_intermediate_directories",
		"overwrite_existing",
		"parse_comments",
		"ignore_blank_lines",
		"format_content",
		"validate_content",
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a setting by key.
func (s Settings) Get(key string) (bool, error) {
	p, err := s.field(key)
	if err != nil {
		return false, err
	}
	return *p, nil
}

// Set returns a copy of s with key set to value.
func (s Settings) Set(key string, value bool) (Settings, error) {
	p, err := s.field(key)
	if err != nil {
		return s, err
	}
	*p = value
	return s, nil
}

// Toggle returns a copy of s with key flipped.
func (s Settings) Toggle(key string) (Settings, error) {
	p, err := s.field(key)
	if err != nil {
		return s, err
	}
	*p = !*p
	return s, nil
}

// Reset returns the default settings. Kept as a method so callers can chain
// it the same way as Set and Toggle.
func (s Settings) Reset() Settings {
	return DefaultSettings()
}
