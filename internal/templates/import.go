package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"
)

var (
	// ErrScriptTemplates rejects template modules written as code. They are
	// never executed.
	ErrScriptTemplates = errors.New("JavaScript/TypeScript template files need to be manually added to your project")

	// ErrUnsupportedFormat is returned for files that are neither JSON nor YAML.
	ErrUnsupportedFormat = errors.New("unsupported template file format")
)

// Decode parses a template file into key → body pairs. The format is chosen
// by the extension of name: .json (ojg) or .yaml/.yml (yaml.v3). A non-empty
// selector is a JSONPath expression picking the object to import, e.g.
// "$.templates.nextjs".
func Decode(name string, data []byte, selector string) (map[string]string, error) {
	var doc any
	var err error
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".json":
		doc, err = oj.Parse(data)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &doc)
	default:
		if isScript(ext) {
			return nil, ErrScriptTemplates
		}
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(name), err)
	}

	if selector != "" {
		x, err := jp.ParseString(selector)
		if err != nil {
			return nil, fmt.Errorf("invalid jsonpath '%s': %w", selector, err)
		}
		results := x.Get(doc)
		if len(results) == 0 {
			return nil, fmt.Errorf("jsonpath '%s' matched nothing", selector)
		}
		doc = results[0]
	}

	return toEntries(doc)
}

// toEntries checks that doc is an object of strings.
func toEntries(doc any) (map[string]string, error) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("template file must contain an object, got %T", doc)
	}
	entries := make(map[string]string, len(obj))
	var bad []string
	for k, v := range obj {
		s, ok := v.(string)
		if !ok {
			bad = append(bad, k)
			continue
		}
		if err := ValidateKey(k); err != nil {
			return nil, err
		}
		entries[k] = s
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return nil, fmt.Errorf("template values must be strings: %s", strings.Join(bad, ", "))
	}
	return entries, nil
}

func isScript(ext string) bool {
	switch ext {
	case ".js", ".ts", ".mjs", ".cjs":
		return true
	}
	return false
}

// ReadFile decodes the template file at path.
func ReadFile(path, selector string) (map[string]string, error) {
	if isScript(strings.ToLower(filepath.Ext(path))) {
		return nil, ErrScriptTemplates
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read template file: %w", err)
	}
	return Decode(path, data, selector)
}
