// Package config locates and persists treegen's settings.
//
// Settings live as top-level HCL attributes in $TREEGEN_HOME/config.hcl:
//
//	overwrite_existing = true
//	parse_comments     = false
//
// Environment variables (optionally loaded from a .env file) override the
// file: TREEGEN_<KEY> with the key upper-cased, e.g. TREEGEN_OVERWRITE_EXISTING.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/joho/godotenv"

	"github.com/agentic-research/treegen/api"
)

const (
	// HomeEnv overrides the state directory.
	HomeEnv = "TREEGEN_HOME"

	envPrefix    = "TREEGEN_"
	configName   = "config.hcl"
	databaseName = "treegen.db"
)

// Paths are the files treegen keeps its state in.
type Paths struct {
	Home     string
	Config   string
	Database string
}

// PathsIn returns the state paths under home.
func PathsIn(home string) Paths {
	return Paths{
		Home:     home,
		Config:   filepath.Join(home, configName),
		Database: filepath.Join(home, databaseName),
	}
}

// DefaultPaths resolves $TREEGEN_HOME, falling back to ~/.treegen.
func DefaultPaths() (Paths, error) {
	if home := strings.TrimSpace(os.Getenv(HomeEnv)); home != "" {
		return PathsIn(home), nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return Paths{}, fmt.Errorf("resolve home directory: %w", err)
	}
	return PathsIn(filepath.Join(userHome, ".treegen")), nil
}

// EnsureHome creates the state directory.
func (p Paths) EnsureHome() error {
	if err := os.MkdirAll(p.Home, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", p.Home, err)
	}
	return nil
}

// LoadDotEnv loads .env files into the process environment without
// overriding variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	_ = godotenv.Load(files...)
}

// Load reads settings from path. Attributes absent from the file keep their
// default value; a missing file yields the defaults.
func Load(path string) (api.Settings, error) {
	s := api.DefaultSettings()
	err := hclsimple.DecodeFile(path, nil, &s)
	if err == nil {
		return s, nil
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		return api.DefaultSettings(), nil
	}
	return api.DefaultSettings(), fmt.Errorf("load config %s: %w", path, err)
}

// Save writes s to path, creating its directory.
func Save(path string, s api.Settings) error {
	f := hclwrite.NewEmptyFile()
	gohcl.EncodeIntoBody(&s, f.Body())

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, f.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// EnvKey returns the environment variable that overrides a setting key.
func EnvKey(key string) string {
	return envPrefix + strings.ToUpper(key)
}

// ApplyEnv overrides s with any TREEGEN_<KEY> variables that are set.
func ApplyEnv(s api.Settings) (api.Settings, error) {
	for _, key := range api.Keys() {
		raw := strings.TrimSpace(os.Getenv(EnvKey(key)))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return s, fmt.Errorf("%s: %w", EnvKey(key), err)
		}
		if s, err = s.Set(key, v); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Resolve loads the file at path and applies environment overrides.
func Resolve(path string) (api.Settings, error) {
	s, err := Load(path)
	if err != nil {
		return s, err
	}
	return ApplyEnv(s)
}
