package cmd

import (
	"fmt"

	"github.com/agentic-research/treegen/api"
	"github.com/agentic-research/treegen/internal/config"
	"github.com/agentic-research/treegen/internal/generator"
	"github.com/agentic-research/treegen/internal/store"
	"github.com/agentic-research/treegen/internal/templates"
)

func statePaths() (config.Paths, error) {
	if homeDir != "" {
		return config.PathsIn(homeDir), nil
	}
	return config.DefaultPaths()
}

// loadSettings returns the effective settings: config file, then
// environment overrides.
func loadSettings() (config.Paths, api.Settings, error) {
	paths, err := statePaths()
	if err != nil {
		return paths, api.Settings{}, err
	}
	s, err := config.Resolve(paths.Config)
	return paths, s, err
}

func openStore(paths config.Paths) (*store.Store, error) {
	if err := paths.EnsureHome(); err != nil {
		return nil, err
	}
	st, err := store.Open(paths.Database, logger.Named("store"))
	if err != nil {
		return nil, fmt.Errorf("open template store: %w", err)
	}
	return st, nil
}

func newGenerator(settings api.Settings, st *store.Store) *generator.Generator {
	return &generator.Generator{
		Settings:  settings,
		Templates: templates.Default(st),
		History:   st,
		Logger:    logger,
	}
}
