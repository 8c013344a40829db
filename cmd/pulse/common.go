package main

import (
	"fmt"

	"github.com/newthinker/pulse/internal/config"
	"github.com/newthinker/pulse/internal/core"
	"github.com/newthinker/pulse/internal/source"
	"go.uber.org/zap"
)

// loadConfig reads the configured file or falls back to defaults, then
// validates the result.
func loadConfig() (*config.Config, error) {
	var cfg *config.Config

	if cfgFile != "" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// serverMode resolves the logger mode, letting the debug flag override
// the configured mode.
func serverMode(cfg *config.Config) string {
	if debug {
		return "debug"
	}
	return cfg.Server.Mode
}

// newAdapter builds the remote-or-mock signal source from config.
func newAdapter(cfg *config.Config, log *zap.Logger) *source.Adapter {
	return source.NewAdapter(
		source.NewRemote(cfg.Source.BaseURL, cfg.Source.Timeout),
		source.NewMock(),
		log,
	)
}

func asTimeframe(s string) core.Expiry {
	if tf := core.Expiry(s); tf.IsValid() {
		return tf
	}
	return core.Expiry1m
}
