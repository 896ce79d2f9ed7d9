// Package cliutil holds helpers shared by the animtrack subcommands.
package cliutil

import (
	"context"
	"errors"

	"github.com/ivlev/animtrack/internal/config"
)

type configKey struct{}

func WithConfig(ctx context.Context, cfg *config.Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

func ConfigFromContext(ctx context.Context) (*config.Config, bool) {
	cfg, ok := ctx.Value(configKey{}).(*config.Config)
	return cfg, ok && cfg != nil
}

// MustConfig returns the loaded configuration or an error for commands run
// outside the root command.
func MustConfig(ctx context.Context) (*config.Config, error) {
	cfg, ok := ConfigFromContext(ctx)
	if !ok {
		return nil, errors.New("failed to get configuration from context")
	}
	return cfg, nil
}
