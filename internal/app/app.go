// Package app wires the manifest loader and logger into the inspector
// application behind cmd/cli.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/vk/classattr/internal/ctxlog"
	"github.com/vk/classattr/manifest"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Path      string
	LogFormat string
	LogLevel  string
}

// NewConfig validates the configuration.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("manifest path must not be empty")
	}
	return &cfg, nil
}

// App encapsulates the inspector's dependencies, configuration, and
// lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	set    *manifest.Set
}

// NewApp is the constructor for the inspector application. It returns a
// fully initialized App with its own isolated logger and every class
// manifest under the configured path loaded. Startup failures panic;
// the entrypoint recovers and reports them.
func NewApp(outW, logW io.Writer, cfg *Config, accessors *manifest.Accessors) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	loader := manifest.NewLoader(accessors)
	set, err := loader.Load(ctx, cfg.Path)
	if err != nil {
		// A failure to load manifests is a fatal startup error.
		panic(fmt.Errorf("failed to load class manifests: %w", err))
	}
	logger.Debug("Class manifests loaded.", "classes", len(set.Names()))

	return &App{outW: outW, logger: logger, set: set}
}

// Set returns the loaded class set. This is primarily for testing.
func (a *App) Set() *manifest.Set { return a.set }

// Run prints every loaded class with its group-registered attributes
// resolved through class-level access.
func (a *App) Run(ctx context.Context) error {
	for _, name := range a.set.Names() {
		c, ok := a.set.Class(name)
		if !ok {
			continue
		}
		fmt.Fprintf(a.outW, "class %s\n", name)
		for _, attr := range c.Group().Names() {
			v, err := c.Get(attr)
			if err != nil {
				fmt.Fprintf(a.outW, "  %s = <unreadable: %v>\n", attr, err)
				continue
			}
			fmt.Fprintf(a.outW, "  %s = %v\n", attr, v)
		}
	}
	a.logger.Debug("Inspection finished.", "classes", len(a.set.Names()))
	return nil
}
