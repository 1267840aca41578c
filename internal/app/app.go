package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/gc/tagforge/internal/config"
	"github.com/gc/tagforge/internal/ctxlog"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	plan   *config.Model
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and a loaded,
// validated generation plan.
func NewApp(outW io.Writer, appConfig *Config, loader config.Loader) *App {
	logger := newLogger(appConfig.LogLevel, appConfig.LogFormat, outW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	plan, err := loader.Load(ctx, appConfig.PlanPath, overrides(appConfig))
	if err != nil {
		// A failure to load the plan is a fatal startup error.
		panic(fmt.Errorf("failed to load generation plan: %w", err))
	}
	logger.Debug("Generation plan loaded and translated into unified model.")

	return &App{
		outW:   outW,
		logger: logger,
		config: appConfig,
		plan:   plan,
	}
}

// overrides lifts the command line override values out of the app config.
func overrides(appConfig *Config) config.Overrides {
	return config.Overrides{
		Source:    appConfig.Source,
		Target:    appConfig.Target,
		Threshold: appConfig.Threshold,
	}
}

// Plan returns the loaded generation plan. This is primarily for testing.
func (a *App) Plan() *config.Model {
	return a.plan
}
