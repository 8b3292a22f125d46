// Package app implements the application layer for solbuild.
package app

import (
	"context"
	"fmt"
	"os"

	"go.trai.ch/solbuild/internal/core/domain"
	"go.trai.ch/solbuild/internal/core/ports"
	"go.trai.ch/solbuild/internal/engine/pipeline"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	pipeline     *pipeline.Pipeline
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, pipe *pipeline.Pipeline, logger ports.Logger) *App {
	return &App{
		configLoader: loader,
		pipeline:     pipe,
		logger:       logger,
	}
}

// Run executes one build for the project rooted at cwd. Compiler diagnostics
// are printed here; if any carry error severity the returned error is
// ErrBuildExecutionFailed so the CLI exits non-zero without a second report.
func (a *App) Run(ctx context.Context, cwd string) error {
	project, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}

	merged, err := a.pipeline.Run(ctx, project)
	if err != nil {
		return zerr.Wrap(err, "build execution failed")
	}

	a.report(merged)
	if merged.HasErrors() {
		return domain.ErrBuildExecutionFailed
	}

	a.logger.Info(fmt.Sprintf("build finished with %d contracts", len(merged.Contracts)))
	return nil
}

// Clean removes the cache directory of the project rooted at cwd. The next
// build recompiles everything.
func (a *App) Clean(cwd string) error {
	project, err := a.configLoader.Load(cwd)
	if err != nil {
		return zerr.Wrap(err, "failed to load configuration")
	}
	if err := os.RemoveAll(project.CacheDir); err != nil {
		return zerr.Wrap(err, "failed to remove cache directory")
	}
	a.logger.Info("cache cleared")
	return nil
}

func (a *App) report(merged *domain.MergedOutput) {
	for _, d := range merged.Diagnostics {
		switch d.Severity {
		case domain.SeverityError:
			a.logger.Error(zerr.New(d.String()))
		default:
			a.logger.Warn(d.String())
		}
	}
}
