// Package main is the entry point for the solbuild CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/solbuild/cmd/solbuild/commands"
	"go.trai.ch/solbuild/internal/app"
	"go.trai.ch/solbuild/internal/core/domain"
	_ "go.trai.ch/solbuild/internal/wiring"
)

// componentsProvider resolves the application components. Injected so tests
// can bypass the dependency graph.
type componentsProvider func(ctx context.Context) (*app.Components, func(), error)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stderr, graftProvider))
}

func graftProvider(ctx context.Context) (*app.Components, func(), error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx)
	return c, func() {}, err
}

func run(ctx context.Context, args []string, stderr io.Writer, provide componentsProvider) int {
	// Context with signal handling
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Initialize application components
	components, cleanup, err := provide(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)

	if err := cli.Execute(ctx); err != nil {
		if errors.Is(err, domain.ErrBuildExecutionFailed) {
			// Diagnostics were already printed; exit non-zero without a
			// duplicate report.
			return 1
		}
		// zerr prints a full error report with stack trace and metadata
		// when formatted with %+v.
		_, _ = fmt.Fprintf(stderr, "%+v\n", err)
		return 1
	}
	return 0
}
