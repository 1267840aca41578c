package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gc/tagforge/internal/app"
	"github.com/gc/tagforge/internal/cli"
	"github.com/gc/tagforge/internal/hcl_adapter"
)

// main is the entrypoint for the tagforge application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// Everything tagforge prints is diagnostics, so it all rides stderr and
	// the exit code carries the machine-readable result.
	if err := run(os.Stderr, os.Args[1:]); err != nil {
		if exitErr, ok := err.(*cli.ExitError); ok {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	appConfig, shouldExit, parseErr := cli.Parse(args, outW)
	if parseErr != nil {
		return parseErr
	}
	if shouldExit {
		return nil
	}

	// The app panics on critical plan errors; recover into a normal error so
	// the user gets a clean message and exit code instead of a stack trace.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("application startup panicked: %v", r)
		}
	}()

	loader := hcl_adapter.NewLoader()
	forge := app.NewApp(outW, appConfig, loader)

	return forge.Run(context.Background())
}
