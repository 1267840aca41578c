package cli

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/gc/tagforge/internal/app"
	"github.com/gc/tagforge/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("tagforge", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
tagforge - regenerates the booru tag tables of a source file from a
Danbooru tag-frequency CSV export.

Usage:
  tagforge [options]

The generation plan (CSV location, target file, table shapes, and the
curated candidate lists) is built in; use -config to supply your own plan.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to a generation plan .hcl file or directory. Empty uses the built-in plan.")
	csvFlag := flagSet.String("csv", "", "Path to the Danbooru tag export. Overrides the plan's source.")
	targetFlag := flagSet.String("target", "", "Path to the file whose tag tables are rewritten. Overrides the plan's target.")
	thresholdFlag := flagSet.Int("threshold", config.DefaultThreshold, "Minimum post count for tag inclusion. Overrides the plan's threshold.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Extract and curate only, reporting table sizes without touching the target.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	// Zero is a legal threshold, so only an explicitly set flag overrides
	// the plan's value.
	var threshold *int
	flagSet.Visit(func(f *flag.Flag) {
		if f.Name == "threshold" {
			threshold = thresholdFlag
		}
	})

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	appConfig, err := app.NewConfig(app.Config{
		PlanPath:  *configFlag,
		Source:    *csvFlag,
		Target:    *targetFlag,
		Threshold: threshold,
		DryRun:    *dryRunFlag,
		LogFormat: logFormat,
		LogLevel:  logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.")
	return appConfig, false, nil
}
