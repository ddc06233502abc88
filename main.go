package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/sinclairtarget/git-contrib/internal/config"
	"github.com/sinclairtarget/git-contrib/internal/pretty"
	"github.com/sinclairtarget/git-contrib/internal/subcommands"
)

var Commit = "unknown"
var Version = "unknown"

const (
	exitFailure = 1
	exitUsage   = 2
)

// Main loads configuration from the environment and hands off to cobra.
//
// If no subcommand was specified, we tally the given repositories and write a
// report.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(exitUsage)
	}

	configureLogging(cfg.LogLevel)
	pretty.SetColorEnabled(pretty.AllowDynamic(os.Stdout))
	logger().Debug("configured output", "color", pretty.ColorEnabled())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := newRootCmd(cfg, os.Stdout)
	err = rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		stop()
		os.Exit(exitStatus(err))
	}
}

func exitStatus(err error) int {
	var usageErr subcommands.UsageError
	if errors.As(err, &usageErr) {
		return exitUsage
	}

	return exitFailure
}

func configureLogging(level slog.Level) {
	handler := slog.NewTextHandler(
		os.Stderr,
		&slog.HandlerOptions{
			Level: level,
		},
	)
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
