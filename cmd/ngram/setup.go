package main

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/logger"
)

// setup loads the config file and installs the logger on the context.
func setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := LoadConfig(configFile)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}
	appConfig = cfg
	applyLoggingConfig(cmd, cfg)

	format, err := logger.ParseFormat(logFormat)
	if err != nil {
		return ctx, cli.Exit(err.Error(), 1)
	}
	level := logger.ParseLevel(logLevel)
	if debug {
		level = slog.LevelDebug
	}

	log := logger.ForFormat(os.Stderr, format, level, isTerminal(os.Stderr))
	return logger.WithContext(ctx, log), nil
}

// stdout returns the writer command output goes to.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}
