package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/logger"
	"github.com/samcharles93/ngramlab/internal/ngram"
)

func snapshotFlag(dest *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "snapshot",
		Usage:       "load models from a JSON snapshot written by export instead of building from --corpus",
		Destination: dest,
	}
}

// loadSnapshot reads a family written by `ngram export --format json`.
func loadSnapshot(ctx context.Context, path string) (*ngram.Family, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	family, err := ngram.ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.FromContext(ctx).Debug("snapshot loaded", "path", path, "max_order", family.MaxOrder())
	return family, nil
}

// commandFamily returns the snapshot family when path is set, otherwise
// the family built from the command's training corpus.
func commandFamily(ctx context.Context, cmd *cli.Command, path string, maxOrder int) (*ngram.Family, error) {
	if path != "" {
		family, err := loadSnapshot(ctx, path)
		if err != nil {
			return nil, cli.Exit(fmt.Sprintf("error: load snapshot: %v", err), 1)
		}
		return family, nil
	}
	tokens, err := trainingTokens(ctx, cmd)
	if err != nil {
		return nil, err
	}
	family, err := ngram.BuildFamily(tokens, maxOrder)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error: build models: %v", err), 1)
	}
	return family, nil
}
