package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/corpus"
	"github.com/samcharles93/ngramlab/internal/logger"
)

const envCorpus = "NGRAM_CORPUS"

// stdinReader is a small seam for tests.
var stdinReader io.Reader = os.Stdin

func resolveCorpusPath(flagValue string) (string, error) {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p, nil
	}
	if p := strings.TrimSpace(os.Getenv(envCorpus)); p != "" {
		return p, nil
	}
	return "", fmt.Errorf("--corpus is required unless %s is set or the config file names one", envCorpus)
}

func corpusOptions() corpus.Options {
	return corpus.Options{KeepCase: keepCase, KeepPunctuation: keepPunctuation}
}

// loadCorpus tokenizes the file at path, or stdin when path is "-".
func loadCorpus(ctx context.Context, path string) ([]string, error) {
	log := logger.FromContext(ctx)

	var r io.Reader
	if path == "-" {
		r = stdinReader
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	tokens, err := corpus.Load(r, corpusOptions())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%s: corpus contains no tokens", path)
	}
	log.Debug("corpus loaded", "path", path, "tokens", len(tokens))
	return tokens, nil
}

// trainingTokens resolves and loads the --corpus of the current command.
func trainingTokens(ctx context.Context, cmd *cli.Command) ([]string, error) {
	applyCorpusConfig(cmd, appConfig)
	path, err := resolveCorpusPath(corpusPath)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error: %v", err), 1)
	}
	tokens, err := loadCorpus(ctx, path)
	if err != nil {
		return nil, cli.Exit(fmt.Sprintf("error: load corpus: %v", err), 1)
	}
	return tokens, nil
}
