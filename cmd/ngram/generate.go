package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/corpus"
	"github.com/samcharles93/ngramlab/internal/generate"
	"github.com/samcharles93/ngramlab/internal/logger"
	"github.com/samcharles93/ngramlab/internal/ngram"
	"github.com/samcharles93/ngramlab/internal/sampling"
)

func generateCmd() *cli.Command {
	var (
		order    int64
		length   int64
		seed     int64
		seedText string
		snapshot string
	)

	flags := append([]cli.Flag{}, commonCorpusFlags()...)
	flags = append(flags,
		orderFlag(&order, 2, "model order (1-4)"),
		lengthFlag(&length),
		seedFlag(&seed),
		&cli.StringFlag{
			Name:        "seed-text",
			Aliases:     []string{"p"},
			Usage:       "words to condition on; the last order-1 words form the first context",
			Destination: &seedText,
		},
		snapshotFlag(&snapshot),
	)

	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate text by sampling from an n-gram model",
		Flags:   flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyModelConfig(cmd, appConfig, nil, &length, &seed)
			if length < 0 {
				return cli.Exit("error: --length must not be negative", 1)
			}

			if err := ngram.ValidateOrder(int(order)); err != nil {
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			family, err := commandFamily(ctx, cmd, snapshot, int(order))
			if err != nil {
				return err
			}

			sampler := sampling.New(sampling.Config{Seed: seed})
			log.Debug("sampling", "seed", sampler.Seed(), "order", order, "length", length)

			seedTokens := corpus.Normalize(seedText, corpusOptions())
			text, err := generate.New(family, sampler).Generate(int(order), seedTokens, int(length))
			if err != nil {
				if errors.Is(err, ngram.ErrContextNotFound) {
					return cli.Exit(fmt.Sprintf("error: %v (try another --seed or --seed-text)", err), 1)
				}
				return cli.Exit(fmt.Sprintf("error: %v", err), 1)
			}
			_, _ = fmt.Fprintln(stdout(cmd), wrapWords(text, wrapWidth))
			return nil
		},
	}
}
