package main

import (
	"context"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/corpus"
	"github.com/samcharles93/ngramlab/internal/generate"
	"github.com/samcharles93/ngramlab/internal/logger"
	"github.com/samcharles93/ngramlab/internal/ngram"
	"github.com/samcharles93/ngramlab/internal/perplexity"
	"github.com/samcharles93/ngramlab/internal/sampling"
)

func reportCmd() *cli.Command {
	var (
		topCorpus string
		maxOrder  int64
		length    int64
		seed      int64
		top       int64
	)

	flags := append([]cli.Flag{}, commonCorpusFlags()...)
	flags = append(flags,
		&cli.StringFlag{
			Name:        "top-corpus",
			Usage:       "text used for the top words table (defaults to --corpus)",
			Destination: &topCorpus,
		},
		&cli.Int64Flag{
			Name:        "top",
			Usage:       "number of words in the top words table",
			Value:       10,
			Destination: &top,
		},
		maxOrderFlag(&maxOrder),
		lengthFlag(&length),
		seedFlag(&seed),
	)

	return &cli.Command{
		Name:  "report",
		Usage: "Top words, table sizes, sample text and perplexity for every order",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyModelConfig(cmd, appConfig, &maxOrder, &length, &seed)

			tokens, err := trainingTokens(ctx, cmd)
			if err != nil {
				return err
			}
			out := stdout(cmd)

			topTokens := tokens
			if topCorpus != "" {
				if topTokens, err = loadCorpus(ctx, topCorpus); err != nil {
					return cli.Exit(fmt.Sprintf("error: load top corpus: %v", err), 1)
				}
			}
			renderTopWords(out, corpus.TopWords(topTokens, int(top)), len(topTokens))
			_, _ = fmt.Fprintln(out)

			family, err := ngram.BuildFamily(tokens, int(maxOrder))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: build models: %v", err), 1)
			}
			renderStats(out, family.Stats())

			sampler := sampling.New(sampling.Config{Seed: seed})
			log.Info("sampling", "seed", sampler.Seed(), "length", length)
			rows := writeSamples(ctx, out, family, generate.New(family, sampler), tokens, int(length))

			_, _ = fmt.Fprintln(out)
			renderScores(out, "Perplexity on the training text", rows)
			return nil
		},
	}
}

// writeSamples generates and scores every order. A failing order is logged
// and reported; the remaining orders still run.
func writeSamples(ctx context.Context, out io.Writer, family *ngram.Family, gen *generate.Generator, tokens []string, length int) []scoreRow {
	log := logger.FromContext(ctx)

	rows := make([]scoreRow, 0, family.MaxOrder())
	for order := 1; order <= family.MaxOrder(); order++ {
		name := ngram.OrderName(order)
		_, _ = fmt.Fprintf(out, "\n== %s sample ==\n", name)

		text, err := gen.Generate(order, nil, length)
		if err != nil {
			log.Warn("generation failed", "model", name, "error", err)
			_, _ = fmt.Fprintf(out, "generation failed: %v\n", err)
		} else {
			_, _ = fmt.Fprintln(out, wrapWords(text, wrapWidth))
		}

		res, err := perplexity.Score(family, order, tokens)
		if err != nil {
			log.Warn("scoring failed", "model", name, "error", err)
		} else {
			log.Debug("scored", "model", name, "perplexity", res.Perplexity)
		}
		rows = append(rows, scoreRow{Order: order, Result: res, Err: err})
	}
	return rows
}
