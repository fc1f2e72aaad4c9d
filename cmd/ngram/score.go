package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/ngram"
	"github.com/samcharles93/ngramlab/internal/perplexity"
)

func scoreCmd() *cli.Command {
	var (
		order    int64
		evalPath string
		snapshot string
	)

	flags := append([]cli.Flag{}, commonCorpusFlags()...)
	flags = append(flags,
		orderFlag(&order, 0, "model order to score (0 = every order of the model)"),
		&cli.StringFlag{
			Name:        "eval",
			Usage:       "held-out text to score (defaults to the training corpus)",
			Destination: &evalPath,
		},
		snapshotFlag(&snapshot),
	)

	return &cli.Command{
		Name:  "score",
		Usage: "Compute the perplexity of a text under n-gram models",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			lo, hi := 1, ngram.MaxOrder
			if order != 0 {
				if err := ngram.ValidateOrder(int(order)); err != nil {
					return cli.Exit(fmt.Sprintf("error: %v", err), 1)
				}
				lo, hi = int(order), int(order)
			}

			var (
				tokens []string
				err    error
			)
			if snapshot == "" || evalPath == "" {
				if tokens, err = trainingTokens(ctx, cmd); err != nil {
					return err
				}
			}

			var family *ngram.Family
			if snapshot != "" {
				if family, err = loadSnapshot(ctx, snapshot); err != nil {
					return cli.Exit(fmt.Sprintf("error: load snapshot: %v", err), 1)
				}
				if order == 0 {
					hi = family.MaxOrder()
				}
			} else if family, err = ngram.BuildFamily(tokens, hi); err != nil {
				return cli.Exit(fmt.Sprintf("error: build models: %v", err), 1)
			}

			eval := tokens
			title := "Perplexity on the training text"
			if evalPath != "" {
				if eval, err = loadCorpus(ctx, evalPath); err != nil {
					return cli.Exit(fmt.Sprintf("error: load eval text: %v", err), 1)
				}
				title = "Perplexity on " + evalPath
			}

			rows := make([]scoreRow, 0, hi-lo+1)
			failed := 0
			for o := lo; o <= hi; o++ {
				res, err := perplexity.Score(family, o, eval)
				if err != nil {
					failed++
				}
				rows = append(rows, scoreRow{Order: o, Result: res, Err: err})
			}
			renderScores(stdout(cmd), title, rows)
			if failed == len(rows) {
				return cli.Exit(fmt.Sprintf("error: %v", rows[0].Err), 1)
			}
			return nil
		},
	}
}
