package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/corpus"
)

func topCmd() *cli.Command {
	var k int64

	flags := append([]cli.Flag{}, commonCorpusFlags()...)
	flags = append(flags, &cli.Int64Flag{
		Name:        "k",
		Usage:       "number of words to list (0 = all)",
		Value:       10,
		Destination: &k,
	})

	return &cli.Command{
		Name:  "top",
		Usage: "List the most frequent words of a corpus",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			tokens, err := trainingTokens(ctx, cmd)
			if err != nil {
				return err
			}
			renderTopWords(stdout(cmd), corpus.TopWords(tokens, int(k)), len(tokens))
			return nil
		},
	}
}
