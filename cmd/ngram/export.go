package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/logger"
	"github.com/samcharles93/ngramlab/internal/ngram"
)

func exportCmd() *cli.Command {
	var (
		maxOrder int64
		format   string
		outPath  string
	)

	flags := append([]cli.Flag{}, commonCorpusFlags()...)
	flags = append(flags,
		maxOrderFlag(&maxOrder),
		&cli.StringFlag{
			Name:        "format",
			Usage:       "output format (json, arpa)",
			Value:       "json",
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "out",
			Aliases:     []string{"o"},
			Usage:       "output file (default stdout)",
			Destination: &outPath,
		},
	)

	return &cli.Command{
		Name:  "export",
		Usage: "Write the model tables as a JSON snapshot or ARPA text",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyModelConfig(cmd, appConfig, &maxOrder, nil, nil)

			write := ngram.WriteSnapshot
			switch format {
			case "json":
			case "arpa":
				write = ngram.WriteARPA
			default:
				return cli.Exit(fmt.Sprintf("error: unknown format %q (want json or arpa)", format), 1)
			}

			tokens, err := trainingTokens(ctx, cmd)
			if err != nil {
				return err
			}
			family, err := ngram.BuildFamily(tokens, int(maxOrder))
			if err != nil {
				return cli.Exit(fmt.Sprintf("error: build models: %v", err), 1)
			}

			var w io.Writer = stdout(cmd)
			if outPath != "" {
				if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
					return err
				}
				f, err := os.Create(outPath)
				if err != nil {
					return err
				}
				defer f.Close()
				w = f
			}
			if err := write(w, family); err != nil {
				return cli.Exit(fmt.Sprintf("error: export: %v", err), 1)
			}
			if outPath != "" {
				log.Info("model exported", "path", outPath, "format", format, "max_order", maxOrder)
			}
			return nil
		},
	}
}
