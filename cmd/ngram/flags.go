package main

import (
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/ngram"
)

var (
	configFile      string
	logLevel        string
	logFormat       string
	debug           bool
	corpusPath      string
	keepCase        bool
	keepPunctuation bool

	// appConfig is loaded once by the root Before hook.
	appConfig Config
)

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:        "config",
		Usage:       "path to config.yaml (default ~/.config/ngramlab/config.yaml)",
		Destination: &configFile,
	}
}

func loggingFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "log level (debug, info, warn, error)",
			Value:       "info",
			Destination: &logLevel,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Usage:       "log format (pretty, json, text, auto)",
			Value:       "auto",
			Destination: &logFormat,
		},
		&cli.BoolFlag{
			Name:        "debug",
			Usage:       "enable debug logging (shorthand for --log-level=debug)",
			Destination: &debug,
		},
	}
}

func commonCorpusFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "corpus",
			Aliases:     []string{"f"},
			Usage:       "path to the training text (- for stdin); falls back to " + envCorpus,
			Destination: &corpusPath,
		},
		&cli.BoolFlag{
			Name:        "keep-case",
			Usage:       "do not lowercase tokens",
			Destination: &keepCase,
		},
		&cli.BoolFlag{
			Name:        "keep-punctuation",
			Usage:       "do not strip # : ; , . ! ? - [ ] *",
			Destination: &keepPunctuation,
		},
	}
}

func maxOrderFlag(dest *int64) cli.Flag {
	return &cli.Int64Flag{
		Name:        "max-order",
		Usage:       "highest model order to build (1-4)",
		Value:       ngram.MaxOrder,
		Destination: dest,
	}
}

func orderFlag(dest *int64, value int64, usage string) cli.Flag {
	return &cli.Int64Flag{
		Name:        "order",
		Aliases:     []string{"o"},
		Usage:       usage,
		Value:       value,
		Destination: dest,
	}
}

func lengthFlag(dest *int64) cli.Flag {
	return &cli.Int64Flag{
		Name:        "length",
		Aliases:     []string{"n"},
		Usage:       "number of tokens to generate",
		Value:       350,
		Destination: dest,
	}
}

func seedFlag(dest *int64) cli.Flag {
	return &cli.Int64Flag{
		Name:        "seed",
		Usage:       "sampling RNG seed (default -1 = random)",
		Value:       -1,
		Destination: dest,
	}
}
