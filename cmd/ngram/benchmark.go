package main

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/ngramlab/internal/generate"
	"github.com/samcharles93/ngramlab/internal/logger"
	"github.com/samcharles93/ngramlab/internal/ngram"
	"github.com/samcharles93/ngramlab/internal/sampling"
)

func benchmarkCmd() *cli.Command {
	var (
		warmupRuns int64
		benchRuns  int64
		maxOrder   int64
		steps      int64
		shards     int64
	)

	flags := append([]cli.Flag{}, commonCorpusFlags()...)
	flags = append(flags,
		&cli.Int64Flag{
			Name:        "warmup",
			Usage:       "number of warmup runs",
			Value:       1,
			Destination: &warmupRuns,
		},
		&cli.Int64Flag{
			Name:        "runs",
			Usage:       "number of benchmark runs",
			Value:       3,
			Destination: &benchRuns,
		},
		&cli.Int64Flag{
			Name:        "steps",
			Aliases:     []string{"n"},
			Usage:       "number of tokens to generate per run",
			Value:       10000,
			Destination: &steps,
		},
		&cli.Int64Flag{
			Name:        "shards",
			Usage:       "goroutines used for the sharded build (0 = GOMAXPROCS)",
			Destination: &shards,
		},
		maxOrderFlag(&maxOrder),
	)

	return &cli.Command{
		Name:  "benchmark",
		Usage: "Time table construction and generation throughput",
		Flags: flags,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			applyModelConfig(cmd, appConfig, &maxOrder, nil, nil)
			if benchRuns < 1 {
				return cli.Exit("error: --runs must be at least 1", 1)
			}
			if shards <= 0 {
				shards = int64(runtime.GOMAXPROCS(0))
			}

			tokens, err := trainingTokens(ctx, cmd)
			if err != nil {
				return err
			}
			out := stdout(cmd)

			_, _ = fmt.Fprintln(out, "=== ngram benchmark ===")
			_, _ = fmt.Fprintf(out, "Tokens:     %s\n", humanize.Comma(int64(len(tokens))))
			_, _ = fmt.Fprintf(out, "Max order:  %d\n", maxOrder)
			_, _ = fmt.Fprintf(out, "CPUs:       %d\n", runtime.NumCPU())
			_, _ = fmt.Fprintf(out, "GOMAXPROCS: %d\n", runtime.GOMAXPROCS(0))
			_, _ = fmt.Fprintf(out, "Shards:     %d\n", shards)
			_, _ = fmt.Fprintf(out, "Steps:      %d tokens\n", steps)
			_, _ = fmt.Fprintf(out, "Warmup:     %d runs\n", warmupRuns)
			_, _ = fmt.Fprintf(out, "Runs:       %d\n\n", benchRuns)

			serial := func() (*ngram.Family, error) { return ngram.BuildFamily(tokens, int(maxOrder)) }
			sharded := func() (*ngram.Family, error) {
				return ngram.BuildFamilySharded(ctx, tokens, int(maxOrder), int(shards))
			}

			for i := range int(warmupRuns) {
				log.Info("warmup run", "run", i+1)
				if _, err := serial(); err != nil {
					return cli.Exit(fmt.Sprintf("error: warmup run %d: %v", i+1, err), 1)
				}
			}

			type runResult struct {
				Serial  time.Duration
				Sharded time.Duration
				Gen     time.Duration
				Tokens  int
				Failed  bool
			}
			results := make([]runResult, 0, benchRuns)

			for i := range int(benchRuns) {
				log.Info("benchmark run", "run", i+1)
				var r runResult

				start := time.Now()
				family, err := serial()
				if err != nil {
					return cli.Exit(fmt.Sprintf("error: benchmark run %d: %v", i+1, err), 1)
				}
				r.Serial = time.Since(start)

				start = time.Now()
				if _, err := sharded(); err != nil {
					return cli.Exit(fmt.Sprintf("error: benchmark run %d: %v", i+1, err), 1)
				}
				r.Sharded = time.Since(start)

				gen := generate.New(family, sampling.New(sampling.Config{Seed: int64(i)}))
				start = time.Now()
				err = gen.Stream(family.MaxOrder(), nil, int(steps), func(string) error {
					r.Tokens++
					return nil
				})
				r.Gen = time.Since(start)
				if err != nil {
					log.Warn("generation stopped early", "run", i+1, "tokens", r.Tokens, "error", err)
					r.Failed = true
				}
				results = append(results, r)
			}

			_, _ = fmt.Fprintln(out, "=== Results ===")
			_, _ = fmt.Fprintf(out, "%-6s %12s %12s %12s %8s\n", "Run", "Build", "Sharded", "Gen", "Tokens")
			_, _ = fmt.Fprintf(out, "%-6s %12s %12s %12s %8s\n", "---", "", "", "tok/s", "")

			var sumSerial, sumSharded time.Duration
			var sumTPS float64
			for i, r := range results {
				tps := tokensPerSecond(r.Tokens, r.Gen)
				mark := ""
				if r.Failed {
					mark = " *"
				}
				_, _ = fmt.Fprintf(out, "%-6d %12s %12s %12.0f %8d%s\n",
					i+1, r.Serial.Round(time.Microsecond), r.Sharded.Round(time.Microsecond), tps, r.Tokens, mark)
				sumSerial += r.Serial
				sumSharded += r.Sharded
				sumTPS += tps
			}

			n := len(results)
			_, _ = fmt.Fprintf(out, "\n%-6s %12s %12s %12.0f\n", "Avg",
				(sumSerial / time.Duration(n)).Round(time.Microsecond),
				(sumSharded / time.Duration(n)).Round(time.Microsecond),
				sumTPS/float64(n))

			var mem runtime.MemStats
			runtime.ReadMemStats(&mem)
			_, _ = fmt.Fprintf(out, "\nMemory: %s alloc, %s sys\n", humanize.IBytes(mem.Alloc), humanize.IBytes(mem.Sys))
			return nil
		},
	}
}

func tokensPerSecond(tokens int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(tokens) / d.Seconds()
}
