package ngram

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
)

// WriteARPA writes f in ARPA text format with log10 probabilities. The model
// is unsmoothed, so no backoff weights are emitted.
func WriteARPA(w io.Writer, f *Family) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintln(bw, `\data\`)
	for _, t := range f.tables {
		fmt.Fprintf(bw, "ngram %d=%d\n", t.order, t.Entries())
	}

	for _, t := range f.tables {
		fmt.Fprintf(bw, "\n\\%d-grams:\n", t.order)
		t.Each(func(ctx Context, d *Distribution) {
			prefix := strings.Join(ctx, " ")
			for i, outcome := range d.outcomes {
				words := outcome
				if prefix != "" {
					words = prefix + " " + outcome
				}
				fmt.Fprintf(bw, "%.6f\t%s\n", math.Log10(d.probs[i]), words)
			}
		})
	}

	fmt.Fprintln(bw, "\n\\end\\")
	return bw.Flush()
}
