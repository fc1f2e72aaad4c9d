package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/samcharles93/ngramlab/internal/corpus"
	"github.com/samcharles93/ngramlab/internal/ngram"
	"github.com/samcharles93/ngramlab/internal/perplexity"
)

const wrapWidth = 80

func newTable(out io.Writer, title string) table.Writer {
	tbl := table.NewWriter()
	tbl.SetOutputMirror(out)
	tbl.SetStyle(table.StyleLight)
	tbl.SetTitle(title)
	return tbl
}

func renderTopWords(out io.Writer, words []corpus.WordCount, total int) {
	tbl := newTable(out, fmt.Sprintf("Top %d words", len(words)))
	tbl.AppendHeader(table.Row{"#", "Word", "Count", "Share"})
	for i, w := range words {
		tbl.AppendRow(table.Row{i + 1, w.Word, humanize.Comma(int64(w.Count)), fmt.Sprintf("%.1f%%", w.Share*100)})
	}
	tbl.AppendFooter(table.Row{"", "Total", humanize.Comma(int64(total)), ""})
	tbl.Render()
}

func renderStats(out io.Writer, stats []ngram.Stats) {
	tbl := newTable(out, "Model tables")
	tbl.AppendHeader(table.Row{"Order", "Model", "Contexts", "Distinct n-grams", "Windows"})
	for _, s := range stats {
		tbl.AppendRow(table.Row{
			s.Order,
			s.Name,
			humanize.Comma(int64(s.Contexts)),
			humanize.Comma(int64(s.Entries)),
			humanize.Comma(int64(s.Windows)),
		})
	}
	tbl.Render()
}

type scoreRow struct {
	Order  int
	Result perplexity.Result
	Err    error
}

func renderScores(out io.Writer, title string, rows []scoreRow) {
	tbl := newTable(out, title)
	tbl.AppendHeader(table.Row{"Order", "Model", "Perplexity", "Log2 P", "Tokens"})
	for _, r := range rows {
		if r.Err != nil {
			tbl.AppendRow(table.Row{r.Order, ngram.OrderName(r.Order), "error: " + r.Err.Error(), "", ""})
			continue
		}
		tbl.AppendRow(table.Row{
			r.Order,
			ngram.OrderName(r.Order),
			fmt.Sprintf("%.4f", r.Result.Perplexity),
			fmt.Sprintf("%.2f", r.Result.Log2Prob),
			humanize.Comma(int64(r.Result.Tokens)),
		})
	}
	tbl.Render()
}

// wrapWords joins tokens with spaces, breaking lines before width columns.
func wrapWords(tokens []string, width int) string {
	var b strings.Builder
	col := 0
	for _, tok := range tokens {
		switch {
		case col == 0:
		case col+1+len(tok) > width:
			b.WriteByte('\n')
			col = 0
		default:
			b.WriteByte(' ')
			col++
		}
		b.WriteString(tok)
		col += len(tok)
	}
	return b.String()
}
