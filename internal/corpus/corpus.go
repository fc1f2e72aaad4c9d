package corpus

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Punctuation is the set of characters removed from every token.
const Punctuation = "#:;,.!?-[]*"

const byteOrderMark = "\ufeff"

var stripper = strings.NewReplacer(
	"#", "", ":", "", ";", "", ",", "", ".", "", "!", "",
	"?", "", "-", "", "[", "", "]", "", "*", "",
)

// Options controls token normalization.
type Options struct {
	// KeepCase disables lowercasing.
	KeepCase bool
	// KeepPunctuation disables punctuation stripping.
	KeepPunctuation bool
}

// Normalize splits text on whitespace and normalizes every word.
func Normalize(text string, opts Options) []string {
	fields := strings.Fields(strings.TrimPrefix(text, byteOrderMark))
	out := fields[:0]
	for _, f := range fields {
		if tok := opts.token(f); tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

// Load reads whitespace-separated words from r and normalizes them.
func Load(r io.Reader, opts Options) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	sc.Split(bufio.ScanWords)

	var tokens []string
	first := true
	for sc.Scan() {
		word := sc.Text()
		if first {
			word = strings.TrimPrefix(word, byteOrderMark)
			first = false
		}
		if tok := opts.token(word); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return tokens, nil
}

func (o Options) token(word string) string {
	if !o.KeepPunctuation {
		word = stripper.Replace(word)
	}
	if !o.KeepCase {
		word = strings.ToLower(word)
	}
	return word
}

// WordCount is one entry of a frequency ranking.
type WordCount struct {
	Word  string  `json:"word"`
	Count int     `json:"count"`
	Share float64 `json:"share"`
}

// TopWords ranks words by frequency, most frequent first, breaking ties
// alphabetically. k <= 0 returns every distinct word.
func TopWords(tokens []string, k int) []WordCount {
	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}

	ranked := make([]WordCount, 0, len(counts))
	for w, c := range counts {
		ranked = append(ranked, WordCount{
			Word:  w,
			Count: c,
			Share: float64(c) / float64(len(tokens)),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Word < ranked[j].Word
	})

	if k > 0 && k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
