package ngram

import (
	"strconv"
	"strings"
)

// Context is the ordered run of tokens preceding a predicted token. Order-n
// tables use contexts of exactly n-1 tokens; the unigram context is empty.
type Context []string

// Key encodes the context as a map key. Every token is prefixed with its
// byte length, so distinct contexts never share a key whatever bytes the
// tokens contain.
func (c Context) Key() string {
	var b strings.Builder
	for _, tok := range c {
		b.WriteString(strconv.Itoa(len(tok)))
		b.WriteByte(':')
		b.WriteString(tok)
	}
	return b.String()
}

// Clone returns a copy that does not alias c.
func (c Context) Clone() Context {
	out := make(Context, len(c))
	copy(out, c)
	return out
}

func (c Context) String() string {
	if len(c) == 0 {
		return "()"
	}
	var b strings.Builder
	b.WriteByte('(')
	for i, tok := range c {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(tok))
	}
	b.WriteByte(')')
	return b.String()
}
