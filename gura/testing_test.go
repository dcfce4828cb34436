package gura

import "github.com/google/go-cmp/cmp"

// valueComparer lets go-cmp compare Values despite their unexported fields,
// deferring to Value.Equal (which also treats NaN == NaN).
var valueComparer = cmp.Comparer(func(a, b Value) bool { return a.Equal(b) })

// newTestParser builds a parser over text with the default loader/env
// lookup, ready for a rule function to be called against it directly.
func newTestParser(text string) *parser {
	p := newParser(nil, nil)
	p.restart(text)
	return p
}
