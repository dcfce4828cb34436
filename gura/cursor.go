package gura

import "strings"

// parser owns all mutable state for the duration of one Load call: the
// active text buffer, cursor position, line counter, variable table,
// indentation stack and import bookkeeping. It is not safe for concurrent
// use — callers parsing multiple documents in parallel must use distinct
// instances, which Load does implicitly (one parser per call).
type parser struct {
	text   string
	pos    int // byte index of the last consumed character; starts at -1
	line   int // 1-based line counter
	length int // index of the last byte in text (len(text)-1)

	variables map[string]Value
	envLookup EnvLookup

	indentStack []int

	importedFiles map[string]bool
	loader        FileLoader

	ruleCache map[string][]charRange
}

func newParser(loader FileLoader, envLookup EnvLookup) *parser {
	if loader == nil {
		loader = OSFileLoader{}
	}
	if envLookup == nil {
		envLookup = osEnvLookup
	}
	return &parser{
		variables:     map[string]Value{},
		envLookup:     envLookup,
		importedFiles: map[string]bool{},
		loader:        loader,
		ruleCache:     map[string][]charRange{},
	}
}

// restart replaces the active buffer and resets the cursor to its start,
// without touching variables, the indentation stack or imported-files set —
// this is what import splicing and recursive sub-parses use.
func (p *parser) restart(text string) {
	p.text = text
	p.pos = -1
	p.line = 1
	p.length = len(text) - 1
}

// here returns the Position the cursor is about to read from (pos+1).
func (p *parser) here() Position {
	return Position{Offset: p.pos + 1, Line: p.line}
}

func (p *parser) atEnd() bool { return p.pos >= p.length }

// assertEnd fails unless the cursor has consumed the entire buffer.
func (p *parser) assertEnd() error {
	if p.pos < p.length {
		return &ParseError{
			Pos:   p.here(),
			Msg:   "expected end of input but got " + describeByte(p.text, p.pos+1),
			Input: p.text,
		}
	}
	return nil
}

// charRange is either a single byte (lo == hi) or an inclusive byte range.
type charRange struct {
	lo, hi byte
}

func (r charRange) matches(c byte) bool { return c >= r.lo && c <= r.hi }

// classRanges expands and memoizes a character-class string like
// "0-9A-Fa-f_-" into a list of single chars and ranges. The trailing "-" in
// such strings is a literal hyphen, never the start of a range (a final
// "x-" pair has no range end, so both bytes are read as single chars).
func (p *parser) classRanges(class string) []charRange {
	if cached, ok := p.ruleCache[class]; ok {
		return cached
	}
	var out []charRange
	i := 0
	for i < len(class) {
		if i+2 < len(class) && class[i+1] == '-' {
			lo, hi := class[i], class[i+2]
			if lo >= hi {
				panic("gura: bad character range in class " + class)
			}
			out = append(out, charRange{lo, hi})
			i += 3
		} else {
			out = append(out, charRange{class[i], class[i]})
			i++
		}
	}
	p.ruleCache[class] = out
	return out
}

// char matches a single byte from class (or any byte, if class is empty)
// and advances the cursor. It never advances the line counter — the rules
// that consume line breaks (newLine, comment, eatWsAndNewLines) do that, so
// arbitrary character consumption inside strings/keys does not track lines.
func (p *parser) char(class string) (byte, error) {
	if p.atEnd() {
		expected := "character"
		if class != "" {
			expected = "[" + class + "]"
		}
		return 0, &ParseError{
			Pos:   p.here(),
			Msg:   "expected " + expected + " but got end of string",
			Input: p.text,
		}
	}
	next := p.text[p.pos+1]
	if class == "" {
		p.pos++
		return next, nil
	}
	for _, r := range p.classRanges(class) {
		if r.matches(next) {
			p.pos++
			return next, nil
		}
	}
	return 0, &ParseError{
		Pos:   p.here(),
		Msg:   "expected [" + class + "] but got " + describeByte(p.text, p.pos+1),
		Input: p.text,
	}
}

func (p *parser) maybeChar(class string) (byte, bool) {
	c, err := p.char(class)
	if err != nil {
		return 0, false
	}
	return c, true
}

// keyword matches the first of keywords that equals the upcoming text and
// advances past it.
func (p *parser) keyword(keywords ...string) (string, error) {
	for _, kw := range keywords {
		low := p.pos + 1
		high := low + len(kw)
		if high <= len(p.text) && p.text[low:high] == kw {
			p.pos += len(kw)
			return kw, nil
		}
	}
	got := "end of string"
	if !p.atEnd() {
		got = describeByte(p.text, p.pos+1)
	}
	return "", &ParseError{
		Pos:   p.here(),
		Msg:   "expected " + strings.Join(keywords, ",") + " but got " + got,
		Input: p.text,
	}
}

func (p *parser) maybeKeyword(keywords ...string) (string, bool) {
	kw, err := p.keyword(keywords...)
	if err != nil {
		return "", false
	}
	return kw, true
}

// rule pairs a diagnostic name with the rule function it names, for use
// with match/maybeMatch's farthest-failure reporting.
type rule[T any] struct {
	name string
	fn   func(p *parser) (T, error)
}

func namedRule[T any](name string, fn func(p *parser) (T, error)) rule[T] {
	return rule[T]{name: name, fn: fn}
}

// match tries each rule in order, restoring the cursor between attempts. It
// returns the first rule that succeeds. Only a *ParseError is treated as "this
// alternative didn't match" and recorded for the farthest-failure diagnostic;
// any other GuraError (DuplicatedKeyError, InvalidIndentationError, ...)
// reports a genuine structural problem and is returned immediately, without
// trying the remaining rules — mirroring the reference parser's `except
// ParseError`, which likewise never catches its other exception types. If
// every rule fails with a ParseError, match returns the error that reached
// the furthest position; when several rules reached exactly that position,
// it returns a new ParseError there naming every one of them.
func match[T any](p *parser, rules ...rule[T]) (T, error) {
	var zero T
	startPos, startLine := p.pos, p.line

	furthestPos := -1
	var furthestErr error
	var furthestNames []string

	for _, r := range rules {
		p.pos, p.line = startPos, startLine
		v, err := r.fn(p)
		if err == nil {
			return v, nil
		}
		pe, isParseErr := err.(*ParseError)
		if !isParseErr {
			return zero, err
		}
		errPos := pe.Pos.Offset
		switch {
		case errPos > furthestPos:
			furthestPos = errPos
			furthestErr = err
			furthestNames = []string{r.name}
		case errPos == furthestPos:
			furthestNames = append(furthestNames, r.name)
		}
	}

	p.pos, p.line = startPos, startLine
	if len(furthestNames) <= 1 || furthestErr == nil {
		return zero, furthestErr
	}

	pos := furthestPos
	if pos > p.length {
		pos = p.length
	}
	return zero, &ParseError{
		Pos:   Position{Offset: pos, Line: p.line},
		Msg:   "expected " + strings.Join(furthestNames, ",") + " but got " + describeByte(p.text, pos),
		Input: p.text,
	}
}

// maybeMatch is like match but reports ok=false instead of a *ParseError.
// Any other GuraError returned by a rule is a genuine structural failure,
// not a backtrackable non-match, so it is propagated as err rather than
// swallowed into ok=false — callers must check err before ok.
func maybeMatch[T any](p *parser, rules ...rule[T]) (T, bool, error) {
	v, err := match(p, rules...)
	if err != nil {
		var zero T
		if _, isParseErr := err.(*ParseError); isParseErr {
			return zero, false, nil
		}
		return zero, false, err
	}
	return v, true, nil
}
