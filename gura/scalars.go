package gura

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

func nullRule(p *parser) (Value, error) {
	if _, err := p.keyword("null"); err != nil {
		return Value{}, err
	}
	return Null(), nil
}

func booleanRule(p *parser) (Value, error) {
	kw, err := p.keyword("true", "false")
	if err != nil {
		return Value{}, err
	}
	return Bool(kw == "true"), nil
}

// emptyObject matches the literal "empty" sentinel for an empty object.
func emptyObjectRule(p *parser) (Value, error) {
	if _, err := p.keyword("empty"); err != nil {
		return Value{}, err
	}
	return FromObject(NewObject()), nil
}

var specialNumberPattern = regexp.MustCompile(`^[+-]?(inf|nan)$`)

// number accumulates the run of number-class characters and interprets it
// as decimal/hex/octal/binary integer, a float, or +-inf/nan. A lexeme that
// merely ends in "inf"/"nan" without being exactly that token (e.g.
// "1inf") is rejected rather than silently parsed — see SPEC_FULL.md §13.
func numberRule(p *parser) (Value, error) {
	first, err := p.char(numberChars)
	if err != nil {
		return Value{}, err
	}
	chars := []byte{first}
	for {
		c, ok := p.maybeChar(numberChars)
		if !ok {
			break
		}
		chars = append(chars, c)
	}
	raw := strings.TrimRight(string(chars), " \t")
	stripped := strings.ReplaceAll(raw, "_", "")

	prefix := stripped
	if len(prefix) > 2 {
		prefix = stripped[:2]
	}
	switch prefix {
	case "0x", "0o", "0b":
		base := map[string]int{"0x": 16, "0o": 8, "0b": 2}[prefix]
		n, err := strconv.ParseInt(stripped[2:], base, 64)
		if err != nil {
			return Value{}, numberParseError(p, p.here(), raw)
		}
		return Integer(n), nil
	}

	if specialNumberPattern.MatchString(stripped) {
		if strings.HasSuffix(stripped, "nan") {
			return Float(math.NaN()), nil
		}
		if strings.HasPrefix(stripped, "-") {
			return Float(math.Inf(-1)), nil
		}
		return Float(math.Inf(1)), nil
	}

	isFloat := strings.ContainsAny(raw, ".eE")
	if isFloat {
		f, err := strconv.ParseFloat(stripped, 64)
		if err != nil {
			return Value{}, numberParseError(p, p.here(), raw)
		}
		return Float(f), nil
	}

	n, err := strconv.ParseInt(stripped, 10, 64)
	if err != nil {
		return Value{}, numberParseError(p, p.here(), raw)
	}
	return Integer(n), nil
}

func numberParseError(p *parser, at Position, raw string) error {
	return &ParseError{
		Pos:   at,
		Msg:   "'" + raw + "' is not a valid number",
		Input: p.text,
	}
}

var basicStringEscapes = map[byte]byte{
	'b':  '\b',
	'f':  '\f',
	'n':  '\n',
	'r':  '\r',
	't':  '\t',
	'"':  '"',
	'\\': '\\',
	'$':  '$',
}

// basicString matches a single- or triple-double-quoted string: supports
// backslash escapes, \u/\U unicode escapes, line-continuation escapes in
// multiline mode, and $var interpolation.
func basicStringRule(p *parser) (Value, error) {
	quote, err := p.keyword(`"""`, `"`)
	if err != nil {
		return Value{}, err
	}
	multiline := quote == `"""`
	if multiline {
		p.maybeChar("\n")
	}

	var b strings.Builder
	for {
		if _, ok := p.maybeKeyword(quote); ok {
			break
		}
		c, err := p.char("")
		if err != nil {
			return Value{}, err
		}
		switch {
		case c == '\\':
			if err := p.readBasicEscape(&b, multiline); err != nil {
				return Value{}, err
			}
		case c == '$':
			name, err := p.varName()
			if err != nil {
				return Value{}, err
			}
			val, err := p.lookupVariable(name)
			if err != nil {
				return Value{}, err
			}
			b.WriteString(val)
		default:
			b.WriteByte(c)
		}
	}
	return Text(b.String()), nil
}

func (p *parser) readBasicEscape(b *strings.Builder, multiline bool) error {
	escape, err := p.char("")
	if err != nil {
		return err
	}
	switch {
	case multiline && escape == '\n':
		p.line++
		p.eatWsAndNewLines()
	case escape == 'u' || escape == 'U':
		n := 4
		if escape == 'U' {
			n = 8
		}
		codePoint := make([]byte, 0, n)
		for i := 0; i < n; i++ {
			c, err := p.char(hexDigits)
			if err != nil {
				return err
			}
			codePoint = append(codePoint, c)
		}
		v, err := strconv.ParseUint(string(codePoint), 16, 32)
		if err != nil {
			return &ParseError{Pos: p.here(), Msg: "invalid unicode escape", Input: p.text}
		}
		b.WriteRune(rune(v))
	default:
		if repl, ok := basicStringEscapes[escape]; ok {
			b.WriteByte(repl)
		} else {
			b.WriteByte('\\')
			b.WriteByte(escape)
		}
	}
	return nil
}

// literalString matches a single- or triple-single-quoted string: no
// escapes, no interpolation, copied verbatim.
func literalStringRule(p *parser) (Value, error) {
	quote, err := p.keyword(`'''`, `'`)
	if err != nil {
		return Value{}, err
	}
	multiline := quote == `'''`
	if multiline {
		p.maybeChar("\n")
	}

	var b strings.Builder
	for {
		if _, ok := p.maybeKeyword(quote); ok {
			break
		}
		c, err := p.char("")
		if err != nil {
			return Value{}, err
		}
		b.WriteByte(c)
	}
	return Text(b.String()), nil
}

// varName reads a maximal run of key-class characters, used both for
// variable definitions/references and for $var interpolation inside
// strings.
func (p *parser) varName() (string, error) {
	first, err := p.char(keyChars)
	if err != nil {
		return "", err
	}
	chars := []byte{first}
	for {
		c, ok := p.maybeChar(keyChars)
		if !ok {
			break
		}
		chars = append(chars, c)
	}
	return string(chars), nil
}
