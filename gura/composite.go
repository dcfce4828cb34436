package gura

import (
	"fmt"
	"strings"
)

// anyTypeResult is the result of any_type/primitive_type/complex_type: a
// Value, plus bookkeeping for the cases where the grammar's "expression"
// rule matters structurally to the caller (its own indentation level, and
// whether it legitimately matched nothing at all).
type anyTypeResult struct {
	present        bool
	value          Value
	fromExpression bool
	indent         int
}

type bodyKind int

const (
	bodyUselessLine bodyKind = iota
	bodyVariable
	bodyPair
	bodyDedent
	bodyImport
)

type pairResult struct {
	key    string
	keyPos Position
	value  Value
	indent int
}

type bodyItem struct {
	kind       bodyKind
	pair       pairResult
	importPath string
	importPos  Position
}

// unquotedString matches one or more key-class characters, used for keys
// and variable names.
func unquotedStringRule(p *parser) (string, error) {
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
	return strings.TrimRight(string(chars), " \t"), nil
}

// key matches an unquoted_string followed by a required ':'.
func keyRule(p *parser) (string, error) {
	name, err := unquotedStringRule(p)
	if err != nil {
		return "", err
	}
	if _, err := p.keyword(":"); err != nil {
		return "", err
	}
	return name, nil
}

// variableValue matches $name and resolves it to its native Value, used
// when a variable reference stands alone as a primitive value.
func variableValueRule(p *parser) (Value, error) {
	if _, err := p.keyword("$"); err != nil {
		return Value{}, err
	}
	name, err := unquotedStringRule(p)
	if err != nil {
		return Value{}, err
	}
	return p.lookupVariableValue(name)
}

// variableBody matches a variable definition: $key ws (basic_string |
// literal_string | number | variable_value).
func variableBodyRule(p *parser) (bodyItem, error) {
	if _, err := p.keyword("$"); err != nil {
		return bodyItem{}, err
	}
	namePos := p.here()
	name, err := keyRule(p)
	if err != nil {
		return bodyItem{}, err
	}
	p.ws()
	value, err := match(p,
		namedRule("basic_string", basicStringRule),
		namedRule("literal_string", literalStringRule),
		namedRule("number", numberRule),
		namedRule("variable_value", variableValueRule),
	)
	if err != nil {
		return bodyItem{}, err
	}
	if err := p.defineVariable(name, value, namePos); err != nil {
		return bodyItem{}, err
	}
	return bodyItem{kind: bodyVariable}, nil
}

// uselessLineBody adapts uselessLineRule to the bodyItem shape shared by
// expression's alternation.
func uselessLineBodyRule(p *parser) (bodyItem, error) {
	if _, err := uselessLineRule(p); err != nil {
		return bodyItem{}, err
	}
	return bodyItem{kind: bodyUselessLine}, nil
}

// primitiveType matches null | boolean | basic_string | literal_string |
// number | variable_value | empty_object, with optional surrounding ws.
func primitiveTypeRule(p *parser) (anyTypeResult, error) {
	p.ws()
	v, err := match(p,
		namedRule("null", nullRule),
		namedRule("boolean", booleanRule),
		namedRule("basic_string", basicStringRule),
		namedRule("literal_string", literalStringRule),
		namedRule("number", numberRule),
		namedRule("variable_value", variableValueRule),
		namedRule("empty_object", emptyObjectRule),
	)
	if err != nil {
		return anyTypeResult{}, err
	}
	p.ws()
	return anyTypeResult{present: true, value: v}, nil
}

// list matches a bracketed, comma-separated sequence of any_type values,
// tolerating useless lines and a trailing comma before ']'.
func listRule(p *parser) ([]Value, error) {
	p.ws()
	if _, err := p.keyword("["); err != nil {
		return nil, err
	}

	var result []Value
	for {
		p.ws()
		p.maybeNewLine()

		// uselessLineRule can only ever fail with a *ParseError.
		if _, ok, _ := maybeMatch(p, namedRule("useless_line", uselessLineRule)); ok {
			continue
		}

		item, ok, err := maybeMatch(p, namedRule("any_type", anyTypeRule))
		if err != nil {
			return nil, err
		}
		if !ok || !item.present {
			break
		}
		result = append(result, item.value)

		p.ws()
		if _, ok := p.maybeKeyword(","); !ok {
			break
		}
	}

	p.ws()
	p.maybeNewLine()
	if _, err := p.keyword("]"); err != nil {
		return nil, err
	}
	return result, nil
}

func listTypeRule(p *parser) (anyTypeResult, error) {
	items, err := listRule(p)
	if err != nil {
		return anyTypeResult{}, err
	}
	return anyTypeResult{present: true, value: Array(items)}, nil
}

// complexType matches list | expression.
func complexTypeRule(p *parser) (anyTypeResult, error) {
	return match(p,
		namedRule("list", listTypeRule),
		namedRule("expression", expressionTypeRule),
	)
}

// anyType matches any primitive or complex type.
func anyTypeRule(p *parser) (anyTypeResult, error) {
	v, ok, err := maybeMatch(p, namedRule("primitive_type", primitiveTypeRule))
	if err != nil {
		return anyTypeResult{}, err
	}
	if ok {
		return v, nil
	}
	return complexTypeRule(p)
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// pair matches a single "key: value" binding, enforcing the indentation
// rules in spec.md §4.5/§4.7. It returns a bodyDedent item (not an error)
// when the line's indentation is shallower than the enclosing object's —
// this signals the parent expression to stop without consuming the line.
func pairBodyRule(p *parser) (bodyItem, error) {
	posBeforePair, lineBeforePair := p.pos, p.line

	currentIndent, err := p.wsWithIndentation()
	if err != nil {
		return bodyItem{}, err
	}

	keyPos := p.here()
	key, err := keyRule(p)
	if err != nil {
		return bodyItem{}, err
	}
	p.ws()
	p.maybeNewLine()

	if currentIndent%4 != 0 {
		return bodyItem{}, &InvalidIndentationError{
			Pos:   keyPos,
			Msg:   "indentation block must be divisible by 4",
			Input: p.text,
		}
	}

	lastIndent := p.indentTop()
	switch {
	case lastIndent == -1 || currentIndent > lastIndent:
		p.pushIndent(currentIndent)
	case currentIndent < lastIndent:
		p.popIndent()
		p.pos, p.line = posBeforePair, lineBeforePair
		return bodyItem{kind: bodyDedent}, nil
	}

	value, err := match(p, namedRule("any_type", anyTypeRule))
	if err != nil {
		return bodyItem{}, err
	}
	if !value.present {
		return bodyItem{}, &ParseError{
			Pos:   p.here(),
			Msg:   "invalid pair",
			Input: p.text,
		}
	}

	finalValue := value.value
	if value.fromExpression {
		if value.indent == currentIndent {
			childKey := ""
			if obj, ok := finalValue.AsObject(); ok && obj.Len() > 0 {
				childKey = obj.Keys()[0]
			}
			return bodyItem{}, &InvalidIndentationError{
				Pos:   keyPos,
				Msg:   fmt.Sprintf("wrong indentation for pair %q (parent %q has the same level)", childKey, key),
				Input: p.text,
			}
		}
		if absInt(value.indent-currentIndent) != 4 {
			return bodyItem{}, &InvalidIndentationError{
				Pos:   keyPos,
				Msg:   "difference between levels must be 4",
				Input: p.text,
			}
		}
	}

	if finalValue.Kind() == KindArray {
		p.popIndent()
		p.pushIndent(currentIndent)
	}

	p.maybeNewLine()
	return bodyItem{
		kind: bodyPair,
		pair: pairResult{key: key, keyPos: keyPos, value: finalValue, indent: currentIndent},
	}, nil
}

// expression matches a contiguous block of variable definitions,
// key/value pairs and useless lines sharing one indentation level.
func expressionRule(p *parser) (*Object, int, error) {
	obj := NewObject()
	indentLevel := 0

	for !p.atEnd() {
		item, ok, err := maybeMatch(p,
			namedRule("variable", variableBodyRule),
			namedRule("pair", pairBodyRule),
			namedRule("useless_line", uselessLineBodyRule),
		)
		if err != nil {
			return nil, 0, err
		}
		if !ok || item.kind == bodyDedent {
			break
		}

		if item.kind == bodyPair {
			if !obj.Set(item.pair.key, item.pair.value) {
				return nil, 0, &DuplicatedKeyError{
					Pos:   item.pair.keyPos,
					Key:   item.pair.key,
					Input: p.text,
				}
			}
			indentLevel = item.pair.indent
		}

		// No ws() before this probe, matching GuraParser.py's expression():
		// maybeKeyword itself doesn't consume on a miss, so nothing to
		// restore on failure.
		if _, ok := p.maybeKeyword("]", ","); ok {
			p.popIndent()
			p.pos--
			break
		}
	}

	return obj, indentLevel, nil
}

func expressionTypeRule(p *parser) (anyTypeResult, error) {
	obj, indent, err := expressionRule(p)
	if err != nil {
		return anyTypeResult{}, err
	}
	if obj.Len() == 0 {
		return anyTypeResult{present: false}, nil
	}
	return anyTypeResult{present: true, value: FromObject(obj), fromExpression: true, indent: indent}, nil
}

// quotedStringWithVar matches a double-quoted string with $var
// interpolation but no escape sequences, used for import paths.
func quotedStringWithVarRule(p *parser) (string, error) {
	quote, err := p.keyword(`"`)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	for {
		if _, ok := p.maybeKeyword(quote); ok {
			break
		}
		c, err := p.char("")
		if err != nil {
			return "", err
		}
		if c == '$' {
			name, err := p.varName()
			if err != nil {
				return "", err
			}
			val, err := p.lookupVariable(name)
			if err != nil {
				return "", err
			}
			b.WriteString(val)
		} else {
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

// guraImport matches "import \"path\"", recording the path and the
// position just before its opening quote (used for DuplicatedImportError).
func guraImportRule(p *parser) (bodyItem, error) {
	if _, err := p.keyword("import"); err != nil {
		return bodyItem{}, err
	}
	if _, err := p.char(" "); err != nil {
		return bodyItem{}, err
	}
	pathPos := p.here()
	path, err := quotedStringWithVarRule(p)
	if err != nil {
		return bodyItem{}, err
	}
	p.ws()
	p.maybeNewLine()
	return bodyItem{kind: bodyImport, importPath: path, importPos: pathPos}, nil
}
