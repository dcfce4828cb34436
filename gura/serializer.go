package gura

import (
	"math"
	"strconv"
	"strings"
)

var dumpEscapes = map[byte]string{
	'\\': `\\`,
	'\b': `\b`,
	'\f': `\f`,
	'\n': `\n`,
	'\r': `\r`,
	'\t': `\t`,
	'"':  `\"`,
	'$':  `\$`,
}

// Dump serializes v, which must be an Object (possibly empty), into
// canonical Gura text: 4-space indentation, escaped strings, the "empty"
// sentinel for empty objects, and the array compaction heuristic described
// in spec.md §4.9. The result has no leading or trailing newline.
func Dump(v Value) (string, error) {
	if v.Kind() != KindObject {
		return "", &TypeError{Msg: "Dump requires an Object value, got " + v.Kind().String()}
	}
	s, err := dumpValue(v, 0)
	if err != nil {
		return "", err
	}
	return strings.Trim(s, "\n"), nil
}

// dumpValue recursively renders v at the given indentation depth. It is
// also used internally (at depth 0) to stringify a variable's native Value
// for interpolation into a basic_string.
func dumpValue(v Value, depth int) (string, error) {
	switch v.kind {
	case KindNull:
		return "null", nil
	case KindBool:
		if v.b {
			return "true", nil
		}
		return "false", nil
	case KindInteger:
		return strconv.FormatInt(v.i, 10), nil
	case KindFloat:
		return dumpFloat(v.f), nil
	case KindText:
		return dumpString(v.s), nil
	case KindArray:
		return dumpArray(v.arr, depth)
	case KindObject:
		return dumpObject(v.obj, depth)
	default:
		return "", &TypeError{Msg: "unrecognized value kind"}
	}
}

func dumpFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	default:
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
}

func dumpString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		if esc, ok := dumpEscapes[c]; ok {
			b.WriteString(esc)
		} else {
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// dumpObject renders o's entries one per line, each self-indented by
// depth*4 spaces, joined without a trailing newline. A nested non-empty
// Object recurses at depth+1 and its own self-indented lines are embedded
// directly — the caller never re-indents them.
func dumpObject(o *Object, depth int) (string, error) {
	if o.Len() == 0 {
		return "empty", nil
	}
	indent := strings.Repeat(" ", depth*4)
	lines := make([]string, 0, o.Len())
	for _, key := range o.Keys() {
		value, _ := o.Get(key)

		if value.kind == KindObject {
			if value.obj.Len() == 0 {
				lines = append(lines, indent+key+": empty")
				continue
			}
			nested, err := dumpObject(value.obj, depth+1)
			if err != nil {
				return "", err
			}
			lines = append(lines, indent+key+":\n"+nested)
			continue
		}

		rendered, err := dumpValue(value, depth)
		if err != nil {
			return "", err
		}
		lines = append(lines, indent+key+": "+rendered)
	}
	return strings.Join(lines, "\n"), nil
}

// dumpArray renders items in compact form ("[a, b, c]") unless every
// element is a non-empty Object or non-empty Array, in which case it uses
// the multiline form with each element indented by 4 spaces. Object
// elements already self-indent every one of their lines (see dumpObject),
// so only non-Object elements need their first line indented here.
func dumpArray(items []Value, depth int) (string, error) {
	if useMultilineArray(items) {
		indent := strings.Repeat(" ", (depth+1)*4)
		var b strings.Builder
		b.WriteString("[\n")
		for i, item := range items {
			rendered, err := dumpValue(item, depth+1)
			if err != nil {
				return "", err
			}
			if item.kind != KindObject {
				b.WriteString(indent)
			}
			b.WriteString(rendered)
			if i < len(items)-1 {
				b.WriteByte(',')
			}
			b.WriteByte('\n')
		}
		b.WriteString(strings.Repeat(" ", depth*4))
		b.WriteByte(']')
		return b.String(), nil
	}

	parts := make([]string, len(items))
	for i, item := range items {
		rendered, err := dumpValue(item, depth)
		if err != nil {
			return "", err
		}
		parts[i] = rendered
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

func useMultilineArray(items []Value) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		switch item.kind {
		case KindObject:
			if item.obj.Len() == 0 {
				return false
			}
		case KindArray:
			if len(item.arr) == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
