package gura

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// A list written across several lines with shared indentation splits its
// elements on commas, each becoming its own single-key Object rather than
// one combined object — see spec.md §4.6's "unwrap the expression" note.
func TestLoadListWithEmbeddedPairsSplitsOnCommas(t *testing.T) {
	input := "objs: [\n    a: 1,\n    b: 2\n]\n"
	got, err := Load(input, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := mustObject(t, "objs", Array([]Value{
		mustObject(t, "a", Integer(1)),
		mustObject(t, "b", Integer(2)),
	}))
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadNestedChildSameIndentAsParentIsRejected(t *testing.T) {
	// pairBodyRule pushes the parent's indent (0) before parsing its value;
	// a child expression that reports that same indent back means the
	// child never actually indented further than its parent.
	p := newTestParser("a:\nb: 1\n")
	_, err := pairBodyRule(p)
	var indentErr *InvalidIndentationError
	if !errors.As(err, &indentErr) {
		t.Fatalf("pairBodyRule error = %v (%T), want *InvalidIndentationError", err, err)
	}
	if !strings.Contains(indentErr.Msg, "same level") {
		t.Errorf("Msg = %q, want it to mention same level", indentErr.Msg)
	}
}

func TestLoadChildIndentMustDifferByExactlyFour(t *testing.T) {
	input := "a:\n        b: 1\n"
	_, err := Load(input, "")
	var indentErr *InvalidIndentationError
	if !errors.As(err, &indentErr) {
		t.Fatalf("Load error = %v (%T), want *InvalidIndentationError", err, err)
	}
	if !strings.Contains(indentErr.Msg, "difference between levels must be 4") {
		t.Errorf("Msg = %q, want the level-difference message", indentErr.Msg)
	}
}

func TestLoadArrayValuePairCanBeFollowedByASibling(t *testing.T) {
	// pairBodyRule pops and re-pushes the indent stack after an
	// array-valued pair so a following sibling at the same level parses
	// as a sibling, not a dedent.
	input := "items: [1, 2]\nname: \"x\"\n"
	got, err := Load(input, "")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := mustObject(t,
		"items", Array([]Value{Integer(1), Integer(2)}),
		"name", Text("x"),
	)
	if diff := cmp.Diff(want, got, valueComparer); diff != "" {
		t.Errorf("Load mismatch (-want +got):\n%s", diff)
	}
}

// match's farthest-failure diagnostics should surface the deepest-reaching
// alternative's complaint (the truncated "number" branch, which consumes
// "0x" before failing) rather than the first alternative tried ("null",
// which fails immediately at position 0).
func TestPrimitiveTypeFarthestFailureNamesDeepestAlternative(t *testing.T) {
	p := newTestParser("0x")
	_, err := primitiveTypeRule(p)
	if err == nil {
		t.Fatalf("expected primitiveTypeRule to fail on a truncated hex literal")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("error = %v (%T), want *ParseError", err, err)
	}
}

// A key with no value at all — EOF immediately after the key's own
// newline — makes any_type match nothing, which pairBodyRule reports as
// an invalid pair rather than silently producing a null value. This is a
// plain *ParseError (a backtrackable non-match, not a structural fault),
// so pairBodyRule is exercised directly: through Load it is indistinguishable
// from "this expression has no pairs at all" and gets absorbed into the
// generic assertEnd failure, exactly as in the reference parser (GuraParser.py's
// expression() swallows it via maybe_match, and start() never sees it either).
func TestPairBodyRuleKeyWithNoValueIsAnInvalidPairError(t *testing.T) {
	p := newTestParser("key:\n")
	_, err := pairBodyRule(p)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("pairBodyRule error = %v (%T), want *ParseError", err, err)
	}
	if !strings.Contains(parseErr.Msg, "invalid pair") {
		t.Errorf("Msg = %q, want it to mention invalid pair", parseErr.Msg)
	}
}

func TestKeyRuleRequiresColon(t *testing.T) {
	p := newTestParser("name")
	if _, err := keyRule(p); err == nil {
		t.Fatalf("keyRule should fail without a trailing colon")
	}
}

func TestVariableBodyRuleRejectsExpressionValue(t *testing.T) {
	// Variable definitions only accept basic_string | literal_string |
	// number | variable_value, narrower than any_type (spec.md §4.4).
	p := newTestParser("$cfg: host: \"x\"\n")
	if _, err := variableBodyRule(p); err == nil {
		t.Fatalf("variableBodyRule should reject an expression/object value")
	}
}

func TestListRuleToleratesBlankLinesAndTrailingComma(t *testing.T) {
	p := newTestParser("[\n    1,\n\n    2,\n]")
	items, err := listRule(p)
	if err != nil {
		t.Fatalf("listRule failed: %v", err)
	}
	want := []Value{Integer(1), Integer(2)}
	if diff := cmp.Diff(want, items, valueComparer); diff != "" {
		t.Errorf("listRule mismatch (-want +got):\n%s", diff)
	}
}
