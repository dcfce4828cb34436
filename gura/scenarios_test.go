package gura

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// TestLoadScenarios exercises the literal end-to-end examples from
// spec.md §8 directly.
func TestLoadScenarios(t *testing.T) {
	t.Run("A scalars and arrays", func(t *testing.T) {
		got, err := Load("integers: [1, 2, 3]\ncolors: [\"red\", \"yellow\", \"green\"]\n", "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		want := mustObject(t,
			"integers", Array([]Value{Integer(1), Integer(2), Integer(3)}),
			"colors", Array([]Value{Text("red"), Text("yellow"), Text("green")}),
		)
		if diff := cmp.Diff(want, got, valueComparer); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("B nested object", func(t *testing.T) {
		got, err := Load("user1:\n    name: \"Carlos\"\n    year: 1890\n", "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		user1 := mustObject(t, "name", Text("Carlos"), "year", Integer(1890))
		want := mustObject(t, "user1", user1)
		if diff := cmp.Diff(want, got, valueComparer); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("C variable definition and use", func(t *testing.T) {
		got, err := Load("$port: 8080\nserver:\n    port: $port\n", "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		server := mustObject(t, "port", Integer(8080))
		want := mustObject(t, "server", server)
		if diff := cmp.Diff(want, got, valueComparer); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("D integer bases and floats", func(t *testing.T) {
		got, err := Load("h: 0xDEADBEEF\no: 0o755\nb: 0b11010110\nf: -2E-2\ni: inf\n", "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		want := mustObject(t,
			"h", Integer(3735928559),
			"o", Integer(493),
			"b", Integer(214),
			"f", Float(-0.02),
			"i", Float(math.Inf(1)),
		)
		if diff := cmp.Diff(want, got, valueComparer); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("E indentation error", func(t *testing.T) {
		_, err := Load("a:\n  b: 1\n", "")
		var indentErr *InvalidIndentationError
		if !errors.As(err, &indentErr) {
			t.Fatalf("error = %v (%T), want *InvalidIndentationError", err, err)
		}
	})

	t.Run("F duplicated key at line 2", func(t *testing.T) {
		_, err := Load("a: 1\na: 2\n", "")
		var dup *DuplicatedKeyError
		if !errors.As(err, &dup) {
			t.Fatalf("error = %v (%T), want *DuplicatedKeyError", err, err)
		}
		if dup.Pos.Line != 2 {
			t.Errorf("Pos.Line = %d, want 2", dup.Pos.Line)
		}
	})

	t.Run("G string with interpolation and escape", func(t *testing.T) {
		got, err := Load("$who: \"world\"\ng: \"hello \\\"$who\\\"\\n\\tend\"\n", "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		want := mustObject(t, "g", Text("hello \"world\"\n\tend"))
		if diff := cmp.Diff(want, got, valueComparer); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("H empty object", func(t *testing.T) {
		got, err := Load("x: empty\n", "")
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		want := mustObject(t, "x", FromObject(NewObject()))
		if diff := cmp.Diff(want, got, valueComparer); diff != "" {
			t.Errorf("mismatch (-want +got):\n%s", diff)
		}

		dumped, err := Dump(got)
		if err != nil {
			t.Fatalf("Dump failed: %v", err)
		}
		if dumped != "x: empty" {
			t.Errorf("Dump = %q, want %q", dumped, "x: empty")
		}
	})
}
