package gura

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestObjectSetRejectsDuplicateKeys(t *testing.T) {
	o := NewObject()
	if !o.Set("a", Integer(1)) {
		t.Fatalf("first Set for a new key should succeed")
	}
	if o.Set("a", Integer(2)) {
		t.Fatalf("second Set for an existing key should fail")
	}
	v, ok := o.Get("a")
	if !ok {
		t.Fatalf("expected key a to be present")
	}
	if diff := cmp.Diff(Integer(1), v, valueComparer); diff != "" {
		t.Errorf("Get(a) mismatch after rejected overwrite (-want +got):\n%s", diff)
	}
}

func TestObjectKeysPreserveInsertionOrder(t *testing.T) {
	o := NewObject()
	o.Set("z", Integer(1))
	o.Set("a", Integer(2))
	o.Set("m", Integer(3))

	want := []string{"z", "a", "m"}
	if diff := cmp.Diff(want, o.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestValueEqualNaN(t *testing.T) {
	a := Float(math.NaN())
	b := Float(math.NaN())
	if !a.Equal(b) {
		t.Errorf("expected NaN to equal NaN per the is-nan comparison rule")
	}
	if a.Equal(Float(1.0)) {
		t.Errorf("NaN must not equal a real float")
	}
}

func TestValueEqualObjectsIgnoreKeyOrder(t *testing.T) {
	o1 := NewObject()
	o1.Set("a", Integer(1))
	o1.Set("b", Integer(2))

	o2 := NewObject()
	o2.Set("b", Integer(2))
	o2.Set("a", Integer(1))

	if !FromObject(o1).Equal(FromObject(o2)) {
		t.Errorf("objects with the same entries in different orders should compare equal")
	}
}

func TestValueDebug(t *testing.T) {
	o := NewObject()
	o.Set("name", Text("gura"))
	o.Set("tags", Array([]Value{Integer(1), Integer(2)}))

	got := FromObject(o).Debug()
	want := `Object{name: Text("gura"), tags: Array[Integer(1), Integer(2)]}`
	if got != want {
		t.Errorf("Debug() = %q, want %q", got, want)
	}
}
