package model

import "testing"

func TestDocument_GetSet(t *testing.T) {
	doc := New()

	if err := doc.Set("a", "7"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok := doc.Get("a")
	if !ok || v != "7" {
		t.Errorf("Get(a) = %v, %v; want 7, true", v, ok)
	}

	if err := doc.Set("nested/b", int32(3)); err != nil {
		t.Fatalf("Set nested failed: %v", err)
	}
	if v, ok := doc.GetInt32("nested/b"); !ok || v != 3 {
		t.Errorf("GetInt32(nested/b) = %v, %v; want 3, true", v, ok)
	}
}

func TestDocument_Exists(t *testing.T) {
	doc, err := Parse([]byte(`{"a": 1, "b": null}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !doc.Exists("a") {
		t.Error("Exists(a) = false, want true")
	}
	if !doc.Exists("b") {
		t.Error("Exists(b) = false, want true (present but null)")
	}
	if doc.Exists("c") {
		t.Error("Exists(c) = true, want false")
	}
}

func TestDocument_TypeMismatchOverwrites(t *testing.T) {
	doc, err := Parse([]byte(`{"a": "string"}`))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if err := doc.Set("a/nested", "x"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, ok := doc.Get("a/nested")
	if !ok || v != "x" {
		t.Errorf("Get(a/nested) = %v, %v; want x, true", v, ok)
	}
}

func TestDocument_Erase(t *testing.T) {
	doc, _ := Parse([]byte(`{"a": {"b": 1}}`))
	if !doc.Erase("a/b") {
		t.Fatal("Erase(a/b) = false, want true")
	}
	if doc.Exists("a/b") {
		t.Error("a/b still exists after erase")
	}
	if doc.Erase("a/b") {
		t.Error("second Erase(a/b) = true, want false (already absent)")
	}
}

func TestDocument_Append(t *testing.T) {
	doc := New()
	if err := doc.Append("list", "x"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := doc.Append("list", "y"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	arr, ok := doc.GetArray("list")
	if !ok || len(arr) != 2 || arr[0] != "x" || arr[1] != "y" {
		t.Errorf("GetArray(list) = %v, %v", arr, ok)
	}
}

func TestDocument_AppendNonArrayFails(t *testing.T) {
	doc, _ := Parse([]byte(`{"a": "scalar"}`))
	if err := doc.Append("a", "x"); err == nil {
		t.Error("Append into non-array should fail")
	}
}

func TestDocument_MergeObject(t *testing.T) {
	doc, _ := Parse([]byte(`{"a": {"x": 1, "y": 2}}`))
	if err := doc.Merge("a", map[string]any{"y": 3, "z": 4}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	x, _ := doc.Get("a/x")
	y, _ := doc.Get("a/y")
	z, _ := doc.Get("a/z")
	if toStr(x) != "1" {
		t.Errorf("a/x = %v, want 1", x)
	}
	if toStr(y) != "3" {
		t.Errorf("a/y = %v, want 3 (source wins)", y)
	}
	if toStr(z) != "4" {
		t.Errorf("a/z = %v, want 4", z)
	}
}

func TestDocument_MergeArray(t *testing.T) {
	doc, _ := Parse([]byte(`{"a": [1, 2]}`))
	if err := doc.Merge("a", []any{3, 4}); err != nil {
		t.Fatalf("Merge failed: %v", err)
	}
	arr, ok := doc.GetArray("a")
	if !ok || len(arr) != 4 {
		t.Errorf("GetArray(a) = %v, %v; want 4 elements", arr, ok)
	}
}

func TestDocument_MergeTypeMismatchFails(t *testing.T) {
	doc, _ := Parse([]byte(`{"a": {"x": 1}}`))
	if err := doc.Merge("a", []any{1}); err == nil {
		t.Error("Merge with mismatched types should fail")
	}
}

func TestDocument_CloneIsIndependent(t *testing.T) {
	doc, _ := Parse([]byte(`{"a": {"b": 1}}`))
	clone := doc.Clone()
	if err := doc.Set("a/b", 2); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	v, _ := clone.Get("a/b")
	if toStr(v) != "1" {
		t.Errorf("clone mutated: a/b = %v, want 1", v)
	}
}

func TestDocument_EqualRoundTrip(t *testing.T) {
	doc, _ := Parse([]byte(`{"a":1}`))
	clone := doc.Clone()
	if !doc.Equal(clone) {
		t.Error("clone should be Equal to original")
	}
	clone.Set("a", 2)
	if doc.Equal(clone) {
		t.Error("mutated clone should not be Equal to original")
	}
}

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindString, "string"},
		{KindInt, "int"},
		{KindFloat, "float"},
		{KindBool, "bool"},
		{KindObject, "object"},
		{KindArray, "array"},
		{KindNull, "null"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func toStr(v any) string {
	s, _ := Stringify(v)
	return s
}
