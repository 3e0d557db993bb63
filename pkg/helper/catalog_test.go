package helper

import "testing"

func TestRegexExtract(t *testing.T) {
	op, err := RegexExtract("out", "regex.extract", []string{"$src", `\d+`})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"src": "order-42-confirmed"}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	v, _ := doc.GetString("out")
	if v != "42" {
		t.Errorf("out = %q, want 42", v)
	}
}

func TestRegexExtract_InvalidPatternFailsConstruction(t *testing.T) {
	if _, err := RegexExtract("out", "regex.extract", []string{"$src", `(unclosed`}); err == nil {
		t.Error("want construction error for invalid regex")
	}
}

func TestArrayAppend(t *testing.T) {
	op, err := ArrayAppend("list", "array.append", []string{"$x", "literal"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"x": 1}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	arr, _ := doc.GetArray("list")
	if len(arr) != 2 {
		t.Errorf("list = %v, want 2 elements", arr)
	}
}

func TestArraySplitString(t *testing.T) {
	op, err := ArraySplitString("list", "array.splitString", []string{"$csv", ","})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"csv": "a,b,c"}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	arr, _ := doc.GetArray("list")
	if len(arr) != 3 {
		t.Errorf("list = %v, want 3 elements", arr)
	}
}

func TestArraySplitString_MultiCharSeparatorFailsConstruction(t *testing.T) {
	if _, err := ArraySplitString("list", "array.splitString", []string{"$csv", ", "}); err == nil {
		t.Error("want construction error for multi-char separator")
	}
}

func TestObjectMerge(t *testing.T) {
	op, err := ObjectMerge("a", "object.merge", []string{"$b"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"a": {"x": 1}, "b": {"y": 2}}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	if _, ok := doc.Get("a/y"); !ok {
		t.Error("a/y missing after merge")
	}
}

func TestObjectMerge_TypeMismatchFails(t *testing.T) {
	op, _ := ObjectMerge("a", "object.merge", []string{"$b"})
	res := op(mustDoc(t, `{"a": {"x": 1}, "b": [1,2]}`))
	if res.Success {
		t.Error("want failure on type mismatch")
	}
}

func TestFieldDelete(t *testing.T) {
	op, err := FieldDelete("a/b", "field.delete", nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"a": {"b": 1}}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	if doc.Exists("a/b") {
		t.Error("a/b still exists")
	}
}

func TestFieldDelete_AbsentFails(t *testing.T) {
	op, _ := FieldDelete("missing", "field.delete", nil)
	res := op(mustDoc(t, `{}`))
	if res.Success {
		t.Error("want failure deleting absent field")
	}
}

func TestFieldRename(t *testing.T) {
	op, err := FieldRename("dst", "field.rename", []string{"$src"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"src": "value"}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	v, _ := doc.GetString("dst")
	if v != "value" {
		t.Errorf("dst = %q, want value", v)
	}
	if doc.Exists("src") {
		t.Error("src should have been erased")
	}
}

func TestIPVersion(t *testing.T) {
	op, err := IPVersion("kind", "ip.version", []string{"$addr"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"addr": "192.168.1.1"}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	v, _ := doc.GetString("kind")
	if v != "IPv4" {
		t.Errorf("kind = %q, want IPv4", v)
	}
}

func TestIPVersion_IPv6(t *testing.T) {
	op, _ := IPVersion("kind", "ip.version", []string{"$addr"})
	doc := mustDoc(t, `{"addr": "::1"}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	v, _ := doc.GetString("kind")
	if v != "IPv6" {
		t.Errorf("kind = %q, want IPv6", v)
	}
}

func TestIPVersion_InvalidFails(t *testing.T) {
	op, _ := IPVersion("kind", "ip.version", []string{"$addr"})
	res := op(mustDoc(t, `{"addr": "not-an-ip"}`))
	if res.Success {
		t.Error("want failure on invalid IP")
	}
}

func TestTimeEpochNow(t *testing.T) {
	op, err := TimeEpochNow("ts", "time.epochNow", nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	if _, ok := doc.GetInt32("ts"); !ok {
		t.Error("ts not written")
	}
}

func TestHashSHA1(t *testing.T) {
	op, err := HashSHA1("digest", "hash.sha1", []string{"hello"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	v, _ := doc.GetString("digest")
	want := "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d"
	if v != want {
		t.Errorf("digest = %q, want %q", v, want)
	}
}

func TestDefaultRegistry_HasFullCatalog(t *testing.T) {
	want := []string{
		"string.upper", "string.lower", "string.trim", "string.concat",
		"string.fromArray", "string.fromHex", "string.hexToNumber", "string.replace",
		"int.calc", "regex.extract", "array.append", "array.splitString",
		"object.merge", "field.delete", "field.rename", "ip.version",
		"time.epochNow", "hash.sha1",
	}
	names := make(map[string]bool)
	for _, n := range Default().Names() {
		names[n] = true
	}
	for _, w := range want {
		if !names[w] {
			t.Errorf("missing operator %q in default registry", w)
		}
	}
}
