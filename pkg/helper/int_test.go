package helper

import "testing"

func TestIntCalc_Sum(t *testing.T) {
	op, err := IntCalc("n", "int.calc", []string{"sum", "5"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"n": 10}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success, trace=%s", res.Trace)
	}
	v, _ := doc.GetInt32("n")
	if v != 15 {
		t.Errorf("n = %d, want 15", v)
	}
}

func TestIntCalc_DivByZeroLiteralFailsConstruction(t *testing.T) {
	if _, err := IntCalc("n", "int.calc", []string{"div", "0"}); err == nil {
		t.Error("want construction error for literal zero divisor")
	}
}

func TestIntCalc_DivByZeroReferenceFailsAtRuntime(t *testing.T) {
	op, err := IntCalc("n", "int.calc", []string{"div", "$d"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	res := op(mustDoc(t, `{"n": 10, "d": 0}`))
	if res.Success {
		t.Error("want runtime failure on zero reference divisor")
	}
}

func TestIntCalc_MissingTargetFails(t *testing.T) {
	op, _ := IntCalc("n", "int.calc", []string{"sum", "1"})
	res := op(mustDoc(t, `{}`))
	if res.Success {
		t.Error("want failure when target missing")
	}
}

func TestIntCalc_UnsupportedOpFailsConstruction(t *testing.T) {
	if _, err := IntCalc("n", "int.calc", []string{"mod", "1"}); err == nil {
		t.Error("want construction error for unsupported op")
	}
}

func TestIntCalc_SumWrapsOnOverflow(t *testing.T) {
	op, err := IntCalc("n", "int.calc", []string{"sum", "1"})
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	doc := mustDoc(t, `{"n": 2147483647}`)
	res := op(doc)
	if !res.Success {
		t.Fatalf("want success (wrap, not failure), trace=%s", res.Trace)
	}
	v, _ := doc.GetInt32("n")
	if v != -2147483648 {
		t.Errorf("n = %d, want -2147483648 (wrapped)", v)
	}
}
