package router

import (
	"testing"

	"github.com/flowgate/flowgate/internal/model"
	"github.com/flowgate/flowgate/pkg/interfaces"
)

func alwaysTrue(*model.Document) bool  { return true }
func alwaysFalse(*model.Document) bool { return false }

func predicates(n int, p interfaces.Predicate) []interfaces.Predicate {
	out := make([]interfaces.Predicate, n)
	for i := range out {
		out[i] = p
	}
	return out
}

func TestTable_AddAndSnapshot(t *testing.T) {
	tbl := NewTable(2)
	if err := tbl.Add("critical", "env-a", 10, predicates(2, alwaysTrue)); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := tbl.Add("default", "env-b", 1, predicates(2, alwaysTrue)); err != nil {
		t.Fatalf("Add: %v", err)
	}

	snap := tbl.Snapshot()
	if len(snap) != 2 || snap[0].Name != "default" || snap[1].Name != "critical" {
		t.Fatalf("expected ascending-priority order, got %+v", snap)
	}
}

func TestTable_AddDuplicateNameFails(t *testing.T) {
	tbl := NewTable(1)
	tbl.Add("a", "env", 1, predicates(1, alwaysTrue))
	if err := tbl.Add("a", "env", 2, predicates(1, alwaysTrue)); err != errNameExists {
		t.Errorf("want errNameExists, got %v", err)
	}
}

func TestTable_AddDuplicatePriorityFails(t *testing.T) {
	tbl := NewTable(1)
	tbl.Add("a", "env", 1, predicates(1, alwaysTrue))
	if err := tbl.Add("b", "env", 1, predicates(1, alwaysTrue)); err != errPriorityTaken {
		t.Errorf("want errPriorityTaken, got %v", err)
	}
}

func TestTable_Remove(t *testing.T) {
	tbl := NewTable(1)
	tbl.Add("a", "env-a", 1, predicates(1, alwaysTrue))

	target, err := tbl.Remove("a")
	if err != nil || target != "env-a" {
		t.Fatalf("Remove: target=%q err=%v", target, err)
	}
	if _, err := tbl.Remove("a"); err != errNotFound {
		t.Errorf("want errNotFound on second remove, got %v", err)
	}
	if len(tbl.Snapshot()) != 0 {
		t.Error("expected empty table after remove")
	}
}

func TestTable_ChangePriority(t *testing.T) {
	tbl := NewTable(1)
	tbl.Add("a", "env-a", 1, predicates(1, alwaysTrue))
	tbl.Add("b", "env-b", 2, predicates(1, alwaysTrue))

	changed, err := tbl.ChangePriority("a", 1)
	if err != nil || changed {
		t.Fatalf("same-priority change should be a no-op, got changed=%v err=%v", changed, err)
	}

	changed, err = tbl.ChangePriority("a", 5)
	if err != nil || !changed {
		t.Fatalf("ChangePriority: changed=%v err=%v", changed, err)
	}
	snap := tbl.Snapshot()
	if snap[0].Name != "b" || snap[1].Name != "a" || snap[1].Priority != 5 {
		t.Errorf("unexpected table after reprioritize: %+v", snap)
	}

	if _, err := tbl.ChangePriority("a", 2); err != errPriorityTaken {
		t.Errorf("want errPriorityTaken, got %v", err)
	}
}

func TestTable_DispatchAscendingPriority(t *testing.T) {
	tbl := NewTable(1)
	tbl.Add("low-priority-catch-all", "env-catch", 100, predicates(1, alwaysTrue))
	tbl.Add("high-priority-specific", "env-specific", 1, predicates(1, alwaysTrue))

	target, matched := tbl.Dispatch(0, func(p interfaces.Predicate) bool { return p(nil) })
	if !matched || target != "env-specific" {
		t.Errorf("expected the lower-priority route to win, got target=%q matched=%v", target, matched)
	}
}

func TestTable_DispatchNoMatch(t *testing.T) {
	tbl := NewTable(1)
	tbl.Add("a", "env-a", 1, predicates(1, alwaysFalse))

	_, matched := tbl.Dispatch(0, func(p interfaces.Predicate) bool { return p(nil) })
	if matched {
		t.Error("expected no match")
	}
}
