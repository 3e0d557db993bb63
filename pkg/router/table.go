// Package router implements the priority-ordered predicate-based
// dispatcher: the Route Table, Intake Queue, Worker Pool, and Router
// Facade described in the event-processing core.
package router

import (
	"fmt"
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring"

	"github.com/flowgate/flowgate/pkg/interfaces"
)

// Info is the externally visible shape of one route table row, sorted
// ascending by priority in every listing.
type Info struct {
	Name     string
	Priority int
	Target   string
}

// entry is the table's internal record for one route name: the target
// environment, its priority, and one compiled predicate instance per
// worker thread so no predicate state is shared across threads.
type entry struct {
	name       string
	target     string
	priority   int
	predicates []interfaces.Predicate
}

// Table is the Route Table: two consistent indices (name -> priority,
// priority -> route group) guarded by a single reader/writer lock, plus
// a priority-membership bitmap so "is this priority taken" never needs
// to walk the map. Priorities are assumed non-negative, matching every
// example in the source specification's administrative scenarios.
type Table struct {
	mu         sync.RWMutex
	numThreads int

	byName     map[string]int // name -> priority
	byPriority map[int]*entry // priority -> route group
	priorities []int          // sorted ascending, kept in sync with byPriority
	used       *roaring.Bitmap
}

// NewTable creates an empty table sized for numThreads worker threads.
func NewTable(numThreads int) *Table {
	return &Table{
		numThreads: numThreads,
		byName:     make(map[string]int),
		byPriority: make(map[int]*entry),
		used:       roaring.New(),
	}
}

// Add inserts a new route under an exclusive lock. Returns the
// already-registered name or priority via the caller's own error
// construction — Table itself only reports which invariant broke.
func (t *Table) Add(name, target string, priority int, predicates []interfaces.Predicate) error {
	if len(predicates) != t.numThreads {
		return fmt.Errorf("router: expected %d predicate instances, got %d", t.numThreads, len(predicates))
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.byName[name]; exists {
		return errNameExists
	}
	if t.used.Contains(uint32(priority)) {
		return errPriorityTaken
	}

	t.byName[name] = priority
	t.byPriority[priority] = &entry{name: name, target: target, priority: priority, predicates: predicates}
	t.used.Add(uint32(priority))
	t.resort()
	return nil
}

// Remove deletes the route named name, returning its target
// environment so the caller can deregister it.
func (t *Table) Remove(name string) (target string, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	priority, ok := t.byName[name]
	if !ok {
		return "", errNotFound
	}
	e := t.byPriority[priority]
	target = e.target

	delete(t.byName, name)
	delete(t.byPriority, priority)
	t.used.Remove(uint32(priority))
	t.resort()
	return target, nil
}

// ChangePriority reassigns name's priority. Returns (false, nil) when
// the new priority already equals the current one, per the no-op rule.
func (t *Table) ChangePriority(name string, newPriority int) (changed bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	oldPriority, ok := t.byName[name]
	if !ok {
		return false, errNotFound
	}
	if oldPriority == newPriority {
		return false, nil
	}
	if t.used.Contains(uint32(newPriority)) {
		return false, errPriorityTaken
	}

	e := t.byPriority[oldPriority]
	e.priority = newPriority
	delete(t.byPriority, oldPriority)
	t.byPriority[newPriority] = e
	t.byName[name] = newPriority
	t.used.Remove(uint32(oldPriority))
	t.used.Add(uint32(newPriority))
	t.resort()
	return true, nil
}

// Snapshot returns every route sorted ascending by priority, the shape
// serialized to the external store on every mutation.
func (t *Table) Snapshot() []Info {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]Info, 0, len(t.priorities))
	for _, p := range t.priorities {
		e := t.byPriority[p]
		out = append(out, Info{Name: e.name, Priority: e.priority, Target: e.target})
	}
	return out
}

// Dispatch walks routes in ascending-priority order, invoking worker
// workerIndex's predicate instance for each, and returns the target of
// the first match. matched is false when no route accepts the event.
func (t *Table) Dispatch(workerIndex int, accept func(p interfaces.Predicate) bool) (target string, matched bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	for _, p := range t.priorities {
		e := t.byPriority[p]
		if accept(e.predicates[workerIndex]) {
			return e.target, true
		}
	}
	return "", false
}

// resort rebuilds the cached ascending-priority ordering. Called only
// from mutating methods, which are far rarer than dispatch reads.
func (t *Table) resort() {
	priorities := make([]int, 0, len(t.byPriority))
	for p := range t.byPriority {
		priorities = append(priorities, p)
	}
	sort.Ints(priorities)
	t.priorities = priorities
}
