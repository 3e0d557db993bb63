package session

import (
	"errors"
	"testing"
	"time"

	rerrors "github.com/flowgate/flowgate/pkg/errors"
)

func TestCreateSession(t *testing.T) {
	m := New()
	sess, err := m.CreateSession("s1", "policy1", "filter1", "routeA", 0, "desc")
	if err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if sess.SessionName != "s1" {
		t.Errorf("SessionName = %q, want s1", sess.SessionName)
	}
	if !m.DoesSessionExist("s1") {
		t.Error("DoesSessionExist(s1) = false, want true")
	}
}

func TestCreateSession_DuplicateNameFails(t *testing.T) {
	m := New()
	if _, err := m.CreateSession("s1", "p1", "f1", "r1", 0, ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := m.CreateSession("s1", "p2", "f2", "r2", 0, "")
	if !rerrors.IsCode(err, rerrors.CodeSessionExists) {
		t.Errorf("want CodeSessionExists, got %v", err)
	}
}

func TestCreateSession_PolicyBoundNamesExistingRoute(t *testing.T) {
	m := New()
	if _, err := m.CreateSession("s1", "policy1", "f1", "routeA", 0, ""); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := m.CreateSession("s2", "policy1", "f2", "routeB", 0, "")
	if !rerrors.IsCode(err, rerrors.CodePolicyBound) {
		t.Fatalf("want CodePolicyBound, got %v", err)
	}
	want := "[POLICY_BOUND] Policy 'policy1' is already assigned to a route ('routeA')"
	if err.Error() != want {
		t.Errorf("message = %q, want %q", err.Error(), want)
	}
}

func TestDeleteSession(t *testing.T) {
	m := New()
	m.CreateSession("s1", "p1", "f1", "r1", 0, "")
	if !m.DeleteSession("s1") {
		t.Fatal("DeleteSession(s1) = false, want true")
	}
	if m.DoesSessionExist("s1") {
		t.Error("s1 still exists after delete")
	}
	// Policy should be freed for reuse.
	if _, err := m.CreateSession("s2", "p1", "f2", "r2", 0, ""); err != nil {
		t.Errorf("policy p1 should be reusable after delete: %v", err)
	}
}

func TestDeleteSession_UnknownIsNoOp(t *testing.T) {
	m := New()
	if m.DeleteSession("missing") {
		t.Error("DeleteSession(missing) = true, want false")
	}
}

func TestDeleteAllSessions(t *testing.T) {
	m := New()
	m.CreateSession("s1", "p1", "f1", "r1", 0, "")
	m.CreateSession("s2", "p2", "f2", "r2", 0, "")
	m.DeleteAllSessions()
	if len(m.GetSessionsList()) != 0 {
		t.Error("sessions not cleared")
	}
	if _, err := m.CreateSession("s1", "p1", "f1", "r1", 0, ""); err != nil {
		t.Errorf("names should be reusable after DeleteAllSessions: %v", err)
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	s := Session{CreationDate: now.Add(-10 * time.Second), Lifespan: 5 * time.Second}
	if !s.Expired(now) {
		t.Error("want expired")
	}
	unbounded := Session{CreationDate: now.Add(-1000 * time.Hour), Lifespan: 0}
	if unbounded.Expired(now) {
		t.Error("zero lifespan should never expire")
	}
}

type recordingSink struct {
	events  []string
	cleared int
}

func (r *recordingSink) RecordSessionEvent(kind string, _ Session) error {
	r.events = append(r.events, kind)
	return nil
}

func (r *recordingSink) RecordSessionsCleared() error {
	r.cleared++
	return nil
}

func TestAuditSinkReceivesLifecycleEvents(t *testing.T) {
	sink := &recordingSink{}
	m := New(WithAuditSink(sink))
	m.CreateSession("s1", "p1", "f1", "r1", 0, "")
	m.DeleteSession("s1")
	m.DeleteAllSessions()

	if len(sink.events) != 2 || sink.events[0] != "create" || sink.events[1] != "delete" {
		t.Errorf("events = %v, want [create delete]", sink.events)
	}
	if sink.cleared != 1 {
		t.Errorf("cleared = %d, want 1", sink.cleared)
	}
}

func TestCreateSession_ErrorsAreComparableByCode(t *testing.T) {
	m := New()
	m.CreateSession("s1", "p1", "f1", "r1", 0, "")
	_, err := m.CreateSession("s1", "p2", "f2", "r2", 0, "")
	if !errors.Is(err, rerrors.SessionExists("other")) {
		t.Error("want errors.Is to match by code regardless of session name")
	}
}
