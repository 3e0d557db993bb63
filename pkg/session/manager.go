package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	rerrors "github.com/flowgate/flowgate/pkg/errors"
)

// AuditSink receives a lifecycle event for every create/delete/delete-all
// transition. It is advisory: the in-memory maps in Manager remain
// authoritative regardless of sink failure, which is logged and
// otherwise ignored by the caller.
type AuditSink interface {
	RecordSessionEvent(kind string, session Session) error
	RecordSessionsCleared() error
}

// nopAuditSink discards every event; used when no sink is configured.
type nopAuditSink struct{}

func (nopAuditSink) RecordSessionEvent(string, Session) error { return nil }
func (nopAuditSink) RecordSessionsCleared() error             { return nil }

// Manager is the process-wide registry of active sessions. The zero
// value is not usable; construct with New. Callers should construct
// exactly one Manager per process and pass it to collaborators rather
// than reach for a package-level singleton.
type Manager struct {
	mu sync.RWMutex

	sessions map[string]Session // sessionName -> Session
	routes   map[string]string  // routeName -> sessionName
	policies map[string]string  // policyName -> routeName

	sequence uint64
	audit    AuditSink
}

// Option configures a Manager at construction.
type Option func(*Manager)

// WithAuditSink attaches a sink notified of every lifecycle transition.
func WithAuditSink(sink AuditSink) Option {
	return func(m *Manager) { m.audit = sink }
}

// New creates an empty Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]Session),
		routes:   make(map[string]string),
		policies: make(map[string]string),
		audit:    nopAuditSink{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateSession registers a new session. Fails with SessionExists if
// sessionName is taken, or PolicyBound if policyName is already bound
// to a route — the returned error names that route, fixing the
// original implementation's bug of reading the binding before the
// conflict check completed (composing a message with an empty name).
func (m *Manager) CreateSession(sessionName, policyName, filterName, routeName string, lifespan time.Duration, description string) (Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.sessions[sessionName]; exists {
		return Session{}, rerrors.SessionExists(sessionName)
	}

	if boundRoute, bound := m.policies[policyName]; bound {
		return Session{}, rerrors.PolicyBound(policyName, boundRoute)
	}

	m.sequence++
	sess := Session{
		SessionID:    uuid.New(),
		Sequence:     m.sequence,
		SessionName:  sessionName,
		PolicyName:   policyName,
		FilterName:   filterName,
		RouteName:    routeName,
		Lifespan:     lifespan,
		Description:  description,
		CreationDate: time.Now(),
	}

	m.sessions[sessionName] = sess
	m.routes[routeName] = sessionName
	m.policies[policyName] = routeName

	_ = m.audit.RecordSessionEvent("create", sess)

	return sess, nil
}

// GetSession returns the session named name, if any.
func (m *Manager) GetSession(name string) (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[name]
	return sess, ok
}

// GetSessionsList returns every active session name.
func (m *Manager) GetSessionsList() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.sessions))
	for name := range m.sessions {
		names = append(names, name)
	}
	return names
}

// DoesSessionExist reports whether name is an active session.
func (m *Manager) DoesSessionExist(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.sessions[name]
	return ok
}

// DeleteSession removes the session named name, clearing its entries
// from all three maps atomically. Reports false (no-op) if name is
// unknown.
func (m *Manager) DeleteSession(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deleteLocked(name)
}

func (m *Manager) deleteLocked(name string) bool {
	sess, ok := m.sessions[name]
	if !ok {
		return false
	}
	delete(m.sessions, name)
	delete(m.routes, sess.RouteName)
	delete(m.policies, sess.PolicyName)

	_ = m.audit.RecordSessionEvent("delete", sess)
	return true
}

// DeleteAllSessions clears every session in one exclusive-lock section.
func (m *Manager) DeleteAllSessions() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions = make(map[string]Session)
	m.routes = make(map[string]string)
	m.policies = make(map[string]string)
	_ = m.audit.RecordSessionsCleared()
}
