// Package session implements the process-wide Session Manager: the
// registry that binds named sessions to policies, routes, and filters
// with cross-field uniqueness invariants.
package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a binding of a name to a policy, filter, and route, with
// optional lifespan expiry. Fields other than soft-mutable metadata
// are immutable once created.
type Session struct {
	SessionID    uuid.UUID
	Sequence     uint64
	SessionName  string
	PolicyName   string
	FilterName   string
	RouteName    string
	Lifespan     time.Duration
	Description  string
	CreationDate time.Time
}

// Expired reports whether the session's lifespan has elapsed. A zero
// Lifespan means unbounded.
func (s Session) Expired(now time.Time) bool {
	if s.Lifespan == 0 {
		return false
	}
	return now.After(s.CreationDate.Add(s.Lifespan))
}
