// Package audit records session and route-table lifecycle events to
// an embedded DuckDB table, supplementing the in-memory state that
// remains authoritative. It exists purely for operator introspection
// (SELECT over session_events/route_events) and is never consulted to
// answer a createSession/addRoute call.
package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/flowgate/flowgate/pkg/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS session_events (
	recorded_at TIMESTAMP,
	kind        VARCHAR,
	session_id  VARCHAR,
	session_name VARCHAR,
	policy_name VARCHAR,
	route_name  VARCHAR
);
CREATE TABLE IF NOT EXISTS route_events (
	recorded_at TIMESTAMP,
	kind        VARCHAR,
	route_name  VARCHAR,
	target      VARCHAR,
	priority    INTEGER
);
`

// Trail is a DuckDB-backed append-only log of session and route
// lifecycle events. Its zero value is not usable; construct with Open.
type Trail struct {
	db *sql.DB
}

// Open creates (or attaches to, if path is a file) a DuckDB database
// and ensures its audit tables exist. An empty path opens an
// in-memory database.
func Open(path string) (*Trail, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open duckdb: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: create schema: %w", err)
	}
	return &Trail{db: db}, nil
}

// Close releases the underlying database handle.
func (t *Trail) Close() error {
	return t.db.Close()
}

// RecordSessionEvent implements session.AuditSink.
func (t *Trail) RecordSessionEvent(kind string, s session.Session) error {
	_, err := t.db.ExecContext(context.Background(),
		`INSERT INTO session_events VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now(), kind, s.SessionID.String(), s.SessionName, s.PolicyName, s.RouteName)
	return err
}

// RecordSessionsCleared implements session.AuditSink.
func (t *Trail) RecordSessionsCleared() error {
	_, err := t.db.ExecContext(context.Background(),
		`INSERT INTO session_events VALUES (?, 'clear_all', '', '', '', '')`, time.Now())
	return err
}

// RecordRouteEvent logs a route-table mutation (add/remove/change_priority).
func (t *Trail) RecordRouteEvent(kind, routeName, target string, priority int) error {
	_, err := t.db.ExecContext(context.Background(),
		`INSERT INTO route_events VALUES (?, ?, ?, ?, ?)`,
		time.Now(), kind, routeName, target, priority)
	return err
}
