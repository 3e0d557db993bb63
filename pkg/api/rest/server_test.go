package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flowgate/flowgate/pkg/collab"
	"github.com/flowgate/flowgate/pkg/router"
	"github.com/flowgate/flowgate/pkg/session"
)

type memStore struct{}

func (memStore) Update(ctx context.Context, key string, value []byte) error { return nil }

func newTestServer(t *testing.T) *Server {
	t.Helper()
	builder := collab.NewFieldRuleBuilder()
	if err := builder.Define("critical", collab.RouteDefinition{Rules: []collab.Rule{
		{Field: "level", Operator: "eq", Value: "critical"},
	}}); err != nil {
		t.Fatalf("define route: %v", err)
	}

	r := router.New(router.DefaultConfig(), builder, collab.NewLoggingEnvironmentManager(nil), memStore{})
	sessions := session.New()

	return NewServer(Config{Addr: ":0", Router: r, Sessions: sessions})
}

func postJSON(t *testing.T, s *Server, body map[string]any) (int, apiResponse) {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/v1/router", bytes.NewReader(raw))
	rec := httptest.NewRecorder()
	s.handleRouterAction(rec, req)

	var resp apiResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return rec.Code, resp
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHandleReady(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/ready", nil)
	rec := httptest.NewRecorder()
	s.handleReady(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestHandleRouterAction_SetThenGet(t *testing.T) {
	s := newTestServer(t)

	code, resp := postJSON(t, s, map[string]any{
		"action": "set", "name": "critical", "priority": 1, "target": "env-critical",
	})
	if code != http.StatusOK || resp.Message != "Route 'critical' added" {
		t.Fatalf("set: code=%d resp=%+v", code, resp)
	}

	code, resp = postJSON(t, s, map[string]any{"action": "get"})
	if code != http.StatusOK || resp.Message != "Ok" {
		t.Fatalf("get: code=%d resp=%+v", code, resp)
	}
}

func TestHandleRouterAction_MissingField(t *testing.T) {
	s := newTestServer(t)
	_, resp := postJSON(t, s, map[string]any{"action": "set"})
	if resp.Message != `Error: Missing "name" parameter` {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestHandleRouterAction_UnrecognizedAction(t *testing.T) {
	s := newTestServer(t)
	_, resp := postJSON(t, s, map[string]any{"action": "bogus"})
	if resp.Message != "Invalid action 'bogus'" {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestHandleRouterAction_RejectsNonPost(t *testing.T) {
	s := newTestServer(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/router", nil)
	rec := httptest.NewRecorder()
	s.handleRouterAction(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestHandleRouterAction_SessionLifecycle(t *testing.T) {
	s := newTestServer(t)

	code, resp := postJSON(t, s, map[string]any{
		"action":       "session_create",
		"session_name": "sess-1",
		"policy_name":  "policy-a",
		"filter_name":  "filter-a",
		"route_name":   "critical",
	})
	if code != http.StatusOK || resp.Message != "Session 'sess-1' created" {
		t.Fatalf("session_create: code=%d resp=%+v", code, resp)
	}

	_, resp = postJSON(t, s, map[string]any{"action": "session_get", "session_name": "sess-1"})
	if resp.Message != "Ok" {
		t.Fatalf("session_get: resp=%+v", resp)
	}

	_, resp = postJSON(t, s, map[string]any{"action": "session_list"})
	names, ok := resp.Data.([]any)
	if !ok || len(names) != 1 {
		t.Fatalf("session_list: resp=%+v", resp)
	}

	_, resp = postJSON(t, s, map[string]any{"action": "session_delete", "session_name": "sess-1"})
	if resp.Message != "Session 'sess-1' deleted" {
		t.Fatalf("session_delete: resp=%+v", resp)
	}
}

func TestHandleRouterAction_SessionDeleteAll(t *testing.T) {
	s := newTestServer(t)
	postJSON(t, s, map[string]any{
		"action": "session_create", "session_name": "sess-1",
		"policy_name": "p", "filter_name": "f", "route_name": "r",
	})
	_, resp := postJSON(t, s, map[string]any{"action": "session_delete_all"})
	if resp.Message != "All sessions deleted" {
		t.Fatalf("resp=%+v", resp)
	}
	_, resp = postJSON(t, s, map[string]any{"action": "session_list"})
	if names, ok := resp.Data.([]any); !ok || len(names) != 0 {
		t.Fatalf("expected empty list, got resp=%+v", resp)
	}
}
