package collab

import (
	"context"
	"testing"

	"github.com/flowgate/flowgate/internal/model"
	rerrors "github.com/flowgate/flowgate/pkg/errors"
)

func TestLoggingEnvironmentManager_AddAndForward(t *testing.T) {
	m := NewLoggingEnvironmentManager(nil)
	if err := m.AddEnvironment("envA"); err != nil {
		t.Fatalf("AddEnvironment: %v", err)
	}

	doc, _ := model.Parse([]byte(`{"a":1}`))
	if err := m.ForwardEvent(context.Background(), "envA", 0, doc); err != nil {
		t.Errorf("ForwardEvent: %v", err)
	}
}

func TestLoggingEnvironmentManager_ForwardUnknownTargetFails(t *testing.T) {
	m := NewLoggingEnvironmentManager(nil)
	doc, _ := model.Parse([]byte(`{}`))
	err := m.ForwardEvent(context.Background(), "missing", 0, doc)
	if !rerrors.IsCode(err, rerrors.CodeNotFound) {
		t.Errorf("want CodeNotFound, got %v", err)
	}
}

func TestLoggingEnvironmentManager_DuplicateAddFails(t *testing.T) {
	m := NewLoggingEnvironmentManager(nil)
	m.AddEnvironment("envA")
	if err := m.AddEnvironment("envA"); !rerrors.IsCode(err, rerrors.CodeAlreadyExists) {
		t.Errorf("want CodeAlreadyExists, got %v", err)
	}
}

func TestLoggingEnvironmentManager_DeleteThenForwardFails(t *testing.T) {
	m := NewLoggingEnvironmentManager(nil)
	m.AddEnvironment("envA")
	if err := m.DeleteEnvironment("envA"); err != nil {
		t.Fatalf("DeleteEnvironment: %v", err)
	}
	doc, _ := model.Parse([]byte(`{}`))
	if err := m.ForwardEvent(context.Background(), "envA", 0, doc); err == nil {
		t.Error("want error forwarding to deleted environment")
	}
}
