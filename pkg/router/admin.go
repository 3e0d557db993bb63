package router

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowgate/flowgate/internal/model"
	rerrors "github.com/flowgate/flowgate/pkg/errors"
)

// ActionResult is the administrative surface's response to one
// Dispatch call. Data is populated only by the "get" action.
type ActionResult struct {
	Message string
	Data    []Info
}

// Dispatch runs one administrative action against the router, mirroring
// the single dispatch-on-"action"-field entry point the original
// exposes over its command transport (here transport-agnostic; the
// HTTP layer only has to decode a body into fields and re-encode this
// result). Missing required fields and unrecognized actions never
// reach the router's own operations — they are reported directly.
func (r *Router) Dispatch(ctx context.Context, action string, fields map[string]any) ActionResult {
	switch action {
	case "set":
		return r.dispatchSet(ctx, fields)
	case "get":
		return ActionResult{Message: "Ok", Data: r.GetRouteTable()}
	case "delete":
		return r.dispatchDelete(fields)
	case "change_priority":
		return r.dispatchChangePriority(fields)
	case "enqueue_event":
		return r.dispatchEnqueueEvent(fields)
	default:
		return ActionResult{Message: fmt.Sprintf("Invalid action '%v'", action)}
	}
}

func (r *Router) dispatchSet(ctx context.Context, fields map[string]any) ActionResult {
	name, err := stringField(fields, "name")
	if err != nil {
		return ActionResult{Message: err.Error()}
	}
	priority, err := intField(fields, "priority")
	if err != nil {
		return ActionResult{Message: err.Error()}
	}
	target, err := stringField(fields, "target")
	if err != nil {
		return ActionResult{Message: err.Error()}
	}

	if err := r.AddRoute(ctx, name, target, priority); err != nil {
		return ActionResult{Message: "Error: " + errorMessage(err)}
	}
	return ActionResult{Message: fmt.Sprintf("Route '%s' added", name)}
}

func (r *Router) dispatchDelete(fields map[string]any) ActionResult {
	name, err := stringField(fields, "name")
	if err != nil {
		return ActionResult{Message: err.Error()}
	}

	if err := r.RemoveRoute(name); err != nil {
		return ActionResult{Message: "Error: " + errorMessage(err)}
	}
	return ActionResult{Message: fmt.Sprintf("Route '%s' deleted", name)}
}

func (r *Router) dispatchChangePriority(fields map[string]any) ActionResult {
	name, err := stringField(fields, "name")
	if err != nil {
		return ActionResult{Message: err.Error()}
	}
	priority, err := intField(fields, "priority")
	if err != nil {
		return ActionResult{Message: err.Error()}
	}

	if err := r.ChangeRoutePriority(name, priority); err != nil {
		return ActionResult{Message: "Error: " + errorMessage(err)}
	}
	return ActionResult{Message: fmt.Sprintf("Route '%s' priority changed to '%d'", name, priority)}
}

func (r *Router) dispatchEnqueueEvent(fields map[string]any) ActionResult {
	raw, err := stringField(fields, "event")
	if err != nil {
		return ActionResult{Message: err.Error()}
	}

	event := r.docPool.Get()
	if err := model.ParseInto(event, []byte(raw)); err != nil {
		r.docPool.Put(event)
		return ActionResult{Message: "Error: " + err.Error()}
	}

	if err := r.EnqueueEvent(event); err != nil {
		r.docPool.Put(event)
		return ActionResult{Message: "Error: " + errorMessage(err)}
	}
	return ActionResult{Message: "Ok"}
}

// errorMessage extracts the plain message from a *rerrors.RouterError
// so responses read like "Error: Route 'x' not found" rather than
// doubling up the code tag that Error() adds for log output.
func errorMessage(err error) string {
	var re *rerrors.RouterError
	if errors.As(err, &re) {
		return re.Message
	}
	return err.Error()
}

func stringField(fields map[string]any, name string) (string, error) {
	v, ok := fields[name]
	if !ok {
		return "", fmt.Errorf(`Error: Missing "%s" parameter`, name)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", fmt.Errorf(`Error: Missing "%s" parameter`, name)
	}
	return s, nil
}

func intField(fields map[string]any, name string) (int, error) {
	v, ok := fields[name]
	if !ok {
		return 0, fmt.Errorf(`Error: Missing "%s" parameter`, name)
	}
	var n int
	switch t := v.(type) {
	case int:
		n = t
	case int32:
		n = int(t)
	case int64:
		n = int(t)
	case float64:
		n = int(t)
	default:
		return 0, fmt.Errorf(`Error: Missing "%s" parameter`, name)
	}
	if n < 0 {
		return 0, fmt.Errorf(`Error: "%s" parameter must not be negative`, name)
	}
	return n, nil
}
