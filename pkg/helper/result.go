package helper

import "github.com/flowgate/flowgate/internal/model"

// Result is the outcome of invoking a compiled Operator on one event.
// Failure leaves the event unchanged; Trace is always set.
type Result struct {
	Event   *model.Document
	Trace   string
	Success bool
}

func success(event *model.Document, trace string) Result {
	return Result{Event: event, Trace: trace, Success: true}
}

func failure(event *model.Document, trace string) Result {
	return Result{Event: event, Trace: trace, Success: false}
}

// Operator is a compiled helper invocation: a callable that reads and
// writes fields on an event and reports success or failure with a
// trace string. It carries its captured state by value so that a
// compiled pipeline is safe to duplicate per worker, or to share when
// no per-invocation state exists.
type Operator func(event *model.Document) Result
