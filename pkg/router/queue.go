package router

import (
	"time"

	"github.com/flowgate/flowgate/internal/model"
)

// Queue is the bounded, multi-producer/multi-consumer intake queue: a
// buffered channel guarded by select/default on the producer side so
// TryEnqueue never blocks, and a timed select on the consumer side so
// a worker can re-check the running flag roughly once per timeout
// instead of parking forever on an empty queue.
type Queue struct {
	ch chan *model.Document
}

// NewQueue creates a queue with the given bounded capacity.
func NewQueue(capacity int) *Queue {
	if capacity <= 0 {
		capacity = 1
	}
	return &Queue{ch: make(chan *model.Document, capacity)}
}

// TryEnqueue offers event onto the queue without blocking. Reports
// false when the queue is full.
func (q *Queue) TryEnqueue(event *model.Document) bool {
	select {
	case q.ch <- event:
		return true
	default:
		return false
	}
}

// DequeueTimed waits up to timeout for an event. ok is false on
// timeout, in which case the caller should re-check whether it should
// keep running rather than treat this as an empty-stream signal.
func (q *Queue) DequeueTimed(timeout time.Duration) (event *model.Document, ok bool) {
	select {
	case event = <-q.ch:
		return event, true
	case <-time.After(timeout):
		return nil, false
	}
}

// Len reports the number of events currently buffered.
func (q *Queue) Len() int { return len(q.ch) }

// Cap reports the queue's bounded capacity.
func (q *Queue) Cap() int { return cap(q.ch) }
