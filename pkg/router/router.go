package router

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/flowgate/flowgate/internal/model"
	"github.com/flowgate/flowgate/internal/pool"
	rerrors "github.com/flowgate/flowgate/pkg/errors"
	"github.com/flowgate/flowgate/pkg/interfaces"
	"github.com/flowgate/flowgate/pkg/logging"
	"github.com/flowgate/flowgate/pkg/telemetry"
)

// routesTableName is the key every snapshot is stored under, matching
// the original's ROUTES_TABLE_NAME constant.
const routesTableName = "routes_table"

// RouteAuditSink receives one event per route-table mutation. It is
// advisory, like session.AuditSink: the Table remains authoritative
// regardless of sink failure. *audit.Trail satisfies this interface.
type RouteAuditSink interface {
	RecordRouteEvent(kind, routeName, target string, priority int) error
}

type nopRouteAuditSink struct{}

func (nopRouteAuditSink) RecordRouteEvent(string, string, string, int) error { return nil }

// Config configures a Router.
type Config struct {
	// NumThreads is the worker pool size; also the number of compiled
	// predicate instances kept per route.
	NumThreads int
	// QueueCapacity bounds the intake queue Run installs by default
	// when the caller does not supply its own Queue via Run.
	QueueCapacity int
	// DequeueTimeout bounds how long a worker waits for one event
	// before re-checking the running flag. Defaults to 1s.
	DequeueTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{NumThreads: 4, QueueCapacity: 1024, DequeueTimeout: time.Second}
}

// Option configures a Router at construction.
type Option func(*Router)

// WithAuditSink attaches a sink notified of every route mutation.
func WithAuditSink(sink RouteAuditSink) Option {
	return func(r *Router) { r.audit = sink }
}

// WithLogger attaches a logger for worker-side diagnostics.
func WithLogger(log *logging.Logger) Option {
	return func(r *Router) { r.log = log }
}

// WithTracer attaches an OpenTelemetry tracer that spans every
// worker's dispatch attempt.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Router) { r.tracer = tracer }
}

// Router is the Router Facade: it coordinates lifecycle, mutates the
// Table under its own lock, snapshots every mutation to the configured
// Store, and dispatches queued events to the Environment Manager.
type Router struct {
	cfg Config

	table      *Table
	builder    interfaces.Builder
	envManager interfaces.EnvironmentManager
	store      interfaces.Store
	audit      RouteAuditSink
	log        *logging.Logger
	tracer     trace.Tracer
	docPool    *pool.DocumentPool

	mu      sync.Mutex // guards run/stop transitions and queue/wg
	running atomic.Bool
	queue   *Queue
	wg      sync.WaitGroup
}

// New creates a Router. builder, envManager, and store are required
// collaborators; see pkg/interfaces.
func New(cfg Config, builder interfaces.Builder, envManager interfaces.EnvironmentManager, store interfaces.Store, opts ...Option) *Router {
	if cfg.NumThreads <= 0 {
		cfg.NumThreads = 1
	}
	if cfg.DequeueTimeout <= 0 {
		cfg.DequeueTimeout = time.Second
	}
	r := &Router{
		cfg:        cfg,
		table:      NewTable(cfg.NumThreads),
		builder:    builder,
		envManager: envManager,
		store:      store,
		audit:      nopRouteAuditSink{},
		log:        logging.Noop(),
		docPool:    pool.NewDocumentPool(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// AddRoute compiles numThreads independent predicate instances
// concurrently, registers the environment, and inserts the route. On
// any failure after the environment was registered, the environment is
// deregistered as rollback and no partial state is left behind.
func (r *Router) AddRoute(ctx context.Context, name, envName string, priority int) error {
	predicates, err := r.compileRoute(ctx, name)
	if err != nil {
		return rerrors.BuildError(err)
	}

	if err := r.envManager.AddEnvironment(envName); err != nil {
		return err
	}

	if err := r.table.Add(name, envName, priority, predicates); err != nil {
		_ = r.envManager.DeleteEnvironment(envName)
		return translateTableError(err, name, priority)
	}

	r.snapshot()
	_ = r.audit.RecordRouteEvent("add", name, envName, priority)
	return nil
}

// compileRoute builds numThreads independent predicate instances for
// name concurrently. Every build runs to completion; the first error
// is returned once all of them have finished.
func (r *Router) compileRoute(ctx context.Context, name string) ([]interfaces.Predicate, error) {
	predicates := make([]interfaces.Predicate, r.cfg.NumThreads)
	g, _ := errgroup.WithContext(ctx)
	for i := 0; i < r.cfg.NumThreads; i++ {
		i := i
		g.Go(func() error {
			p, err := r.builder.BuildRoute(name)
			if err != nil {
				return err
			}
			predicates[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return predicates, nil
}

// RemoveRoute erases name from both indices, snapshots the table, and
// deregisters its environment.
func (r *Router) RemoveRoute(name string) error {
	target, err := r.table.Remove(name)
	if err != nil {
		return translateTableError(err, name, 0)
	}

	r.snapshot()
	_ = r.audit.RecordRouteEvent("remove", name, target, 0)
	return r.envManager.DeleteEnvironment(target)
}

// ChangeRoutePriority reassigns name's priority. A request that leaves
// the priority unchanged is a no-op and does not snapshot.
func (r *Router) ChangeRoutePriority(name string, priority int) error {
	changed, err := r.table.ChangePriority(name, priority)
	if err != nil {
		return translateTableError(err, name, priority)
	}
	if !changed {
		return nil
	}

	r.snapshot()
	_ = r.audit.RecordRouteEvent("change_priority", name, "", priority)
	return nil
}

// GetRouteTable returns every route sorted ascending by priority.
func (r *Router) GetRouteTable() []Info {
	return r.table.Snapshot()
}

// EnqueueEvent offers event onto the intake queue without blocking.
func (r *Router) EnqueueEvent(event *model.Document) error {
	if !r.running.Load() || r.queue == nil {
		return rerrors.NotRunning()
	}
	if !r.queue.TryEnqueue(event) {
		return rerrors.HighLoad()
	}
	return nil
}

// Run installs queue and spawns numThreads workers. Fails with
// AlreadyRunning if a previous Run has not been stopped yet.
func (r *Router) Run(queue *Queue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running.Load() {
		return rerrors.AlreadyRunning()
	}
	if queue == nil {
		queue = NewQueue(r.cfg.QueueCapacity)
	}
	r.queue = queue
	r.running.Store(true)

	for i := 0; i < r.cfg.NumThreads; i++ {
		workerIndex := i
		r.wg.Add(1)
		go r.work(workerIndex)
	}
	return nil
}

// Stop clears the running flag and joins every worker. Safe to call
// when not running.
func (r *Router) Stop() {
	r.mu.Lock()
	if !r.running.Load() {
		r.mu.Unlock()
		return
	}
	r.running.Store(false)
	r.mu.Unlock()

	r.wg.Wait()
	r.log.Debugf("router stopped")
}

// work is one worker thread's dispatch loop, matching the original's
// per-thread wait_dequeue_timed -> shared-lock scan -> unlock-before-
// forward sequence.
func (r *Router) work(workerIndex int) {
	defer r.wg.Done()
	for r.running.Load() {
		event, ok := r.queue.DequeueTimed(r.cfg.DequeueTimeout)
		if !ok {
			continue
		}

		ctx := context.Background()
		var span trace.Span
		if r.tracer != nil {
			ctx, span = telemetry.StartDispatch(ctx, r.tracer, workerIndex)
		}

		target, matched := r.table.Dispatch(workerIndex, func(p interfaces.Predicate) bool {
			return p(event)
		})
		if !matched {
			if span != nil {
				telemetry.RecordResult(span, false, "")
			}
			r.docPool.Put(event)
			continue
		}

		err := r.envManager.ForwardEvent(ctx, target, workerIndex, event)
		if span != nil {
			telemetry.RecordResult(span, err == nil, target)
		}
		if err != nil {
			r.log.Errorf("worker %d: forward to %q: %v", workerIndex, target, err)
		}
	}
	r.log.Debugf("worker %d finished", workerIndex)
}

// snapshot serializes the route table and hands it to the store.
// Snapshot failure is fatal: in-memory and on-disk state have
// diverged, so the process exits with the original's code 10 after
// logging, rather than continuing on an assumption that no longer
// holds.
func (r *Router) snapshot() {
	entries := r.table.Snapshot()
	rows := make([]tableRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, tableRow{Name: e.Name, Priority: e.Priority, Target: e.Target})
	}
	payload, err := json.Marshal(rows)
	if err != nil {
		r.log.Errorf("router: marshal route table: %v", err)
		os.Exit(10)
	}

	if err := r.store.Update(context.Background(), routesTableName, payload); err != nil {
		r.log.Errorf("router: snapshot route table: %v", err)
		os.Exit(10)
	}
}

// tableRow is the wire shape of one persisted route table entry.
type tableRow struct {
	Name     string `json:"name"`
	Priority int    `json:"priority"`
	Target   string `json:"target"`
}

func translateTableError(err error, name string, priority int) error {
	switch {
	case errors.Is(err, errNameExists):
		return rerrors.AlreadyExists(name)
	case errors.Is(err, errPriorityTaken):
		return rerrors.PriorityTaken(priority)
	case errors.Is(err, errNotFound):
		return rerrors.NotFound("Route", name)
	default:
		return err
	}
}
