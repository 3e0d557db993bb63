package router

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"

	"github.com/flowgate/flowgate/pkg/collab"
	"github.com/flowgate/flowgate/pkg/logging"
)

// RouteSeed is one entry of a routes.yaml seed file: a route
// definition plus its table placement. This is additive to the
// administrative API, not a replacement for it — the original engine
// only ever learns routes through apiCallbacks.
type RouteSeed struct {
	Name     string        `yaml:"name"`
	Target   string        `yaml:"target"`
	Priority int           `yaml:"priority"`
	Rules    []collab.Rule `yaml:"rules"`
}

// SeedFile is the top-level shape of a routes.yaml file.
type SeedFile struct {
	Routes []RouteSeed `yaml:"routes"`
}

// LoadSeedFile reads and parses a routes.yaml file.
func LoadSeedFile(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("router: read seed file %s: %w", path, err)
	}
	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("router: parse seed file %s: %w", path, err)
	}
	return &seed, nil
}

// ApplySeed registers every seed route's predicate rules with builder
// and adds any route not already present in the table. Routes already
// present are left alone; use Reconcile to additionally pick up
// removals and priority changes on a reload.
func (r *Router) ApplySeed(ctx context.Context, builder *collab.FieldRuleBuilder, seed *SeedFile) error {
	for _, rs := range seed.Routes {
		if err := builder.Define(rs.Name, collab.RouteDefinition{Rules: rs.Rules}); err != nil {
			return fmt.Errorf("router: seed route %q: %w", rs.Name, err)
		}
		if r.hasRoute(rs.Name) {
			continue
		}
		if err := r.AddRoute(ctx, rs.Name, rs.Target, rs.Priority); err != nil {
			return fmt.Errorf("router: seed route %q: %w", rs.Name, err)
		}
	}
	return nil
}

func (r *Router) hasRoute(name string) bool {
	for _, info := range r.GetRouteTable() {
		if info.Name == name {
			return true
		}
	}
	return false
}

// Reconcile diffs seed against the live table: routes no longer listed
// are removed, routes not yet present are added, and routes whose
// priority changed are reprioritized. Rule changes to an existing
// route's predicate are registered with builder but do not retroactively
// rebuild that route's already-compiled predicate instances — only a
// remove+re-add (a name no longer present, then present again) does.
func (r *Router) Reconcile(ctx context.Context, builder *collab.FieldRuleBuilder, seed *SeedFile) error {
	wanted := make(map[string]RouteSeed, len(seed.Routes))
	for _, rs := range seed.Routes {
		wanted[rs.Name] = rs
	}

	for _, info := range r.GetRouteTable() {
		if _, ok := wanted[info.Name]; !ok {
			if err := r.RemoveRoute(info.Name); err != nil {
				return fmt.Errorf("router: reconcile remove %q: %w", info.Name, err)
			}
		}
	}

	for _, rs := range seed.Routes {
		if err := builder.Define(rs.Name, collab.RouteDefinition{Rules: rs.Rules}); err != nil {
			return fmt.Errorf("router: reconcile define %q: %w", rs.Name, err)
		}
		if !r.hasRoute(rs.Name) {
			if err := r.AddRoute(ctx, rs.Name, rs.Target, rs.Priority); err != nil {
				return fmt.Errorf("router: reconcile add %q: %w", rs.Name, err)
			}
			continue
		}
		for _, info := range r.GetRouteTable() {
			if info.Name == rs.Name && info.Priority != rs.Priority {
				if err := r.ChangeRoutePriority(rs.Name, rs.Priority); err != nil {
					return fmt.Errorf("router: reconcile reprioritize %q: %w", rs.Name, err)
				}
			}
		}
	}
	return nil
}

// WatchSeedFile watches path's containing directory with fsnotify and
// calls Reconcile on every write/create event naming path. Returns a
// stop function that closes the watcher and ends the goroutine.
func (r *Router) WatchSeedFile(ctx context.Context, path string, builder *collab.FieldRuleBuilder, log *logging.Logger) (stop func(), err error) {
	if log == nil {
		log = logging.Noop()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("router: create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("router: watch %s: %w", path, err)
	}

	go func() {
		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if ev.Name != path || (ev.Op&(fsnotify.Write|fsnotify.Create) == 0) {
					continue
				}
				seed, err := LoadSeedFile(path)
				if err != nil {
					log.Errorf("router: reload seed file: %v", err)
					continue
				}
				if err := r.Reconcile(ctx, builder, seed); err != nil {
					log.Errorf("router: reconcile seed file: %v", err)
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Errorf("router: watcher error: %v", err)
			case <-ctx.Done():
				watcher.Close()
				return
			}
		}
	}()

	return func() { watcher.Close() }, nil
}
