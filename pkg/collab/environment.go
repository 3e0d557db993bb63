package collab

import (
	"context"
	"fmt"
	"sync"

	"github.com/flowgate/flowgate/internal/model"
	rerrors "github.com/flowgate/flowgate/pkg/errors"
	"github.com/flowgate/flowgate/pkg/logging"
)

// LoggingEnvironmentManager is a stand-in for the real environment
// executor. AddEnvironment/DeleteEnvironment just track registered
// names; ForwardEvent logs the event's serialized form rather than
// running any compiled policy terms against it.
type LoggingEnvironmentManager struct {
	mu   sync.RWMutex
	envs map[string]bool
	log  *logging.Logger
}

// NewLoggingEnvironmentManager creates a manager that logs through log.
func NewLoggingEnvironmentManager(log *logging.Logger) *LoggingEnvironmentManager {
	if log == nil {
		log = logging.Noop()
	}
	return &LoggingEnvironmentManager{envs: make(map[string]bool), log: log}
}

// AddEnvironment implements interfaces.EnvironmentManager.
func (m *LoggingEnvironmentManager) AddEnvironment(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.envs[name] {
		return rerrors.AlreadyExists(name)
	}
	m.envs[name] = true
	return nil
}

// DeleteEnvironment implements interfaces.EnvironmentManager.
func (m *LoggingEnvironmentManager) DeleteEnvironment(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.envs[name] {
		return rerrors.NotFound("Environment", name)
	}
	delete(m.envs, name)
	return nil
}

// ForwardEvent implements interfaces.EnvironmentManager. It consumes
// event ownership by design (the real executor would run compiled
// policy terms against it); here it is serialized to the log as a
// stand-in observable effect.
func (m *LoggingEnvironmentManager) ForwardEvent(ctx context.Context, target string, workerIndex int, event *model.Document) error {
	m.mu.RLock()
	_, known := m.envs[target]
	m.mu.RUnlock()
	if !known {
		return rerrors.NotFound("Environment", target)
	}

	raw, err := event.Bytes()
	if err != nil {
		return fmt.Errorf("collab: serialize event for %q: %w", target, err)
	}
	m.log.Debugf("worker %d forwarded event to %q: %s", workerIndex, target, raw)
	return nil
}
