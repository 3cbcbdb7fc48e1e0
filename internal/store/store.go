// Package store selects and opens the configured storage backend and
// bootstraps the schema on it. Both backends come back behind the same
// Store contract, so nothing above this package knows which one is
// running.
package store

import (
	"fmt"
	"sync"

	"github.com/wayfarer-app/wayfarer/internal/docstore"
	"github.com/wayfarer-app/wayfarer/internal/sqlite"
	"github.com/wayfarer-app/wayfarer/pkg/types"
)

// Open validates the config, opens the configured backend, and runs the
// schema bootstrap on it.
func Open(cfg types.Config) (types.Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		s   types.Store
		err error
	)
	switch cfg.Backend {
	case types.BackendSQLite:
		s, err = sqlite.Open(cfg.DataDir)
	case types.BackendDocstore:
		s, err = docstore.Open(cfg.DataDir)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, cfg.Backend)
	}
	if err != nil {
		return nil, fmt.Errorf("opening %s backend: %w", cfg.Backend, err)
	}

	if err := bootstrapSchema(s); err != nil {
		s.Close()
		return nil, fmt.Errorf("bootstrapping schema: %w", err)
	}
	return s, nil
}

// Manager hands out one shared Store, opening it on first use. A failed
// open is not cached; the next Get retries.
type Manager struct {
	mu    sync.Mutex
	cfg   types.Config
	store types.Store
}

// NewManager returns a Manager for the given config. Nothing is opened
// until Get.
func NewManager(cfg types.Config) *Manager {
	return &Manager{cfg: cfg}
}

// Get returns the shared store, opening it if this is the first call.
func (m *Manager) Get() (types.Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store != nil {
		return m.store, nil
	}
	s, err := Open(m.cfg)
	if err != nil {
		return nil, err
	}
	m.store = s
	return s, nil
}

// Close closes the shared store if it was opened. A later Get reopens.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.store == nil {
		return nil
	}
	err := m.store.Close()
	m.store = nil
	return err
}
