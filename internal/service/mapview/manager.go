package mapview

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/herdtrack/internal/repository/memory"
	"github.com/mamadbah2/herdtrack/pkg/clients/mapbox"
)

// ErrViewNotFound is returned for an unknown or closed view id.
var ErrViewNotFound = errors.New("map view not found")

const reconcileTimeout = 10 * time.Second

// Manager owns the open map views and keeps them in sync with the store.
type Manager struct {
	client mapbox.Client
	source AnimalSource
	opts   Options
	logger *zap.Logger
	newID  func() string

	mu    sync.RWMutex
	views map[string]*View
}

// NewManager wires a view manager.
func NewManager(client mapbox.Client, source AnimalSource, opts Options, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		client: client,
		source: source,
		opts:   opts,
		logger: logger,
		newID:  uuid.NewString,
		views:  make(map[string]*View),
	}
}

// Open mounts a new view waiting for its access token.
func (m *Manager) Open(branchID string) *View {
	id := m.newID()
	v := NewView(id, m.client, m.source, m.opts, m.logger)
	v.branchFilter = branchID

	m.mu.Lock()
	m.views[id] = v
	m.mu.Unlock()

	m.logger.Debug("map view opened", zap.String("view_id", id))
	return v
}

// View returns an open view.
func (m *Manager) View(id string) (*View, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.views[id]; ok {
		return v, nil
	}
	return nil, fmt.Errorf("view %s: %w", id, ErrViewNotFound)
}

// Close unmounts a view and forgets it.
func (m *Manager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	v, ok := m.views[id]
	delete(m.views, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("view %s: %w", id, ErrViewNotFound)
	}
	return v.Unmount(ctx)
}

// Len reports the number of open views.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.views)
}

// HandleChange reconciles every open view after an animal or branch mutation.
// It is meant to be registered with memory.Store.Subscribe.
func (m *Manager) HandleChange(change memory.Change) {
	if change.Entity != memory.EntityAnimal && change.Entity != memory.EntityBranch {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), reconcileTimeout)
	defer cancel()

	for _, v := range m.snapshotViews() {
		if err := v.Reconcile(ctx); err != nil && !errors.Is(err, ErrUnmounted) {
			m.logger.Error("map view reconcile failed",
				zap.String("view_id", v.ID()),
				zap.String("entity", string(change.Entity)),
				zap.String("entity_id", change.ID),
				zap.Error(err))
		}
	}
}

// Shutdown unmounts every open view.
func (m *Manager) Shutdown(ctx context.Context) {
	m.mu.Lock()
	views := m.views
	m.views = make(map[string]*View)
	m.mu.Unlock()

	for id, v := range views {
		if err := v.Unmount(ctx); err != nil {
			m.logger.Warn("map view unmount failed", zap.String("view_id", id), zap.Error(err))
		}
	}
}

func (m *Manager) snapshotViews() []*View {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*View, 0, len(m.views))
	for _, v := range m.views {
		out = append(out, v)
	}
	return out
}
