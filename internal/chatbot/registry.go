package chatbot

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Factory builds the manager for a newly created widget
type Factory func(id string) *Manager

type widget struct {
	manager  *Manager
	lastSeen time.Time
	attached int
}

// Registry holds one Manager per page load. A widget that has not been
// touched for the idle TTL is treated as an ended page load and released.
// Pages keep their widget alive with periodic Touch calls or by holding an
// attached connection.
type Registry struct {
	factory Factory
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	mu      sync.Mutex
	widgets map[string]*widget
}

// NewRegistry creates an empty registry
func NewRegistry(factory Factory, ttl time.Duration, logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		factory: factory,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
		widgets: make(map[string]*widget),
	}
}

// Create registers a new widget and returns its ID
func (r *Registry) Create() (string, *Manager) {
	id := uuid.New().String()
	m := r.factory(id)

	r.mu.Lock()
	r.widgets[id] = &widget{manager: m, lastSeen: r.now()}
	r.mu.Unlock()

	r.logger.Info("widget created", "widget_id", id)
	return id, m
}

// Get returns the widget and marks it as active
func (r *Registry) Get(id string) (*Manager, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.widgets[id]
	if !ok {
		return nil, false
	}
	w.lastSeen = r.now()
	return w.manager, true
}

// Touch marks the widget as active. It reports false for unknown IDs.
func (r *Registry) Touch(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.widgets[id]
	if ok {
		w.lastSeen = r.now()
	}
	return ok
}

// Attach pins the widget while a long-lived connection serves it. The
// returned detach func must be called once the connection ends; the idle
// TTL counts from then.
func (r *Registry) Attach(id string) (*Manager, func(), bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.widgets[id]
	if !ok {
		return nil, nil, false
	}
	w.attached++
	w.lastSeen = r.now()

	var once sync.Once
	detach := func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			w.attached--
			w.lastSeen = r.now()
		})
	}
	return w.manager, detach, true
}

// Release removes the widget and drops its session and transcript
func (r *Registry) Release(id string) bool {
	r.mu.Lock()
	w, ok := r.widgets[id]
	delete(r.widgets, id)
	r.mu.Unlock()

	if !ok {
		return false
	}
	w.manager.Release()
	r.logger.Info("widget released", "widget_id", id)
	return true
}

// Len returns the number of live widgets
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.widgets)
}

// Reap releases widgets idle since before now minus the TTL. A widget with a
// turn still streaming or an attached connection is kept.
func (r *Registry) Reap(now time.Time) int {
	var expired []*widget
	var ids []string

	r.mu.Lock()
	for id, w := range r.widgets {
		if now.Sub(w.lastSeen) < r.ttl || w.attached > 0 || w.manager.State() == StateSending {
			continue
		}
		expired = append(expired, w)
		ids = append(ids, id)
		delete(r.widgets, id)
	}
	r.mu.Unlock()

	for i, w := range expired {
		w.manager.Release()
		r.logger.Info("widget reaped", "widget_id", ids[i])
	}
	return len(expired)
}

// Run reaps idle widgets every interval until ctx is done
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Reap(now); n > 0 {
				r.logger.Debug("reaped idle widgets", "count", n, "remaining", r.Len())
			}
		}
	}
}
