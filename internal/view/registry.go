package view

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/logger"
	"github.com/windoze95/saltybytes-recipe-ideas/internal/metrics"
	"go.uber.org/zap"
)

// Registry keeps live SearchViews in memory, keyed by session ID.
type Registry struct {
	searcher     Searcher
	discardStale bool
	idleTimeout  time.Duration

	mu       sync.Mutex
	sessions map[string]*SearchView
	inUse    func(id string) bool
}

// NewRegistry creates an empty registry. Views it creates share searcher.
func NewRegistry(searcher Searcher, discardStale bool, idleTimeout time.Duration) *Registry {
	return &Registry{
		searcher:     searcher,
		discardStale: discardStale,
		idleTimeout:  idleTimeout,
		sessions:     make(map[string]*SearchView),
	}
}

// GetOrCreate returns the view for id. Unknown or empty IDs get a fresh
// view under a new ID, which is returned.
func (r *Registry) GetOrCreate(id string) (string, *SearchView) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if id != "" {
		if v, ok := r.sessions[id]; ok {
			return id, v
		}
	}

	id = uuid.New().String()
	v := New(r.searcher, r.discardStale)
	r.sessions[id] = v
	metrics.SetLiveSessions(len(r.sessions))
	return id, v
}

// SetInUse registers fn to report whether a session still has attached
// clients. Sweep never evicts such sessions.
func (r *Registry) SetInUse(fn func(id string) bool) {
	r.mu.Lock()
	r.inUse = fn
	r.mu.Unlock()
}

// Remove deletes the session for id.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	metrics.SetLiveSessions(len(r.sessions))
}

// Get returns the view for id if it exists.
func (r *Registry) Get(id string) (*SearchView, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.sessions[id]
	return v, ok
}

// Len returns the number of sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep removes sessions idle since before now minus the idle timeout and
// returns how many were removed. Sessions in use are kept.
func (r *Registry) Sweep(now time.Time) int {
	cutoff := now.Add(-r.idleTimeout)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, v := range r.sessions {
		if r.inUse != nil && r.inUse(id) {
			continue
		}
		if v.LastActive().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	metrics.SetLiveSessions(len(r.sessions))
	return removed
}

// Run sweeps idle sessions every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				logger.Get().Info("evicted idle search sessions",
					zap.Int("evicted", n),
					zap.Int("remaining", r.Len()),
				)
			}
		}
	}
}
