package combat

import (
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

// Registry owns the open sessions, one per combat or table
type Registry struct {
	profiles Profiles
	ids      uuid.Generator
	logger   *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewRegistry creates a registry whose sessions share the given dependencies
func NewRegistry(profiles Profiles, ids uuid.Generator, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		profiles: profiles,
		ids:      ids,
		logger:   logger,
		sessions: make(map[string]*Session),
	}
}

// Open returns the session for id, creating it if needed
func (r *Registry) Open(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s, ok := r.sessions[id]; ok {
		return s
	}

	s := NewSession(&SessionConfig{
		ID:       id,
		Profiles: r.profiles,
		IDs:      r.ids,
		Logger:   r.logger,
	})
	r.sessions[id] = s
	return s
}

// Get returns an open session
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Close tears a session down, dropping any pending attack
func (r *Registry) Close(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[id]; ok {
		s.Reset()
		delete(r.sessions, id)
	}
}
