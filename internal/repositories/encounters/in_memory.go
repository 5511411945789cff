package encounters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/ova-combat/internal/domain/encounter"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

type inMemoryRepository struct {
	mu         sync.RWMutex
	encounters map[string]*encounter.Encounter
}

// NewInMemoryRepository creates a new in-memory encounter repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		encounters: make(map[string]*encounter.Encounter),
	}
}

// Create stores a new encounter
func (r *inMemoryRepository) Create(_ context.Context, enc *encounter.Encounter) error {
	if enc == nil || enc.ID == "" {
		return ovaerr.InvalidArgument("encounter ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[enc.ID]; exists {
		return ovaerr.AlreadyExistsf("encounter with ID %s already exists", enc.ID).
			WithMeta("encounter_id", enc.ID)
	}

	r.encounters[enc.ID] = enc
	return nil
}

// Get retrieves an encounter by ID
func (r *inMemoryRepository) Get(_ context.Context, id string) (*encounter.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, exists := r.encounters[id]
	if !exists {
		return nil, ovaerr.NotFoundf("encounter not found: %s", id).
			WithMeta("encounter_id", id)
	}
	return enc, nil
}

// Update modifies an existing encounter
func (r *inMemoryRepository) Update(_ context.Context, enc *encounter.Encounter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[enc.ID]; !exists {
		return ovaerr.NotFoundf("encounter not found: %s", enc.ID).
			WithMeta("encounter_id", enc.ID)
	}
	r.encounters[enc.ID] = enc
	return nil
}

// Delete removes an encounter
func (r *inMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encounters[id]; !exists {
		return ovaerr.NotFoundf("encounter not found: %s", id).
			WithMeta("encounter_id", id)
	}
	delete(r.encounters, id)
	return nil
}

// GetActive retrieves unfinished encounters, oldest first
func (r *inMemoryRepository) GetActive(_ context.Context) ([]*encounter.Encounter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*encounter.Encounter
	for _, enc := range r.encounters {
		if enc.Status != encounter.StatusCompleted {
			out = append(out, enc)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
