package characters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/ova-combat/internal/domain/character"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu         sync.RWMutex
	characters map[string]*character.Character
	clock      TimeProvider
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		characters: make(map[string]*character.Character),
		clock:      utcClock{},
	}
}

// Create stores a new character
func (r *InMemoryRepository) Create(_ context.Context, char *character.Character) error {
	if char == nil {
		return ovaerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		return ovaerr.InvalidArgument("character ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[char.ID]; exists {
		return ovaerr.AlreadyExistsf("character with ID '%s' already exists", char.ID).
			WithMeta("character_id", char.ID)
	}

	char.CreatedAt = r.clock.Now()
	char.UpdatedAt = char.CreatedAt
	r.characters[char.ID] = char
	return nil
}

// Get retrieves a character by ID
func (r *InMemoryRepository) Get(_ context.Context, id string) (*character.Character, error) {
	if id == "" {
		return nil, ovaerr.InvalidArgument("character ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	char, exists := r.characters[id]
	if !exists {
		return nil, ovaerr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	return char, nil
}

// GetMany retrieves characters in the order asked for
func (r *InMemoryRepository) GetMany(ctx context.Context, ids []string) ([]*character.Character, error) {
	out := make([]*character.Character, 0, len(ids))
	for _, id := range ids {
		char, err := r.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		out = append(out, char)
	}
	return out, nil
}

// GetByOwner retrieves all characters for a specific owner, by name
func (r *InMemoryRepository) GetByOwner(_ context.Context, ownerID string) ([]*character.Character, error) {
	if ownerID == "" {
		return nil, ovaerr.InvalidArgument("owner ID is required")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*character.Character
	for _, char := range r.characters {
		if char.OwnerID == ownerID {
			result = append(result, char)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// Update updates an existing character
func (r *InMemoryRepository) Update(_ context.Context, char *character.Character) error {
	if char == nil {
		return ovaerr.InvalidArgument("character cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.characters[char.ID]
	if !exists {
		return ovaerr.NotFoundf("character with ID '%s' not found", char.ID).
			WithMeta("character_id", char.ID)
	}

	char.CreatedAt = existing.CreatedAt
	char.UpdatedAt = r.clock.Now()
	r.characters[char.ID] = char
	return nil
}

// Delete removes a character
func (r *InMemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.characters[id]; !exists {
		return ovaerr.NotFoundf("character with ID '%s' not found", id).
			WithMeta("character_id", id)
	}
	delete(r.characters, id)
	return nil
}
