package encounters

//go:generate mockgen -destination=mock/mock_repository.go -package=mockencrepo -source=repository.go

import (
	"context"

	"github.com/KirkDiggler/ova-combat/internal/domain/encounter"
)

// Repository defines the interface for encounter storage operations
type Repository interface {
	// Create stores a new encounter
	Create(ctx context.Context, enc *encounter.Encounter) error

	// Get retrieves an encounter by ID
	Get(ctx context.Context, id string) (*encounter.Encounter, error)

	// Update modifies an existing encounter
	Update(ctx context.Context, enc *encounter.Encounter) error

	// Delete removes an encounter
	Delete(ctx context.Context, id string) error

	// GetActive retrieves the encounters that are not completed
	GetActive(ctx context.Context) ([]*encounter.Encounter, error)
}
