package uuid_test

import (
	"testing"

	"github.com/KirkDiggler/ova-combat/internal/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSequentialGenerator(t *testing.T) {
	gen := uuid.NewSequentialGenerator("fx")

	assert.Equal(t, "fx-1", gen.New())
	assert.Equal(t, "fx-2", gen.New())
}

func TestGoogleUUIDGenerator(t *testing.T) {
	gen := uuid.NewGoogleUUIDGenerator()

	a, b := gen.New(), gen.New()
	assert.Len(t, a, 36)
	assert.NotEqual(t, a, b)
}
