package character

import (
	"context"

	"github.com/KirkDiggler/ova-combat/internal/effects"
)

type clockKey struct{}

// WithClock returns a context carrying the clock effects are resolved at
func WithClock(ctx context.Context, clock effects.Clock) context.Context {
	return context.WithValue(ctx, clockKey{}, clock)
}

// ClockFrom returns the clock carried by ctx
func ClockFrom(ctx context.Context) (effects.Clock, bool) {
	clock, ok := ctx.Value(clockKey{}).(effects.Clock)
	return clock, ok
}
