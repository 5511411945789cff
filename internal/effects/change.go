package effects

import (
	"math"
)

// ApplyChange folds a change into the snapshot and returns the new value.
// A missing or non-numeric current value counts as zero.
func ApplyChange(c Change, snap Snapshot) float64 {
	current := snap.Number(c.Key)

	switch c.Mode {
	case ModeAdd:
		current += c.Value
	case ModeMultiply:
		current *= c.Value
	case ModeDowngrade:
		current = math.Min(current, c.Value)
	case ModeUpgrade:
		current = math.Max(current, c.Value)
	case ModeOverride:
		current = c.Value
	}

	snap.Set(c.Key, current)
	return current
}

// ResolveKey builds the definition's key, substituting the source flavor
// when the definition carries no key value.
func (d Definition) ResolveKey(fallback string) (Key, error) {
	sub := d.KeyValue
	if sub == "" {
		sub = fallback
	}
	return ParseKey(d.Key, sub)
}

// ResolveKey builds the over-time key
func (o OverTime) ResolveKey(fallback string) (Key, error) {
	sub := o.KeyValue
	if sub == "" {
		sub = fallback
	}
	return ParseKey(o.Key, sub)
}
