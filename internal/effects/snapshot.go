package effects

import (
	"strings"

	"github.com/KirkDiggler/ova-combat/internal/formula"
)

// Snapshot is an actor's stats keyed by nested names, read and written with
// dotted paths such as `hp.value`.
type Snapshot map[string]any

// Get reads a numeric value. Missing or non-numeric paths report false.
func (s Snapshot) Get(path string) (float64, bool) {
	v, ok := s.Lookup(strings.Split(path, "."))
	if !ok {
		return 0, false
	}
	return formula.ToNumber(v)
}

// Number reads a numeric value, defaulting to zero
func (s Snapshot) Number(path string) float64 {
	v, _ := s.Get(path)
	return v
}

// Set writes a value, creating intermediate maps
func (s Snapshot) Set(path string, value any) {
	parts := strings.Split(path, ".")
	cur := map[string]any(s)
	for _, p := range parts[:len(parts)-1] {
		next, ok := asMap(cur[p])
		if !ok {
			next = make(map[string]any)
			cur[p] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}

// Default writes value only when path holds no number
func (s Snapshot) Default(path string, value float64) {
	if _, ok := s.Get(path); !ok {
		s.Set(path, value)
	}
}

// Lookup lets a snapshot serve as a formula scope
func (s Snapshot) Lookup(path []string) (any, bool) {
	return formula.Vars(s).Lookup(path)
}

// Map returns the nested map at path
func (s Snapshot) Map(path string) map[string]any {
	v, ok := s.Lookup(strings.Split(path, "."))
	if !ok {
		return nil
	}
	m, _ := asMap(v)
	return m
}

// asMap accepts any of the map shapes a decoded snapshot can nest
func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case Snapshot:
		return m, true
	case formula.Vars:
		return m, true
	}
	return nil, false
}

// Clone deep copies nested maps. Leaf values are shared.
func (s Snapshot) Clone() Snapshot {
	return Snapshot(cloneMap(s))
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch t := v.(type) {
		case map[string]any:
			out[k] = cloneMap(t)
		case Snapshot:
			out[k] = cloneMap(t)
		case formula.Vars:
			out[k] = cloneMap(t)
		default:
			out[k] = v
		}
	}
	return out
}
