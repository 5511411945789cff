package formula

import (
	"encoding/json"
	"strconv"
)

// Scope resolves @-paths for an expression. Nothing outside a scope is
// reachable from a formula.
type Scope interface {
	Lookup(path []string) (any, bool)
}

// Vars is a scope over nested maps
type Vars map[string]any

func (v Vars) Lookup(path []string) (any, bool) {
	var cur any = map[string]any(v)
	for i, key := range path {
		var m map[string]any
		switch t := cur.(type) {
		case map[string]any:
			m = t
		case Vars:
			m = t
		case Scope:
			// nested scopes resolve the rest of the path themselves
			return t.Lookup(path[i:])
		default:
			return nil, false
		}
		next, ok := m[key]
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Layers searches each scope in order and returns the first hit
type Layers []Scope

func (l Layers) Lookup(path []string) (any, bool) {
	for _, s := range l {
		if s == nil {
			continue
		}
		if v, ok := s.Lookup(path); ok {
			return v, true
		}
	}
	return nil, false
}

// ToNumber converts a looked up value to a float64
func ToNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
