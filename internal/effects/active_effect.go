package effects

import (
	"strings"

	"github.com/KirkDiggler/ova-combat/internal/formula"
)

// ActiveEffect is a duration-bound change owned by the actor it was applied to
type ActiveEffect struct {
	ID         string             `json:"id"`
	Label      string             `json:"label"`
	Origin     string             `json:"origin"`
	SourceKind SourceKind         `json:"sourceKind"`
	Target     Target             `json:"target"`
	Changes    []Change           `json:"changes"`
	Duration   DurationSpec       `json:"duration"`
	Start      StartMarker        `json:"start"`
	OverTime   map[Trigger]Change `json:"overTime,omitempty"`
	Disabled   bool               `json:"disabled,omitempty"`
}

// Remaining resolves the effect's duration against clock
func (e *ActiveEffect) Remaining(clock Clock) Descriptor {
	return ResolveDuration(e.Duration, e.Start, clock)
}

// Expired reports whether a finite duration has run out
func (e *ActiveEffect) Expired(clock Clock) bool {
	return e.Remaining(clock).Expired()
}

// Materialize turns a definition into an active effect. The value and any
// over-time value are evaluated against the roll context with the source's
// @level and @item layered on top. An empty value yields an effect with no
// change.
func Materialize(def Definition, src SourceRef, rollContext formula.Scope) (*ActiveEffect, error) {
	scope := formula.Layers{SourceScope(src), rollContext}

	key, err := def.ResolveKey(src.Flavor())
	if err != nil {
		return nil, err
	}

	effect := &ActiveEffect{
		Label:      src.Name,
		Origin:     src.ID,
		SourceKind: src.Kind,
		Target:     def.Target,
	}
	if def.Duration != nil {
		effect.Duration = *def.Duration
	}

	if strings.TrimSpace(def.Value) != "" {
		value, err := formula.Evaluate(def.Value, scope)
		if err != nil {
			return nil, err
		}
		effect.Changes = []Change{{
			Key:      key.Path(),
			Mode:     def.Mode,
			Value:    value,
			Priority: def.Priority,
		}}
	}

	if ot := def.OverTime; ot != nil && ot.When != "" && ot.Key != "" && strings.TrimSpace(ot.Value) != "" {
		otKey, err := ot.ResolveKey(src.Flavor())
		if err != nil {
			return nil, err
		}
		value, err := formula.Evaluate(ot.Value, scope)
		if err != nil {
			return nil, err
		}
		effect.OverTime = map[Trigger]Change{
			ot.When: {
				Key:   otKey.Path(),
				Mode:  ot.Mode,
				Value: value,
			},
		}
	}

	return effect, nil
}
