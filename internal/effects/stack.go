package effects

import (
	"sort"
	"strings"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/formula"
)

// Applied records a change stacked onto a snapshot
type Applied struct {
	Source     SourceRef
	Definition Definition
	Change     Change
}

// Deferred is an apply-active-effect definition left for the caller to
// materialize and persist
type Deferred struct {
	Source     SourceRef
	Definition Definition
}

// Result is the outcome of stacking a set of sources
type Result struct {
	Applied  []Applied
	Deferred []Deferred
	// Errors holds one entry per definition that could not be applied
	Errors []error
}

// SourceScope exposes @level and @item for a source
func SourceScope(src SourceRef) formula.Vars {
	item := src.Item
	if item == nil {
		item = map[string]any{}
	}
	return formula.Vars{
		"level": src.SignedLevel(),
		"item":  item,
	}
}

// Stack applies every definition of sources to snap in ascending priority.
// Definitions of equal priority keep their source order. A definition that
// fails is reported in Result.Errors and the rest still apply.
func Stack(sources []Source, snap Snapshot) *Result {
	type entry struct {
		src SourceRef
		def Definition
	}

	var entries []entry
	for _, s := range sources {
		for _, d := range s.Effects {
			entries = append(entries, entry{src: s.SourceRef, def: d})
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].def.Priority < entries[j].def.Priority
	})

	result := &Result{}
	for _, e := range entries {
		switch e.def.Kind {
		case KindApplyChanges:
			if strings.TrimSpace(e.def.Value) == "" {
				continue
			}

			change, err := resolveChange(e.def, e.src, formula.Layers{SourceScope(e.src), snap})
			if err != nil {
				result.Errors = append(result.Errors, ovaerr.Wrapf(err, "failed to apply effect from %s", e.src.Name).
					WithMeta("source_id", e.src.ID))
				continue
			}

			ApplyChange(change, snap)
			result.Applied = append(result.Applied, Applied{
				Source:     e.src,
				Definition: e.def,
				Change:     change,
			})
		case KindApplyActiveEffect:
			result.Deferred = append(result.Deferred, Deferred{
				Source:     e.src,
				Definition: e.def,
			})
		default:
			result.Errors = append(result.Errors, ovaerr.Validationf("unknown effect kind %q on %s", e.def.Kind, e.src.Name).
				WithMeta("source_id", e.src.ID))
		}
	}

	return result
}

func resolveChange(def Definition, src SourceRef, scope formula.Scope) (Change, error) {
	key, err := def.ResolveKey(src.Flavor())
	if err != nil {
		return Change{}, err
	}

	value, err := formula.Evaluate(def.Value, scope)
	if err != nil {
		return Change{}, err
	}

	return Change{
		Key:      key.Path(),
		Mode:     def.Mode,
		Value:    value,
		Priority: def.Priority,
	}, nil
}
