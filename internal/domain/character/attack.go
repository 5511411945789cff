package character

import (
	"math"

	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/formula"
)

// Perk is a perk or flaw attached to an attack or spell
type Perk struct {
	ID    string             `json:"id" yaml:"id"`
	Name  string             `json:"name" yaml:"name"`
	Kind  effects.SourceKind `json:"kind" yaml:"kind"`
	Level float64            `json:"level" yaml:"level"`
	// Cost is the endurance each level adds to the attack
	Cost    float64              `json:"cost,omitempty" yaml:"cost,omitempty"`
	Effects []effects.Definition `json:"effects,omitempty" yaml:"effects,omitempty"`
}

func (p *Perk) Source() effects.Source {
	return effects.Source{
		SourceRef: effects.SourceRef{
			ID:    p.ID,
			Name:  p.Name,
			Kind:  p.Kind,
			Level: p.Level,
			Item:  map[string]any{"level": p.Level},
		},
		Effects: p.Effects,
	}
}

// Perks stack by ID: adding one that is already there raises its level
type Perks []*Perk

// Add attaches a copy of perk, or raises the level of the one already there
func (ps Perks) Add(perk Perk) Perks {
	for _, p := range ps {
		if p.ID == perk.ID {
			p.Level++
			return ps
		}
	}
	if perk.Level < 1 {
		perk.Level = 1
	}
	return append(ps, &perk)
}

// Remove lowers a perk's level, dropping it once it would fall below one
func (ps Perks) Remove(id string) Perks {
	for i, p := range ps {
		if p.ID != id {
			continue
		}
		if p.Level > 1 {
			p.Level--
			return ps
		}
		return append(ps[:i:i], ps[i+1:]...)
	}
	return ps
}

// Cost is the summed endurance cost of every perk level
func (ps Perks) Cost() float64 {
	var total float64
	for _, p := range ps {
		total += p.Level * p.Cost
	}
	return total
}

// LimitedUse counts the remaining uses of an attack
type LimitedUse struct {
	Value int `json:"value" yaml:"value"`
	Max   int `json:"max" yaml:"max"`
}

// Attack is an attack item
type Attack struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Roll        int      `json:"roll" yaml:"roll"`
	Dx          float64  `json:"dx" yaml:"dx"`
	IgnoreArmor float64  `json:"ignoreArmor,omitempty" yaml:"ignoreArmor,omitempty"`
	AbilityIDs  []string `json:"abilityIds,omitempty" yaml:"abilities,omitempty"`
	Perks       Perks    `json:"perks,omitempty" yaml:"perks,omitempty"`
	// Fatiguing attacks damage endurance instead of health
	Fatiguing     bool        `json:"fatiguing,omitempty" yaml:"fatiguing,omitempty"`
	EnduranceCost float64     `json:"enduranceCost,omitempty" yaml:"enduranceCost,omitempty"`
	LimitedUse    *LimitedUse `json:"limitedUse,omitempty" yaml:"limitedUse,omitempty"`
	Affinity      []string    `json:"affinity,omitempty" yaml:"affinity,omitempty"`
}

// IsHeal reports whether the attack restores health
func (a *Attack) IsHeal() bool {
	return a.Dx < 0
}

// HasUses reports whether the attack can still be used
func (a *Attack) HasUses() bool {
	return a.LimitedUse == nil || a.LimitedUse.Max <= 0 || a.LimitedUse.Value > 0
}

// Use spends one limited use
func (a *Attack) Use() error {
	if !a.HasUses() {
		return ovaerr.Validationf("%s has no uses left", a.Name).
			WithMeta("attack_id", a.ID)
	}
	if a.LimitedUse != nil && a.LimitedUse.Max > 0 {
		a.LimitedUse.Value--
	}
	return nil
}

// PreparedAttack is an attack with its perks and linked abilities stacked on
type PreparedAttack struct {
	Attack      *Attack
	Roll        int
	Dx          float64
	IgnoreArmor float64
	Affinity    map[string]bool
	Flags       map[string]bool
	// Levels is the summed signed level of the linked active abilities
	Levels        float64
	EnduranceCost float64
	// Effects are left for the combat session to materialize
	Effects []effects.Deferred
	Errors  []error
}

// PrepareAttack stacks the attack's perks and linked active abilities onto
// a copy of the attack item.
func (c *Character) PrepareAttack(id string) (*PreparedAttack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.GetAttack(id)
	if err != nil {
		return nil, err
	}

	linked := c.linkedAbilities(a.AbilityIDs)

	item := effects.Snapshot{}
	item.Set("attack.roll", float64(a.Roll))
	item.Set("attack.dx", a.Dx)
	item.Set("attack.ignoreArmor", a.IgnoreArmor)
	for _, name := range a.Affinity {
		item.Set("affinity."+name, 1.0)
	}

	var levels float64
	sources := make([]effects.Source, 0, len(linked)+len(a.Perks))
	for _, ab := range linked {
		levels += ab.Ref().SignedLevel()
		sources = append(sources, ab.Source())
	}
	for _, p := range a.Perks {
		sources = append(sources, p.Source())
	}

	stacked := effects.Stack(sources, item)

	return &PreparedAttack{
		Attack:        a,
		Roll:          int(item.Number("attack.roll") + levels),
		Dx:            item.Number("attack.dx"),
		IgnoreArmor:   item.Number("attack.ignoreArmor"),
		Affinity:      flags(item.Map("affinity")),
		Flags:         flags(item.Map("ovaFlags")),
		Levels:        levels,
		EnduranceCost: math.Max(a.EnduranceCost+a.Perks.Cost(), 0),
		Effects:       stacked.Deferred,
		Errors:        stacked.Errors,
	}, nil
}

// linkedAbilities returns the active abilities among ids, in id order
func (c *Character) linkedAbilities(ids []string) []*Ability {
	var out []*Ability
	for _, id := range ids {
		for _, ab := range c.Abilities {
			if ab.ID == id && ab.Active {
				out = append(out, ab)
			}
		}
	}
	return out
}

func flags(m map[string]any) map[string]bool {
	out := make(map[string]bool, len(m))
	for k, v := range m {
		n, ok := formula.ToNumber(v)
		out[k] = ok && n > 0
	}
	return out
}

// UseAttack spends one limited use of an attack
func (c *Character) UseAttack(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.GetAttack(id)
	if err != nil {
		return err
	}
	return a.Use()
}
