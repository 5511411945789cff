package character

import (
	"math"

	"github.com/KirkDiggler/ova-combat/internal/effects"
)

// spellCost is indexed by magic level then summed spell level, both from 1
var spellCost = [5][5]float64{
	{20, 30, 40, 50, 60},
	{10, 20, 30, 40, 50},
	{5, 10, 20, 30, 40},
	{2, 5, 10, 20, 30},
	{0, 2, 5, 10, 20},
}

// SpellCost is the endurance a spell costs. Levels outside the table cost
// nothing.
func SpellCost(magicLevel, spellLevel int) float64 {
	if magicLevel < 1 || magicLevel > len(spellCost) || spellLevel < 1 || spellLevel > len(spellCost[0]) {
		return 0
	}
	return spellCost[magicLevel-1][spellLevel-1]
}

// Spell is a spell item. Its effects are granted when the casting reaches DN.
type Spell struct {
	ID         string               `json:"id" yaml:"id"`
	Name       string               `json:"name" yaml:"name"`
	DN         int                  `json:"dn" yaml:"dn"`
	AbilityIDs []string             `json:"abilityIds,omitempty" yaml:"abilities,omitempty"`
	Perks      Perks                `json:"perks,omitempty" yaml:"perks,omitempty"`
	Effects    []effects.Definition `json:"effects,omitempty" yaml:"effects,omitempty"`
	// Active is set once the spell has been cast successfully
	Active bool `json:"active,omitempty" yaml:"active,omitempty"`
}

// PreparedSpell is a spell ready to be cast
type PreparedSpell struct {
	Spell         *Spell
	Roll          int
	MagicLevel    float64
	Levels        float64
	EnduranceCost float64
	Effects       []effects.Deferred
	Errors        []error
}

// PrepareSpell sums the linked active abilities. The magic ability sets the
// row of the cost table and the rest the column.
func (c *Character) PrepareSpell(id string) (*PreparedSpell, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.GetSpell(id)
	if err != nil {
		return nil, err
	}

	var magic, levels float64
	sources := []effects.Source{}
	for _, ab := range c.linkedAbilities(s.AbilityIDs) {
		if ab.Magic {
			magic = math.Max(magic, ab.Level)
			continue
		}
		levels += ab.Ref().SignedLevel()
	}
	for _, p := range s.Perks {
		sources = append(sources, p.Source())
	}

	self := effects.Source{
		SourceRef: effects.SourceRef{
			ID:    s.ID,
			Name:  s.Name,
			Kind:  effects.SourceAbility,
			Level: levels,
			Item:  map[string]any{"level": levels, "dn": s.DN},
		},
		Effects: s.Effects,
	}
	sources = append([]effects.Source{self}, sources...)

	stacked := effects.Stack(sources, effects.Snapshot{})

	return &PreparedSpell{
		Spell:         s,
		Roll:          int(magic + levels),
		MagicLevel:    magic,
		Levels:        levels,
		EnduranceCost: math.Max(SpellCost(int(magic), int(levels))+s.Perks.Cost(), 0),
		Effects:       stacked.Deferred,
		Errors:        stacked.Errors,
	}, nil
}

// ActivateSpell marks a spell as cast
func (c *Character) ActivateSpell(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, err := c.GetSpell(id)
	if err != nil {
		return err
	}
	s.Active = true
	return nil
}
