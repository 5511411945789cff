package combat

import (
	"github.com/KirkDiggler/ova-combat/internal/dice"
	"github.com/KirkDiggler/ova-combat/internal/effects"
)

// RollType classifies a submitted roll
type RollType string

const (
	RollAttack  RollType = "attack"
	RollDefense RollType = "defense"
	RollCounter RollType = "counter"
	RollSpell   RollType = "spell"
	RollDrama   RollType = "drama"
	RollManual  RollType = "manual"
)

// Context is the combat position a roll was made at
type Context struct {
	CombatID string `json:"combatId"`
	Round    int    `json:"round"`
	Turn     int    `json:"turn"`
}

// Same reports whether two contexts are the same combat, round and turn.
// Two rolls made outside combat share a context.
func (c *Context) Same(other *Context) bool {
	if c == nil || other == nil {
		return c == nil && other == nil
	}
	return *c == *other
}

// AttackRecord is a roll wrapped with what it means in combat
type AttackRecord struct {
	ID          string
	Type        RollType
	Roll        *dice.Roll
	Dx          float64
	IgnoreArmor float64
	// DN is the difficulty a spell roll must reach
	DN int
	// Fatiguing attacks drain endurance instead of health
	Fatiguing bool
	// Affinity names the defender resistances the attack touches
	Affinity map[string]bool
	Effects  []effects.Deferred
	Miracle  bool
	Context  *Context
	AuthorID string
	// SourceID is the attack or spell the roll was made with
	SourceID string
	// TargetIDs receive heals and spell effects
	TargetIDs []string

	resultOverride *int
}

// Result is the roll total unless a counter zeroed it
func (r *AttackRecord) Result() int {
	if r.resultOverride != nil {
		return *r.resultOverride
	}
	if r.Roll == nil {
		return 0
	}
	return r.Roll.Total
}

func (r *AttackRecord) overrideResult(v int) {
	r.resultOverride = &v
}

// Overridden reports whether a counter replaced the roll total
func (r *AttackRecord) Overridden() bool {
	return r.resultOverride != nil
}
