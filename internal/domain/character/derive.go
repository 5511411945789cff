package character

import (
	"math"

	"github.com/KirkDiggler/ova-combat/internal/effects"
	"github.com/KirkDiggler/ova-combat/internal/formula"
)

// Stat paths the derived snapshot always carries
const (
	PathGlobalMod     = "globalMod"
	PathGlobalRollMod = "globalRollMod"
	PathGlobalDefMod  = "globalDefMod"
	PathArmor         = "armor"
	PathSpeed         = "speed"
	PathThreat        = "tv"
	PathDefenses      = "defenses"
	PathResistances   = "resistances"
	// PathResistanceHeal flags resistances that may turn damage into healing
	PathResistanceHeal = "resistanceHeal"
)

var defaults = map[string]float64{
	PathGlobalMod:           2,
	PathGlobalRollMod:       0,
	PathGlobalDefMod:        0,
	PathArmor:               0,
	PathSpeed:               0,
	PathHP:                  0,
	PathHPMax:               0,
	"hpReserve.value":       0,
	PathHPReserveMax:        0,
	PathEndurance:           0,
	PathEnduranceMax:        0,
	PathEnduranceReserve:    0,
	PathEnduranceReserveMax: 0,
	PathDramaFree:           0,
	PathDramaUsed:           0,
}

// Derived is the computed view of a character
type Derived struct {
	Stats effects.Snapshot
	// Changes are the active effect changes folded in
	Changes []effects.Change
	// Applied are the ability effects stacked on top
	Applied []effects.Applied
	Errors  []error
}

// Derive rebuilds the character's stats: stored values and defaults, then
// active effects, then the effects of active abilities, each by priority.
func (c *Character) Derive(clock effects.Clock) *Derived {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := c.stats().Clone()
	for path, v := range defaults {
		snap.Default(path, v)
	}

	d := &Derived{Stats: snap}
	d.Changes = effects.NewManager(c.ActiveEffects...).ApplyTo(snap, clock)

	var sources []effects.Source
	for _, ab := range c.Abilities {
		if ab.Active {
			sources = append(sources, ab.Source())
		}
	}
	stacked := effects.Stack(sources, snap)
	d.Applied = stacked.Applied
	d.Errors = stacked.Errors

	snap.Set(PathHPMax, snap.Number(PathHPMax)+snap.Number(PathHPReserveMax))
	if snap.Number(PathHP) <= 0 || snap.Number(PathEndurance) <= 0 {
		snap.Set(PathGlobalMod, snap.Number(PathGlobalMod)-1)
	}

	if snap.Number(PathThreat) <= 0 {
		snap.Set(PathThreat, c.threatValue(snap))
	}

	return d
}

// threatValue is the best defense, plus 3 and the levels behind the
// strongest free damaging attack, plus armor.
func (c *Character) threatValue(snap effects.Snapshot) float64 {
	var best float64
	for _, v := range snap.Map(PathDefenses) {
		if n, ok := formula.ToNumber(v); ok {
			best = math.Max(best, n)
		}
	}

	var bestAttack *Attack
	for _, a := range c.Attacks {
		if a.IsHeal() || a.EnduranceCost+a.Perks.Cost() > 0 {
			continue
		}
		if bestAttack == nil || a.Roll > bestAttack.Roll {
			bestAttack = a
		}
	}

	var offense float64
	if bestAttack != nil {
		offense = 3
		for _, ab := range c.linkedAbilities(bestAttack.AbilityIDs) {
			offense += ab.Ref().SignedLevel()
		}
	}

	return best + offense + snap.Number(PathArmor)
}

// DefenseRoll is the nominal dice of a defense
func (d *Derived) DefenseRoll(defense string) int {
	return int(d.Stats.Number(PathDefenses+"."+defense) +
		d.Stats.Number(PathGlobalMod) + d.Stats.Number(PathGlobalDefMod))
}

// AttackRoll is the nominal dice of a prepared attack or spell roll
func (d *Derived) AttackRoll(roll int) int {
	return int(float64(roll) + d.Stats.Number(PathGlobalMod) + d.Stats.Number(PathGlobalRollMod))
}

// Resistances lists each resistance value and whether it may heal
func (d *Derived) Resistances() map[string]Resistance {
	heal := flags(d.Stats.Map(PathResistanceHeal))
	out := make(map[string]Resistance)
	for name, v := range d.Stats.Map(PathResistances) {
		n, ok := formula.ToNumber(v)
		if !ok {
			continue
		}
		out[name] = Resistance{Value: n, CanHeal: heal[name]}
	}
	return out
}

// Resistance is a derived resistance (positive) or vulnerability (negative)
type Resistance struct {
	Value   float64
	CanHeal bool
}
