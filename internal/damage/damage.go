// Package damage turns opposed roll results into a signed pool delta.
// Negative results are damage, positive results are healing.
package damage

import (
	"math"
	"sort"
)

// MaxEffectiveArmor caps how much armor can reduce dx
const MaxEffectiveArmor = 5

// minimumDx is the floor dx falls to from armor alone
const minimumDx = 0.5

// Resistance is a defender's resistance (value ≥ 0) or vulnerability
// (value < 0) to one damage type
type Resistance struct {
	Value float64
	// Affected marks the resistance as relevant to this attack
	Affected bool
	// CanHeal lets the resistance push dx below zero so the attack heals
	CanHeal bool
}

// Attack is the attacking side of a resolution
type Attack struct {
	Result      int
	Dx          float64
	IgnoreArmor float64
}

// Defender is what the defender brings against an attack
type Defender struct {
	Armor       float64
	Resistances map[string]Resistance
}

// Calculate resolves an attack roll against a defense roll result. A
// negative dx is a heal and ignores the defender entirely.
func Calculate(attack Attack, defenseResult int, defender Defender) float64 {
	if attack.Dx < 0 {
		return Heal(attack.Result, attack.Dx)
	}
	return Damage(attack.Result-defenseResult, attack.Dx, attack.IgnoreArmor, defender)
}

// Damage applies armor, resistances and vulnerabilities to finalResult
func Damage(finalResult int, dx, ignoreArmor float64, defender Defender) float64 {
	effectiveArmor := math.Min(math.Max(defender.Armor-ignoreArmor, 0), MaxEffectiveArmor)
	adjusted := math.Max(dx-effectiveArmor, minimumDx)

	// sorted so the float sums are stable
	names := make([]string, 0, len(defender.Resistances))
	for name := range defender.Resistances {
		names = append(names, name)
	}
	sort.Strings(names)

	var vulnerability float64
	canHeal := false
	for _, name := range names {
		r := defender.Resistances[name]
		if !r.Affected {
			continue
		}
		if r.Value >= 0 {
			adjusted -= r.Value
			canHeal = canHeal || r.CanHeal
		} else {
			vulnerability += -r.Value
		}
	}

	if !canHeal && adjusted < 0 {
		adjusted = 0
	}

	dmg := math.Ceil(float64(finalResult) * adjusted)
	var bonus float64
	if vulnerability > 0 {
		bonus = dmg * 0.5 * math.Pow(2, vulnerability-1)
	}

	return -(dmg + bonus)
}

// Heal is the restoration of a heal roll; dx is negative
func Heal(result int, dx float64) float64 {
	return -float64(result) * dx
}
