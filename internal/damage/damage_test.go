package damage_test

import (
	"testing"

	"github.com/KirkDiggler/ova-combat/internal/damage"
	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name     string
		attack   damage.Attack
		defense  int
		defender damage.Defender
		want     float64
	}{
		{
			name:    "plain hit",
			attack:  damage.Attack{Result: 9, Dx: 2},
			defense: 5,
			want:    -8,
		},
		{
			name:     "armor reduces dx to the floor",
			attack:   damage.Attack{Result: 9, Dx: 2, IgnoreArmor: 1},
			defense:  5,
			defender: damage.Defender{Armor: 3},
			want:     -2,
		},
		{
			name:     "armor is capped at five",
			attack:   damage.Attack{Result: 4, Dx: 7},
			defender: damage.Defender{Armor: 9},
			want:     -8,
		},
		{
			name:     "piercing never makes armor negative",
			attack:   damage.Attack{Result: 3, Dx: 1, IgnoreArmor: 4},
			defender: damage.Defender{Armor: 1},
			want:     -3,
		},
		{
			name:   "unaffected resistance is ignored",
			attack: damage.Attack{Result: 4, Dx: 2},
			defender: damage.Defender{Resistances: map[string]damage.Resistance{
				"fire": {Value: 2},
			}},
			want: -8,
		},
		{
			name:   "resistance floors at zero",
			attack: damage.Attack{Result: 4, Dx: 1},
			defender: damage.Defender{Resistances: map[string]damage.Resistance{
				"fire": {Value: 3, Affected: true},
			}},
			want: 0,
		},
		{
			name:   "healing resistance turns damage into healing",
			attack: damage.Attack{Result: 4, Dx: 1},
			defender: damage.Defender{Resistances: map[string]damage.Resistance{
				"fire": {Value: 2, Affected: true, CanHeal: true},
			}},
			want: 4,
		},
		{
			name:   "vulnerability doubles",
			attack: damage.Attack{Result: 5, Dx: 2},
			defender: damage.Defender{Resistances: map[string]damage.Resistance{
				"ice": {Value: -2, Affected: true},
			}},
			want: -20,
		},
		{
			name:   "single vulnerability adds half",
			attack: damage.Attack{Result: 5, Dx: 2},
			defender: damage.Defender{Resistances: map[string]damage.Resistance{
				"ice": {Value: -1, Affected: true},
			}},
			want: -15,
		},
		{
			name:   "heal ignores defender",
			attack: damage.Attack{Result: 6, Dx: -0.5},
			defender: damage.Defender{Armor: 5, Resistances: map[string]damage.Resistance{
				"holy": {Value: 3, Affected: true},
			}},
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, damage.Calculate(tt.attack, tt.defense, tt.defender))
		})
	}
}

func TestHeal(t *testing.T) {
	assert.Equal(t, 8.0, damage.Heal(4, -2))
}
