package testutils

import (
	"github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/effects"
)

// CreateTestFighter creates a character with one attack linked to an
// active ability and an evasion defense
func CreateTestFighter(id, name string) *character.Character {
	c := character.New(id, "owner-"+id, name, 40, 40)
	c.Stats.Set("defenses.evasion", 1.0)
	c.Abilities = []*character.Ability{
		{ID: id + "-strong", Name: "Strong", Kind: effects.SourceAbility, Level: 2, Active: true},
	}
	c.Attacks = []*character.Attack{
		{ID: id + "-punch", Name: "Punch", Roll: 0, Dx: 1, AbilityIDs: []string{id + "-strong"}},
	}
	return c
}

// CreateTestCaster creates a character with a magic ability and one spell
func CreateTestCaster(id, name string, spellEffects ...effects.Definition) *character.Character {
	c := character.New(id, "owner-"+id, name, 30, 50)
	c.Stats.Set("defenses.resolve", 2.0)
	c.Abilities = []*character.Ability{
		{ID: id + "-magic", Name: "Magic", Kind: effects.SourceAbility, Level: 3, Active: true, Magic: true},
		{ID: id + "-fire", Name: "Fire Affinity", Kind: effects.SourceAbility, Level: 1, Active: true},
	}
	c.Spells = []*character.Spell{
		{ID: id + "-bolt", Name: "Bolt", DN: 8, AbilityIDs: []string{id + "-magic", id + "-fire"}, Effects: spellEffects},
	}
	return c
}
