package character_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/ova-combat/internal/dice"
	mockdice "github.com/KirkDiggler/ova-combat/internal/dice/mock"
	"github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

func newHero() *character.Character {
	c := character.New("hero", "owner", "Hero", 40, 40)
	c.Stats.Set("defenses.evasion", 2.0)
	c.Stats.Set("defenses.resolve", 1.0)
	c.Stats.Set("armor", 1.0)
	c.Abilities = []*character.Ability{
		{ID: "strong", Name: "Strong", Kind: effects.SourceAbility, Level: 2, Active: true},
		{ID: "clumsy", Name: "Clumsy", Kind: effects.SourceWeakness, Level: 1, Active: true},
		{ID: "arcane", Name: "Arcane", Kind: effects.SourceAbility, Level: 3, Active: true, Magic: true},
		{ID: "sleeping", Name: "Sleeping", Kind: effects.SourceAbility, Level: 4},
	}
	return c
}

func TestApplyPoolDeltaSpill(t *testing.T) {
	testCases := []struct {
		name          string
		hp, endurance float64
		path          string
		amount        float64
		wantHP        float64
		wantEndurance float64
	}{
		{name: "damage within health", hp: 10, endurance: 10, path: character.PathHP, amount: -4, wantHP: 6, wantEndurance: 10},
		{name: "health deficit spills into endurance", hp: 3, endurance: 10, path: character.PathHP, amount: -5, wantHP: 0, wantEndurance: 8},
		{name: "endurance deficit spills into health", hp: 10, endurance: 2, path: character.PathEndurance, amount: -5, wantHP: 7, wantEndurance: 0},
		{name: "spill clamps at zero", hp: 2, endurance: 3, path: character.PathHP, amount: -10, wantHP: 0, wantEndurance: 0},
		{name: "heal", hp: 5, endurance: 5, path: character.PathHP, amount: 3, wantHP: 8, wantEndurance: 5},
		{name: "both at zero stay zero", hp: 0, endurance: 0, path: character.PathEndurance, amount: -1, wantHP: 0, wantEndurance: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := character.New("c", "o", "C", tc.hp, tc.endurance)

			_, err := c.ApplyPoolDelta(tc.path, tc.amount)
			require.NoError(t, err)

			assert.Equal(t, tc.wantHP, c.Stats.Number(character.PathHP))
			assert.Equal(t, tc.wantEndurance, c.Stats.Number(character.PathEndurance))
			assert.False(t, c.Stats.Number(character.PathHP) < 0 || c.Stats.Number(character.PathEndurance) < 0)
		})
	}
}

func TestApplyPoolDeltaReportsChanges(t *testing.T) {
	c := character.New("c", "o", "C", 3, 10)

	changes, err := c.ApplyPoolDelta(character.PathHP, -5)
	require.NoError(t, err)

	assert.Equal(t, []character.PoolChange{
		{Path: character.PathHP, Before: 3, After: 0},
		{Path: character.PathEndurance, Before: 10, After: 8},
	}, changes)
	assert.Equal(t, -3.0, changes[0].Delta())
}

func TestEnduranceReserveClamps(t *testing.T) {
	c := character.New("c", "o", "C", 10, 10)
	c.Stats.Set(character.PathEnduranceReserve, 4.0)

	changes, err := c.SpendEndurance(10, true)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Stats.Number(character.PathEnduranceReserve))
	assert.Equal(t, -4.0, changes[0].Delta())
	assert.Equal(t, 10.0, c.Stats.Number(character.PathEndurance))
}

func TestApplyPoolDeltaRejectsUnknownPool(t *testing.T) {
	c := character.New("c", "o", "C", 10, 10)

	_, err := c.ApplyPoolDelta("armor", 1)
	assert.True(t, ovaerr.IsInvalidArgument(err))
}

func TestDramaDice(t *testing.T) {
	c := character.New("c", "o", "C", 10, 10)
	c.GiveDramaDie()
	c.GiveDramaDie()

	require.NoError(t, c.UseDramaDice(3))
	assert.Equal(t, 0.0, c.Stats.Number(character.PathDramaFree))
	assert.Equal(t, 1.0, c.Stats.Number(character.PathDramaUsed))

	c.GiveDramaDie()
	require.NoError(t, c.UseDramaDice(0))
	assert.Equal(t, 1.0, c.Stats.Number(character.PathDramaFree))

	c.ResetDramaDice()
	assert.Equal(t, 0.0, c.Stats.Number(character.PathDramaFree))
	assert.Equal(t, 0.0, c.Stats.Number(character.PathDramaUsed))

	assert.Error(t, c.UseDramaDice(-1))
}

func TestDerive(t *testing.T) {
	c := newHero()
	c.Stats.Set(character.PathHPReserveMax, 5.0)
	c.Abilities[0].Effects = []effects.Definition{
		effects.Changes("armor", "@level").Build(),
	}
	c.Abilities[3].Effects = []effects.Definition{
		effects.Changes("armor", "100").Build(),
	}
	c.ActiveEffects = []*effects.ActiveEffect{{
		ID:      "blessed",
		Changes: []effects.Change{{Key: "speed", Mode: effects.ModeAdd, Value: 2}},
	}}

	d := c.Derive(effects.Clock{})

	assert.Equal(t, 2.0, d.Stats.Number(character.PathGlobalMod))
	assert.Equal(t, 3.0, d.Stats.Number(character.PathArmor))
	assert.Equal(t, 2.0, d.Stats.Number(character.PathSpeed))
	assert.Equal(t, 45.0, d.Stats.Number(character.PathHPMax))
	assert.Equal(t, 40.0, c.Stats.Number(character.PathHPMax), "stored stats are untouched")
	assert.Len(t, d.Changes, 1)
	assert.Len(t, d.Applied, 1)
}

func TestDeriveExhaustedLowersGlobalMod(t *testing.T) {
	c := character.New("c", "o", "C", 10, 10)
	_, err := c.ApplyPoolDelta(character.PathEndurance, -10)
	require.NoError(t, err)

	d := c.Derive(effects.Clock{})
	assert.Equal(t, 1.0, d.Stats.Number(character.PathGlobalMod))
}

func TestThreatValue(t *testing.T) {
	c := newHero()
	c.Attacks = []*character.Attack{
		{ID: "punch", Name: "Punch", Roll: 1, Dx: 1, AbilityIDs: []string{"strong"}},
		{ID: "smash", Name: "Smash", Roll: 3, Dx: 2, AbilityIDs: []string{"strong", "clumsy"}},
		{ID: "nova", Name: "Nova", Roll: 9, Dx: 3, AbilityIDs: []string{"arcane"}, EnduranceCost: 10},
		{ID: "mend", Name: "Mend", Roll: 9, Dx: -1, AbilityIDs: []string{"arcane"}},
	}

	d := c.Derive(effects.Clock{})
	// evasion 2 + (3 + strong 2 - clumsy 1) + armor 1
	assert.Equal(t, 7.0, d.Stats.Number(character.PathThreat))

	c.Stats.Set(character.PathThreat, 12.0)
	assert.Equal(t, 12.0, c.Derive(effects.Clock{}).Stats.Number(character.PathThreat))
}

func TestDerivedRolls(t *testing.T) {
	c := newHero()
	c.Stats.Set(character.PathGlobalDefMod, 1.0)
	c.Stats.Set("resistances.fire", 2.0)
	c.Stats.Set("resistances.cold", -1.0)
	c.Stats.Set("resistanceHeal.fire", true)

	d := c.Derive(effects.Clock{})

	assert.Equal(t, 5, d.DefenseRoll("evasion"))
	assert.Equal(t, 3, d.DefenseRoll("unknown"))
	assert.Equal(t, 6, d.AttackRoll(4))
	assert.Equal(t, map[string]character.Resistance{
		"fire": {Value: 2, CanHeal: true},
		"cold": {Value: -1},
	}, d.Resistances())
}

func TestPrepareAttack(t *testing.T) {
	c := newHero()
	c.Abilities[0].Effects = []effects.Definition{
		effects.Changes("attack.dx", "@level / 2").Build(),
		effects.Active("speed", "-1").ForRounds(1).Build(),
	}
	c.Attacks = []*character.Attack{{
		ID:            "flame",
		Name:          "Flame Lash",
		Roll:          1,
		Dx:            1,
		AbilityIDs:    []string{"strong", "clumsy", "sleeping"},
		Affinity:      []string{"fire"},
		Fatiguing:     true,
		LimitedUse:    &character.LimitedUse{Value: 1, Max: 2},
		EnduranceCost: 5,
		Perks: character.Perks{
			{ID: "piercing", Name: "Piercing", Kind: effects.SourcePerk, Level: 2, Cost: 5, Effects: []effects.Definition{
				effects.Changes("attack.ignoreArmor", "@level").Build(),
			}},
			{ID: "slow", Name: "Slow", Kind: effects.SourceFlaw, Level: 1, Cost: -10, Effects: []effects.Definition{
				effects.Changes("ovaFlags.slow", "1").Build(),
			}},
		},
	}}

	prepared, err := c.PrepareAttack("flame")
	require.NoError(t, err)

	assert.Equal(t, 2, prepared.Roll)
	assert.Equal(t, 2.0, prepared.Dx)
	assert.Equal(t, 2.0, prepared.IgnoreArmor)
	assert.Equal(t, 1.0, prepared.Levels)
	assert.Equal(t, 5.0, prepared.EnduranceCost)
	assert.True(t, prepared.Affinity["fire"])
	assert.True(t, prepared.Flags["slow"])
	require.Len(t, prepared.Effects, 1)
	assert.Equal(t, "strong", prepared.Effects[0].Source.ID)

	require.NoError(t, c.UseAttack("flame"))
	assert.Error(t, c.UseAttack("flame"))

	_, err = c.PrepareAttack("missing")
	assert.True(t, ovaerr.IsNotFound(err))
}

func TestHasUses(t *testing.T) {
	assert.True(t, (&character.Attack{}).HasUses())
	assert.True(t, (&character.Attack{LimitedUse: &character.LimitedUse{Value: 0, Max: 0}}).HasUses())
	assert.False(t, (&character.Attack{LimitedUse: &character.LimitedUse{Value: 0, Max: 3}}).HasUses())
}

func TestPerkStacking(t *testing.T) {
	var perks character.Perks
	perks = perks.Add(character.Perk{ID: "p", Name: "Piercing", Kind: effects.SourcePerk})
	perks = perks.Add(character.Perk{ID: "p", Name: "Piercing", Kind: effects.SourcePerk})
	require.Len(t, perks, 1)
	assert.Equal(t, 2.0, perks[0].Level)

	perks = perks.Remove("p")
	require.Len(t, perks, 1)
	assert.Equal(t, 1.0, perks[0].Level)

	perks = perks.Remove("p")
	assert.Empty(t, perks)
}

func TestSpellCost(t *testing.T) {
	assert.Equal(t, 20.0, character.SpellCost(1, 1))
	assert.Equal(t, 60.0, character.SpellCost(1, 5))
	assert.Equal(t, 10.0, character.SpellCost(3, 2))
	assert.Equal(t, 0.0, character.SpellCost(5, 1))
	assert.Equal(t, 0.0, character.SpellCost(0, 2))
	assert.Equal(t, 0.0, character.SpellCost(2, 6))
}

func TestPrepareSpell(t *testing.T) {
	c := newHero()
	c.Spells = []*character.Spell{{
		ID:         "bolt",
		Name:       "Bolt",
		DN:         10,
		AbilityIDs: []string{"arcane", "strong"},
		Effects: []effects.Definition{
			effects.Active("hp.value", "-@level * 2").Build(),
		},
	}}

	prepared, err := c.PrepareSpell("bolt")
	require.NoError(t, err)

	assert.Equal(t, 5, prepared.Roll)
	assert.Equal(t, 3.0, prepared.MagicLevel)
	assert.Equal(t, 2.0, prepared.Levels)
	assert.Equal(t, 10.0, prepared.EnduranceCost)
	require.Len(t, prepared.Effects, 1)
	assert.Equal(t, 2.0, prepared.Effects[0].Source.Level)

	require.NoError(t, c.ActivateSpell("bolt"))
	assert.True(t, c.Spells[0].Active)
}

func TestUpdateEffects(t *testing.T) {
	c := character.New("c", "o", "C", 10, 10)

	err := c.UpdateEffects(func(m *effects.Manager) error {
		return m.AddEffect(&effects.ActiveEffect{ID: "e1", Origin: "venom"}, effects.Clock{WorldTime: 5})
	})
	require.NoError(t, err)
	require.Len(t, c.ActiveEffects, 1)
	assert.Equal(t, 5.0, c.ActiveEffects[0].Start.WorldTime)

	err = c.UpdateEffects(func(m *effects.Manager) error {
		m.RemoveEffectsByOrigin("venom")
		return nil
	})
	require.NoError(t, err)
	assert.Empty(t, c.ActiveEffects)
}

func TestRollInitiative(t *testing.T) {
	roller := mockdice.NewManualMockRoller(2, 5, 5, 1)

	roll, err := character.RollInitiative(roller, 2)
	require.NoError(t, err)

	assert.Equal(t, 4, roll.Nominal)
	assert.Equal(t, dice.PolicyKeepHighestSum, roll.Policy)
	assert.Equal(t, 10, roll.Total)
}
