package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clockAt(round, turn int) Clock {
	return Clock{Combat: &CombatClock{CombatID: "c1", Round: round, Turn: turn, TurnsInRound: 3}}
}

func TestManager_AddEffect(t *testing.T) {
	manager := NewManager()

	t.Run("adds and stamps effect", func(t *testing.T) {
		effect := &ActiveEffect{ID: "e1", Label: "Bless", Duration: *Rounds(1)}

		require.NoError(t, manager.AddEffect(effect, clockAt(2, 1)))
		assert.Equal(t, StartMarker{CombatID: "c1", Round: 2, Turn: 1}, effect.Start)
		assert.Len(t, manager.GetActiveEffects(clockAt(2, 1)), 1)
	})

	t.Run("rejects effect without ID", func(t *testing.T) {
		assert.Error(t, manager.AddEffect(&ActiveEffect{Label: "Nameless"}, Clock{}))
	})

	t.Run("rejects duplicate ID", func(t *testing.T) {
		assert.Error(t, manager.AddEffect(&ActiveEffect{ID: "e1"}, Clock{}))
	})
}

func TestManager_ClearExpired(t *testing.T) {
	manager := NewManager()
	require.NoError(t, manager.AddEffect(&ActiveEffect{ID: "short", Duration: *Rounds(1)}, clockAt(1, 0)))
	require.NoError(t, manager.AddEffect(&ActiveEffect{ID: "forever"}, clockAt(1, 0)))

	assert.Empty(t, manager.ClearExpired(clockAt(1, 2)))

	removed := manager.ClearExpired(clockAt(2, 0))
	require.Len(t, removed, 1)
	assert.Equal(t, "short", removed[0].ID)
	assert.Len(t, manager.Effects(), 1)
}

func TestManager_ApplyTo(t *testing.T) {
	manager := NewManager(
		&ActiveEffect{ID: "late", Changes: []Change{{Key: "armor", Mode: ModeMultiply, Value: 2, Priority: 10}}},
		&ActiveEffect{ID: "early", Changes: []Change{{Key: "armor", Mode: ModeAdd, Value: 1}}},
		&ActiveEffect{ID: "off", Disabled: true, Changes: []Change{{Key: "armor", Mode: ModeOverride, Value: 99}}},
	)

	snap := Snapshot{"armor": 2.0}
	changes := manager.ApplyTo(snap, Clock{})

	assert.Len(t, changes, 2)
	assert.Equal(t, 6.0, snap.Number("armor"))
}

func TestManager_RemoveEffectsByOrigin(t *testing.T) {
	manager := NewManager(
		&ActiveEffect{ID: "a", Origin: "ability-1"},
		&ActiveEffect{ID: "b", Origin: "ability-2"},
		&ActiveEffect{ID: "c", Origin: "ability-1"},
	)

	removed := manager.RemoveEffectsByOrigin("ability-1")
	assert.Len(t, removed, 2)
	assert.True(t, manager.RemoveEffect("b"))
	assert.False(t, manager.RemoveEffect("b"))
	assert.Empty(t, manager.Effects())
}

func TestManager_Tick(t *testing.T) {
	bleed := Change{Key: "hp.value", Mode: ModeAdd, Value: -2}
	shock := Change{Key: "endurance.value", Mode: ModeAdd, Value: -5}

	manager := NewManager()
	require.NoError(t, manager.AddEffect(&ActiveEffect{
		ID:       "bleed",
		Duration: *Rounds(2),
		OverTime: map[Trigger]Change{TriggerEachRound: bleed},
	}, clockAt(1, 1)))
	require.NoError(t, manager.AddEffect(&ActiveEffect{
		ID:       "shock",
		OverTime: map[Trigger]Change{TriggerOnce: shock},
	}, clockAt(1, 1)))

	assert.Empty(t, manager.Tick(clockAt(1, 1)), "nothing fires on the turn it was applied")

	ticks := manager.Tick(clockAt(1, 2))
	require.Len(t, ticks, 1)
	assert.Equal(t, TriggerOnce, ticks[0].Trigger)
	assert.Equal(t, shock, ticks[0].Change)

	assert.Empty(t, manager.Tick(clockAt(2, 0)))

	ticks = manager.Tick(clockAt(2, 1))
	require.Len(t, ticks, 1)
	assert.Equal(t, "bleed", ticks[0].EffectID)
	assert.Equal(t, bleed, ticks[0].Change)

	assert.Len(t, manager.Tick(clockAt(3, 1)), 1)
	assert.Nil(t, manager.Tick(Clock{}))
}

func TestManager_TickRestartsEffectsFromOtherCombats(t *testing.T) {
	bleed := Change{Key: "hp.value", Mode: ModeAdd, Value: -2}
	effect := &ActiveEffect{
		ID:       "bleed",
		Duration: *Rounds(1),
		OverTime: map[Trigger]Change{TriggerEachRound: bleed},
		Start:    StartMarker{WorldTime: 40, CombatID: "c0", Round: 7, Turn: 2},
	}
	manager := NewManager(effect)

	assert.Empty(t, manager.Tick(clockAt(1, 1)))
	assert.Equal(t, StartMarker{WorldTime: 40, CombatID: "c1", Round: 1, Turn: 1}, effect.Start)
	assert.Empty(t, manager.ClearExpired(clockAt(1, 1)))

	assert.Empty(t, manager.Tick(clockAt(1, 2)))
	ticks := manager.Tick(clockAt(2, 1))
	require.Len(t, ticks, 1)
	assert.Equal(t, bleed, ticks[0].Change)

	removed := manager.ClearExpired(clockAt(2, 1))
	require.Len(t, removed, 1)
	assert.Equal(t, "bleed", removed[0].ID)
}
