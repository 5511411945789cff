package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KirkDiggler/ova-combat/internal/combat"
	mockdice "github.com/KirkDiggler/ova-combat/internal/dice/mock"
	"github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/services"
	combatService "github.com/KirkDiggler/ova-combat/internal/services/combat"
	encounterService "github.com/KirkDiggler/ova-combat/internal/services/encounter"
	"github.com/KirkDiggler/ova-combat/internal/testutils"
	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

func TestProviderRunsAnEncounter(t *testing.T) {
	ctx := context.Background()
	roller := mockdice.NewManualMockRoller()
	provider := services.NewProvider(&services.ProviderConfig{
		Roller:        roller,
		UUIDGenerator: uuid.NewSequentialGenerator("id"),
	})

	hero := testutils.CreateTestFighter("hero", "Hero")
	goblin := testutils.CreateTestFighter("goblin", "Goblin")
	require.NoError(t, provider.CharacterService.ImportCharacter(ctx, hero))
	require.NoError(t, provider.CharacterService.ImportCharacter(ctx, goblin))

	enc, err := provider.EncounterService.CreateEncounter(ctx, &encounterService.CreateEncounterInput{Name: "Skirmish", UserID: "gm"})
	require.NoError(t, err)
	_, err = provider.EncounterService.AddCombatant(ctx, enc.ID, hero.ID)
	require.NoError(t, err)
	_, err = provider.EncounterService.AddCombatant(ctx, enc.ID, goblin.ID)
	require.NoError(t, err)

	roller.Queue(6, 6, 1, 1)
	_, err = provider.EncounterService.RollInitiative(ctx, enc.ID)
	require.NoError(t, err)
	require.NoError(t, provider.EncounterService.StartEncounter(ctx, enc.ID))

	roller.Queue(6, 6, 5, 1)
	res, err := provider.CombatService.SubmitRoll(ctx, &combatService.SubmitRollInput{
		EncounterID: enc.ID,
		ActorID:     hero.ID,
		Type:        combat.RollAttack,
		AttackID:    "hero-punch",
	})
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomePending, res.Resolution.Outcome)

	roller.Queue(2, 1, 1)
	res, err = provider.CombatService.SubmitRoll(ctx, &combatService.SubmitRollInput{
		EncounterID: enc.ID,
		ActorID:     goblin.ID,
		Type:        combat.RollDefense,
		Defense:     "evasion",
	})
	require.NoError(t, err)
	assert.Equal(t, combat.OutcomeHit, res.Resolution.Outcome)
	assert.Equal(t, 30.0, goblin.Stats.Number(character.PathHP))

	_, ok := provider.Registry.Get(enc.ID)
	assert.True(t, ok)
	require.NoError(t, provider.EncounterService.EndEncounter(ctx, enc.ID))
	_, ok = provider.Registry.Get(enc.ID)
	assert.False(t, ok)
}
