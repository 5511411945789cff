package character_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	chardomain "github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/notify"
	mocknotify "github.com/KirkDiggler/ova-combat/internal/notify/mock"
	"github.com/KirkDiggler/ova-combat/internal/repositories/characters"
	"github.com/KirkDiggler/ova-combat/internal/services/character"
	mockcharacter "github.com/KirkDiggler/ova-combat/internal/services/character/mock"
	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	notifier *mocknotify.MockNotifier
	timer    *mockcharacter.MockTimeProvider
	repo     characters.Repository
	svc      character.Service
	ctx      context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.notifier = mocknotify.NewMockNotifier(s.ctrl)
	s.timer = mockcharacter.NewMockTimeProvider(s.ctrl)
	s.repo = characters.NewInMemoryRepository()
	s.ctx = context.Background()

	s.svc = character.NewService(&character.ServiceConfig{
		Repository:    s.repo,
		Notifier:      s.notifier,
		UUIDGenerator: uuid.NewSequentialGenerator("char"),
		TimeProvider:  s.timer,
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func combatAt(round, turn int) effects.Clock {
	return effects.Clock{Combat: &effects.CombatClock{CombatID: "enc-1", Round: round, Turn: turn, TurnsInRound: 2}}
}

func (s *ServiceTestSuite) createHero() *chardomain.Character {
	hero, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{
		OwnerID:   "player-1",
		Name:      "Hero",
		HP:        40,
		Endurance: 40,
	})
	s.Require().NoError(err)
	return hero
}

func (s *ServiceTestSuite) TestCreateCharacter() {
	hero := s.createHero()
	s.Equal("char-1", hero.ID)
	s.Equal(40.0, hero.Stats.Number(chardomain.PathHPMax))

	_, err := s.svc.CreateCharacter(s.ctx, &character.CreateCharacterInput{Name: "  "})
	s.True(ovaerr.IsInvalidArgument(err))

	_, err = s.svc.CreateCharacter(s.ctx, nil)
	s.True(ovaerr.IsInvalidArgument(err))

	owned, err := s.svc.ListByOwner(s.ctx, "player-1")
	s.Require().NoError(err)
	s.Len(owned, 1)
}

func (s *ServiceTestSuite) TestGetCharacterNotFound() {
	_, err := s.svc.GetCharacter(s.ctx, "ghost")
	s.True(ovaerr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestApplyPoolDeltaNotifiesEveryPool() {
	hero := s.createHero()

	s.notifier.EXPECT().Notify(gomock.Any(), notify.PoolChange(hero.ID, chardomain.PathHP, -40)).Return(nil)
	s.notifier.EXPECT().Notify(gomock.Any(), notify.PoolChange(hero.ID, chardomain.PathEndurance, -5)).Return(nil)

	changes, err := s.svc.ApplyPoolDelta(s.ctx, hero.ID, chardomain.PathHP, -45)
	s.Require().NoError(err)
	s.Len(changes, 2)

	stored, err := s.svc.GetCharacter(s.ctx, hero.ID)
	s.Require().NoError(err)
	s.Equal(0.0, stored.Stats.Number(chardomain.PathHP))
	s.Equal(35.0, stored.Stats.Number(chardomain.PathEndurance))
}

func (s *ServiceTestSuite) TestApplyPoolDeltaIgnoresNotifierFailure() {
	hero := s.createHero()

	s.notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := s.svc.ApplyPoolDelta(s.ctx, hero.ID, chardomain.PathHP, -3)
	s.NoError(err)
}

func (s *ServiceTestSuite) TestApplyPoolDeltaRejectsUnknownPool() {
	hero := s.createHero()

	_, err := s.svc.ApplyPoolDelta(s.ctx, hero.ID, "armor", 1)
	s.True(ovaerr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestSpendEnduranceFromReserve() {
	hero := s.createHero()
	hero.Stats.Set(chardomain.PathEnduranceReserve, 10.0)

	s.notifier.EXPECT().Notify(gomock.Any(), notify.PoolChange(hero.ID, chardomain.PathEnduranceReserve, -4)).Return(nil)

	changes, err := s.svc.SpendEndurance(s.ctx, hero.ID, 4, true)
	s.Require().NoError(err)
	s.Require().Len(changes, 1)
	s.Equal(6.0, changes[0].After)

	changes, err = s.svc.SpendEndurance(s.ctx, hero.ID, 0, false)
	s.NoError(err)
	s.Empty(changes)
}

func (s *ServiceTestSuite) TestDramaDice() {
	hero := s.createHero()

	s.Require().NoError(s.svc.GiveDramaDie(s.ctx, hero.ID))
	s.Require().NoError(s.svc.UseDramaDice(s.ctx, hero.ID, 3))
	s.Equal(0.0, hero.Stats.Number(chardomain.PathDramaFree))
	s.Equal(2.0, hero.Stats.Number(chardomain.PathDramaUsed))

	s.True(ovaerr.IsInvalidArgument(s.svc.UseDramaDice(s.ctx, hero.ID, -1)))

	s.Require().NoError(s.svc.ResetDramaDice(s.ctx, hero.ID))
	s.Equal(0.0, hero.Stats.Number(chardomain.PathDramaUsed))
}

func (s *ServiceTestSuite) TestEffectsFollowTheCombatClock() {
	hero := s.createHero()
	hero.Stats.Set(chardomain.PathArmor, 2.0)

	shield := &effects.ActiveEffect{
		Label:    "Shield",
		Changes:  []effects.Change{{Key: chardomain.PathArmor, Mode: effects.ModeAdd, Value: 1}},
		Duration: *effects.Rounds(1),
	}
	s.Require().NoError(s.svc.AddEffects(character.WithClock(s.ctx, combatAt(1, 0)), hero.ID, shield))
	s.Equal("char-2", shield.ID)

	profile, err := s.svc.DefenseProfile(character.WithClock(s.ctx, combatAt(1, 1)), hero.ID)
	s.Require().NoError(err)
	s.Equal(3.0, profile.Armor)

	profile, err = s.svc.DefenseProfile(character.WithClock(s.ctx, combatAt(2, 0)), hero.ID)
	s.Require().NoError(err)
	s.Equal(2.0, profile.Armor)

	s.Require().NoError(s.svc.RemoveEffect(s.ctx, hero.ID, shield.ID))
	s.True(ovaerr.IsNotFound(s.svc.RemoveEffect(s.ctx, hero.ID, shield.ID)))
}

func (s *ServiceTestSuite) TestEffectsOutsideCombatUseWorldTime() {
	hero := s.createHero()
	start := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	gomock.InOrder(
		s.timer.EXPECT().Now().Return(start),
		s.timer.EXPECT().Now().Return(start.Add(30*time.Second)),
		s.timer.EXPECT().Now().Return(start.Add(61*time.Second)),
	)

	haste := effects.NewBuilder(effects.KindApplyActiveEffect).
		WithKey(chardomain.PathSpeed, "").
		WithValue("2").
		ForSeconds(60).
		Build()
	effect, err := effects.Materialize(haste, effects.SourceRef{ID: "haste", Name: "Haste", Kind: effects.SourceAbility, Level: 1}, nil)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.AddEffects(s.ctx, hero.ID, effect))

	derived, err := s.svc.Derive(s.ctx, hero.ID)
	s.Require().NoError(err)
	s.Equal(2.0, derived.Stats.Number(chardomain.PathSpeed))

	derived, err = s.svc.Derive(s.ctx, hero.ID)
	s.Require().NoError(err)
	s.Equal(0.0, derived.Stats.Number(chardomain.PathSpeed))
}

func (s *ServiceTestSuite) TestDefenseProfileResistances() {
	hero := s.createHero()
	hero.Stats.Set("resistances.fire", 1.0)
	hero.Stats.Set("resistances.ice", -2.0)
	hero.Stats.Set("resistanceHeal.fire", 1.0)

	profile, err := s.svc.DefenseProfile(character.WithClock(s.ctx, effects.Clock{}), hero.ID)
	s.Require().NoError(err)
	s.True(profile.Resistances["fire"].CanHeal)
	s.Equal(1.0, profile.Resistances["fire"].Value)
	s.False(profile.Resistances["ice"].CanHeal)
	s.Equal(-2.0, profile.Resistances["ice"].Value)
}

func (s *ServiceTestSuite) TestTickEffects() {
	hero := s.createHero()

	bleed := &effects.ActiveEffect{
		ID:       "bleed",
		Label:    "Bleed",
		Duration: *effects.Rounds(2),
		OverTime: map[effects.Trigger]effects.Change{
			effects.TriggerEachRound: {Key: chardomain.PathHP, Mode: effects.ModeAdd, Value: -2},
		},
	}
	focus := &effects.ActiveEffect{
		ID: "focus",
		OverTime: map[effects.Trigger]effects.Change{
			effects.TriggerOnce: {Key: chardomain.PathGlobalRollMod, Mode: effects.ModeOverride, Value: 1},
		},
	}
	s.Require().NoError(s.svc.AddEffects(character.WithClock(s.ctx, combatAt(1, 0)), hero.ID, bleed, focus))

	result, err := s.svc.TickEffects(character.WithClock(s.ctx, combatAt(1, 0)), hero.ID)
	s.Require().NoError(err)
	s.Empty(result.Ticks)

	result, err = s.svc.TickEffects(character.WithClock(s.ctx, combatAt(1, 1)), hero.ID)
	s.Require().NoError(err)
	s.Require().Len(result.Ticks, 1)
	s.Equal(1.0, hero.Stats.Number(chardomain.PathGlobalRollMod))
	s.Empty(result.PoolChanges)

	s.notifier.EXPECT().Notify(gomock.Any(), notify.PoolChange(hero.ID, chardomain.PathHP, -2)).Return(nil).Times(2)

	result, err = s.svc.TickEffects(character.WithClock(s.ctx, combatAt(2, 0)), hero.ID)
	s.Require().NoError(err)
	s.Len(result.Ticks, 1)
	s.Empty(result.Expired)
	s.Equal(38.0, hero.Stats.Number(chardomain.PathHP))

	result, err = s.svc.TickEffects(character.WithClock(s.ctx, combatAt(3, 0)), hero.ID)
	s.Require().NoError(err)
	s.Len(result.Ticks, 1)
	s.Require().Len(result.Expired, 1)
	s.Equal("bleed", result.Expired[0].ID)
	s.Equal(36.0, hero.Stats.Number(chardomain.PathHP))
	s.Len(hero.ActiveEffects, 1)
}
