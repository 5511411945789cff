package encounter_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	mockdice "github.com/KirkDiggler/ova-combat/internal/dice/mock"
	chardomain "github.com/KirkDiggler/ova-combat/internal/domain/character"
	domainenc "github.com/KirkDiggler/ova-combat/internal/domain/encounter"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/repositories/encounters"
	charService "github.com/KirkDiggler/ova-combat/internal/services/character"
	mockcharacter "github.com/KirkDiggler/ova-combat/internal/services/character/mock"
	"github.com/KirkDiggler/ova-combat/internal/services/encounter"
	mockencounter "github.com/KirkDiggler/ova-combat/internal/services/encounter/mock"
	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

type ServiceTestSuite struct {
	suite.Suite
	ctrl   *gomock.Controller
	chars  *mockcharacter.MockService
	closer *mockencounter.MockSessionCloser
	roller *mockdice.ManualMockRoller
	repo   encounters.Repository
	svc    encounter.Service
	ctx    context.Context
}

func (s *ServiceTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.chars = mockcharacter.NewMockService(s.ctrl)
	s.closer = mockencounter.NewMockSessionCloser(s.ctrl)
	s.roller = mockdice.NewManualMockRoller()
	s.repo = encounters.NewInMemoryRepository()
	s.ctx = context.Background()

	timer := mockencounter.NewMockTimeProvider(s.ctrl)
	timer.EXPECT().Now().Return(time.Unix(1000, 0)).AnyTimes()

	s.svc = encounter.NewService(&encounter.ServiceConfig{
		Repository:       s.repo,
		CharacterService: s.chars,
		Sessions:         s.closer,
		Roller:           s.roller,
		UUIDGenerator:    uuid.NewSequentialGenerator("enc"),
		TimeProvider:     timer,
	})
}

func (s *ServiceTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceTestSuite))
}

func derivedWithSpeed(speed float64) *chardomain.Derived {
	stats := effects.Snapshot{}
	stats.Set(chardomain.PathSpeed, speed)
	return &chardomain.Derived{Stats: stats}
}

// setupFight creates an encounter with hero (speed 0) joining before foe (speed 1)
func (s *ServiceTestSuite) setupFight() *domainenc.Encounter {
	enc, err := s.svc.CreateEncounter(s.ctx, &encounter.CreateEncounterInput{Name: "Ambush", UserID: "gm"})
	s.Require().NoError(err)

	s.chars.EXPECT().GetCharacter(gomock.Any(), "hero").Return(chardomain.New("hero", "p1", "Hero", 20, 20), nil)
	s.chars.EXPECT().GetCharacter(gomock.Any(), "foe").Return(chardomain.New("foe", "gm", "Foe", 20, 20), nil)
	_, err = s.svc.AddCombatant(s.ctx, enc.ID, "hero")
	s.Require().NoError(err)
	_, err = s.svc.AddCombatant(s.ctx, enc.ID, "foe")
	s.Require().NoError(err)
	return enc
}

func (s *ServiceTestSuite) startFight() *domainenc.Encounter {
	enc := s.setupFight()

	s.chars.EXPECT().Derive(gomock.Any(), "hero").Return(derivedWithSpeed(0), nil)
	s.chars.EXPECT().Derive(gomock.Any(), "foe").Return(derivedWithSpeed(1), nil)
	s.roller.Queue(2, 3, 5, 5, 1)

	_, err := s.svc.RollInitiative(s.ctx, enc.ID)
	s.Require().NoError(err)
	s.Require().NoError(s.svc.StartEncounter(s.ctx, enc.ID))
	return enc
}

func (s *ServiceTestSuite) TestCreateEncounter() {
	enc, err := s.svc.CreateEncounter(s.ctx, &encounter.CreateEncounterInput{Name: "Ambush", UserID: "gm"})
	s.Require().NoError(err)
	s.Equal("enc-1", enc.ID)
	s.Equal(domainenc.StatusSetup, enc.Status)

	_, err = s.svc.CreateEncounter(s.ctx, &encounter.CreateEncounterInput{Name: " "})
	s.True(ovaerr.IsInvalidArgument(err))
}

func (s *ServiceTestSuite) TestAddCombatant() {
	enc := s.setupFight()

	s.Len(enc.TurnOrder, 2)
	hero := enc.CombatantByCharacter("hero")
	s.Require().NotNil(hero)
	s.Equal("Hero", hero.Name)
	s.Equal("enc-2", hero.ID)

	_, err := s.svc.AddCombatant(s.ctx, enc.ID, "hero")
	s.True(ovaerr.IsAlreadyExists(err))

	s.chars.EXPECT().GetCharacter(gomock.Any(), "ghost").Return(nil, ovaerr.NotFound("character not found"))
	_, err = s.svc.AddCombatant(s.ctx, enc.ID, "ghost")
	s.True(ovaerr.IsNotFound(err))
}

func (s *ServiceTestSuite) TestRemoveCombatant() {
	enc := s.setupFight()
	hero := enc.CombatantByCharacter("hero")

	s.Require().NoError(s.svc.RemoveCombatant(s.ctx, enc.ID, hero.ID))
	s.Len(enc.TurnOrder, 1)
	s.True(ovaerr.IsNotFound(s.svc.RemoveCombatant(s.ctx, enc.ID, hero.ID)))
}

func (s *ServiceTestSuite) TestRollInitiativeOrdersBySpeedDice() {
	enc := s.setupFight()

	s.chars.EXPECT().Derive(gomock.Any(), "hero").Return(derivedWithSpeed(0), nil)
	s.chars.EXPECT().Derive(gomock.Any(), "foe").Return(derivedWithSpeed(1), nil)
	s.roller.Queue(2, 3, 5, 5, 1)

	rolls, err := s.svc.RollInitiative(s.ctx, enc.ID)
	s.Require().NoError(err)
	s.Len(rolls, 2)

	foe := enc.CombatantByCharacter("foe")
	hero := enc.CombatantByCharacter("hero")
	s.Equal(10, foe.Initiative)
	s.Equal(3, hero.Initiative)
	s.Equal([]string{foe.ID, hero.ID}, enc.TurnOrder)
	s.Equal(domainenc.StatusRolling, enc.Status)
	s.Zero(s.roller.Remaining())
}

func (s *ServiceTestSuite) TestRollInitiativeNeedsCombatants() {
	enc, err := s.svc.CreateEncounter(s.ctx, &encounter.CreateEncounterInput{Name: "Empty"})
	s.Require().NoError(err)

	_, err = s.svc.RollInitiative(s.ctx, enc.ID)
	s.True(ovaerr.Is(err, ovaerr.CodeValidation))
}

func (s *ServiceTestSuite) TestStartNeedsInitiative() {
	enc := s.setupFight()

	err := s.svc.StartEncounter(s.ctx, enc.ID)
	s.True(ovaerr.Is(err, ovaerr.CodeValidation))
}

func (s *ServiceTestSuite) TestNextTurnTicksEveryCombatant() {
	enc := s.startFight()
	s.Equal("foe", enc.GetCurrentCombatant().CharacterID)

	clock, err := s.svc.Clock(s.ctx, enc.ID)
	s.Require().NoError(err)
	s.Require().NotNil(clock.Combat)
	s.Equal(1, clock.Combat.Round)
	s.Equal(1000.0, clock.WorldTime)

	tick := func(ctx context.Context, charID string) (*charService.TickResult, error) {
		c, ok := charService.ClockFrom(ctx)
		s.Assert().True(ok)
		s.Assert().Equal(enc.ID, c.Combat.CombatID)
		s.Assert().Equal(2, c.Combat.TurnsInRound)
		return &charService.TickResult{}, nil
	}
	s.chars.EXPECT().TickEffects(gomock.Any(), "hero").DoAndReturn(tick).Times(2)
	s.chars.EXPECT().TickEffects(gomock.Any(), "foe").DoAndReturn(tick).Times(2)

	result, err := s.svc.NextTurn(s.ctx, enc.ID)
	s.Require().NoError(err)
	s.False(result.NewRound)
	s.Equal(1, result.Round)
	s.Equal(1, result.Turn)
	s.Equal("hero", result.Current.CharacterID)
	s.Len(result.Ticks, 2)

	result, err = s.svc.NextTurn(s.ctx, enc.ID)
	s.Require().NoError(err)
	s.True(result.NewRound)
	s.Equal(2, result.Round)
	s.Equal(0, result.Turn)
	s.Equal("foe", result.Current.CharacterID)
}

func (s *ServiceTestSuite) TestNextTurnTickFailure() {
	enc := s.startFight()

	s.chars.EXPECT().TickEffects(gomock.Any(), "hero").Return(&charService.TickResult{}, nil).AnyTimes()
	s.chars.EXPECT().TickEffects(gomock.Any(), "foe").Return(nil, errors.New("store unavailable"))

	_, err := s.svc.NextTurn(s.ctx, enc.ID)
	s.Error(err)
}

func (s *ServiceTestSuite) TestNextTurnRequiresActiveEncounter() {
	enc := s.setupFight()

	_, err := s.svc.NextTurn(s.ctx, enc.ID)
	s.True(ovaerr.Is(err, ovaerr.CodeValidation))
}

func (s *ServiceTestSuite) TestEndEncounterClosesSession() {
	enc := s.startFight()

	s.closer.EXPECT().Close(enc.ID)
	s.Require().NoError(s.svc.EndEncounter(s.ctx, enc.ID))
	s.Equal(domainenc.StatusCompleted, enc.Status)

	clock, err := s.svc.Clock(s.ctx, enc.ID)
	s.Require().NoError(err)
	s.Nil(clock.Combat)

	s.True(ovaerr.Is(s.svc.EndEncounter(s.ctx, enc.ID), ovaerr.CodeValidation))
}
