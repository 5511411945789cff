package encounter

//go:generate mockgen -destination=mock/mock_service.go -package=mockencounter -source=service.go

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/ova-combat/internal/dice"
	chardomain "github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/domain/encounter"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/repositories/encounters"
	charService "github.com/KirkDiggler/ova-combat/internal/services/character"
	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

// Service defines the encounter service interface
type Service interface {
	// CreateEncounter creates a new encounter
	CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*encounter.Encounter, error)

	// GetEncounter retrieves an encounter by ID
	GetEncounter(ctx context.Context, encounterID string) (*encounter.Encounter, error)

	// AddCombatant adds a character to an encounter
	AddCombatant(ctx context.Context, encounterID, characterID string) (*encounter.Combatant, error)

	// RemoveCombatant removes a combatant from an encounter
	RemoveCombatant(ctx context.Context, encounterID, combatantID string) error

	// RollInitiative rolls initiative for all combatants and sorts the turn order
	RollInitiative(ctx context.Context, encounterID string) (map[string]*dice.Roll, error)

	// StartEncounter begins round one
	StartEncounter(ctx context.Context, encounterID string) error

	// NextTurn advances to the next turn and runs the over-time effects due
	NextTurn(ctx context.Context, encounterID string) (*TurnResult, error)

	// EndEncounter ends the encounter and drops its combat session
	EndEncounter(ctx context.Context, encounterID string) error

	// Clock returns the clock effects resolve at inside an encounter
	Clock(ctx context.Context, encounterID string) (effects.Clock, error)
}

// CreateEncounterInput contains data for creating an encounter
type CreateEncounterInput struct {
	Name   string
	UserID string
}

// TurnResult reports a turn advance
type TurnResult struct {
	Round    int
	Turn     int
	NewRound bool
	Current  *encounter.Combatant
	Ticks    map[string]*charService.TickResult
}

// SessionCloser drops the resolution state of a combat
type SessionCloser interface {
	Close(id string)
}

// TimeProvider supplies world time
type TimeProvider interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

type service struct {
	repository       encounters.Repository
	characterService charService.Service
	sessions         SessionCloser
	roller           dice.Roller
	uuidGenerator    uuid.Generator
	timeProvider     TimeProvider
	logger           *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository       encounters.Repository
	CharacterService charService.Service
	Sessions         SessionCloser
	Roller           dice.Roller
	UUIDGenerator    uuid.Generator
	TimeProvider     TimeProvider
	Logger           *zap.Logger
}

// NewService creates a new encounter service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}

	svc := &service{
		repository:       cfg.Repository,
		characterService: cfg.CharacterService,
		sessions:         cfg.Sessions,
		roller:           cfg.Roller,
		uuidGenerator:    cfg.UUIDGenerator,
		timeProvider:     cfg.TimeProvider,
		logger:           cfg.Logger,
	}
	if svc.roller == nil {
		svc.roller = dice.NewRandomRoller()
	}
	if svc.uuidGenerator == nil {
		svc.uuidGenerator = uuid.NewGoogleUUIDGenerator()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = wallClock{}
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc
}

func (s *service) CreateEncounter(ctx context.Context, input *CreateEncounterInput) (*encounter.Encounter, error) {
	if input == nil {
		return nil, ovaerr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, ovaerr.InvalidArgument("encounter name is required")
	}

	enc := encounter.NewEncounter(s.uuidGenerator.New(), input.Name, input.UserID)
	if err := s.repository.Create(ctx, enc); err != nil {
		return nil, ovaerr.Wrap(err, "failed to create encounter")
	}

	s.logger.Info("encounter created",
		zap.String("encounter_id", enc.ID),
		zap.String("created_by", input.UserID))
	return enc, nil
}

func (s *service) GetEncounter(ctx context.Context, encounterID string) (*encounter.Encounter, error) {
	if strings.TrimSpace(encounterID) == "" {
		return nil, ovaerr.InvalidArgument("encounter ID is required")
	}

	enc, err := s.repository.Get(ctx, encounterID)
	if err != nil {
		return nil, ovaerr.Wrapf(err, "failed to get encounter '%s'", encounterID)
	}
	return enc, nil
}

func (s *service) AddCombatant(ctx context.Context, encounterID, characterID string) (*encounter.Combatant, error) {
	enc, err := s.GetEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if enc.Status == encounter.StatusCompleted {
		return nil, ovaerr.Validationf("encounter '%s' has ended", enc.Name)
	}
	if existing := enc.CombatantByCharacter(characterID); existing != nil {
		return nil, ovaerr.AlreadyExistsf("%s is already in the encounter", existing.Name)
	}

	char, err := s.characterService.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, ovaerr.Wrap(err, "failed to get character")
	}

	combatant := &encounter.Combatant{
		ID:          s.uuidGenerator.New(),
		Name:        char.Name,
		CharacterID: char.ID,
	}
	enc.AddCombatant(combatant)
	enc.AddCombatLogEntry(fmt.Sprintf("%s joins the fight", char.Name))

	if err := s.repository.Update(ctx, enc); err != nil {
		return nil, ovaerr.Wrap(err, "failed to update encounter")
	}
	return combatant, nil
}

func (s *service) RemoveCombatant(ctx context.Context, encounterID, combatantID string) error {
	enc, err := s.GetEncounter(ctx, encounterID)
	if err != nil {
		return err
	}

	combatant, exists := enc.Combatants[combatantID]
	if !exists {
		return ovaerr.NotFoundf("combatant '%s' not found", combatantID)
	}
	enc.RemoveCombatant(combatantID)
	enc.AddCombatLogEntry(fmt.Sprintf("%s leaves the fight", combatant.Name))

	if err := s.repository.Update(ctx, enc); err != nil {
		return ovaerr.Wrap(err, "failed to update encounter")
	}
	return nil
}

func (s *service) RollInitiative(ctx context.Context, encounterID string) (map[string]*dice.Roll, error) {
	enc, err := s.GetEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if enc.Status != encounter.StatusSetup && enc.Status != encounter.StatusRolling {
		return nil, ovaerr.Validationf("initiative can only be rolled before combat starts")
	}
	if len(enc.TurnOrder) == 0 {
		return nil, ovaerr.Validationf("encounter '%s' has no combatants", enc.Name)
	}

	ctx = charService.WithClock(ctx, s.clock(enc))
	rolls := make(map[string]*dice.Roll, len(enc.TurnOrder))
	for _, id := range enc.TurnOrder {
		combatant := enc.Combatants[id]

		derived, err := s.characterService.Derive(ctx, combatant.CharacterID)
		if err != nil {
			return nil, ovaerr.Wrapf(err, "failed to derive stats for %s", combatant.Name)
		}

		roll, err := chardomain.RollInitiative(s.roller, derived.Stats.Number(chardomain.PathSpeed))
		if err != nil {
			return nil, ovaerr.Wrap(err, "failed to roll initiative")
		}
		combatant.Initiative = roll.Total
		rolls[id] = roll

		enc.AddCombatLogEntry(fmt.Sprintf("%s rolls %d for initiative", combatant.Name, roll.Total))
	}
	enc.SortTurnOrder()

	if err := s.repository.Update(ctx, enc); err != nil {
		return nil, ovaerr.Wrap(err, "failed to update encounter")
	}
	return rolls, nil
}

func (s *service) StartEncounter(ctx context.Context, encounterID string) error {
	enc, err := s.GetEncounter(ctx, encounterID)
	if err != nil {
		return err
	}
	if !enc.Start() {
		return ovaerr.Validationf("encounter '%s' cannot start until initiative is rolled", enc.Name)
	}
	enc.AddCombatLogEntry("Combat begins")

	if err := s.repository.Update(ctx, enc); err != nil {
		return ovaerr.Wrap(err, "failed to update encounter")
	}

	s.logger.Info("encounter started", zap.String("encounter_id", enc.ID))
	return nil
}

func (s *service) NextTurn(ctx context.Context, encounterID string) (*TurnResult, error) {
	enc, err := s.GetEncounter(ctx, encounterID)
	if err != nil {
		return nil, err
	}
	if enc.Status != encounter.StatusActive {
		return nil, ovaerr.Validationf("encounter '%s' is not active", enc.Name)
	}

	result := &TurnResult{NewRound: enc.NextTurn()}
	result.Round, result.Turn = enc.Round, enc.Turn
	result.Current = enc.GetCurrentCombatant()

	ticks, err := s.tickAll(charService.WithClock(ctx, s.clock(enc)), enc)
	if err != nil {
		return nil, err
	}
	result.Ticks = ticks

	for charID, tick := range ticks {
		for _, e := range tick.Expired {
			s.logger.Debug("effect expired",
				zap.String("character_id", charID),
				zap.String("effect", e.Label))
		}
	}
	if result.NewRound {
		enc.AddCombatLogEntry("New round")
	}

	if err := s.repository.Update(ctx, enc); err != nil {
		return nil, ovaerr.Wrap(err, "failed to update encounter")
	}
	return result, nil
}

// tickAll runs the over-time effects of every combatant concurrently
func (s *service) tickAll(ctx context.Context, enc *encounter.Encounter) (map[string]*charService.TickResult, error) {
	charIDs := make([]string, 0, len(enc.TurnOrder))
	for _, id := range enc.TurnOrder {
		if c := enc.Combatants[id]; c != nil {
			charIDs = append(charIDs, c.CharacterID)
		}
	}

	results := make([]*charService.TickResult, len(charIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, charID := range charIDs {
		i, charID := i, charID
		g.Go(func() error {
			res, err := s.characterService.TickEffects(gctx, charID)
			if err != nil {
				return ovaerr.Wrapf(err, "failed to tick effects for '%s'", charID)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*charService.TickResult, len(charIDs))
	for i, charID := range charIDs {
		out[charID] = results[i]
	}
	return out, nil
}

func (s *service) EndEncounter(ctx context.Context, encounterID string) error {
	enc, err := s.GetEncounter(ctx, encounterID)
	if err != nil {
		return err
	}
	if enc.Status == encounter.StatusCompleted {
		return ovaerr.Validationf("encounter '%s' already ended", enc.Name)
	}

	enc.End()
	enc.AddCombatLogEntry("Combat ends")
	if err := s.repository.Update(ctx, enc); err != nil {
		return ovaerr.Wrap(err, "failed to update encounter")
	}

	if s.sessions != nil {
		s.sessions.Close(enc.ID)
	}

	s.logger.Info("encounter ended",
		zap.String("encounter_id", enc.ID),
		zap.Int("rounds", enc.Round))
	return nil
}

func (s *service) Clock(ctx context.Context, encounterID string) (effects.Clock, error) {
	enc, err := s.GetEncounter(ctx, encounterID)
	if err != nil {
		return effects.Clock{}, err
	}
	return s.clock(enc), nil
}

func (s *service) clock(enc *encounter.Encounter) effects.Clock {
	return effects.Clock{
		WorldTime: float64(s.timeProvider.Now().Unix()),
		Combat:    enc.Clock(),
	}
}
