package character

//go:generate mockgen -destination=mock/mock_service.go -package=mockcharacter -source=service.go

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ova-combat/internal/damage"
	chardomain "github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/notify"
	"github.com/KirkDiggler/ova-combat/internal/repositories/characters"
	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

// Service is the actor stat store: pools, drama dice, active effects and
// the derived snapshot
type Service interface {
	// CreateCharacter creates and stores a character with full pools
	CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*chardomain.Character, error)

	// ImportCharacter stores a fully built character, such as one loaded from a roster
	ImportCharacter(ctx context.Context, char *chardomain.Character) error

	// GetCharacter retrieves a character by ID
	GetCharacter(ctx context.Context, characterID string) (*chardomain.Character, error)

	// ListByOwner retrieves the characters an owner plays
	ListByOwner(ctx context.Context, ownerID string) ([]*chardomain.Character, error)

	// UpdateCharacter persists a modified character
	UpdateCharacter(ctx context.Context, char *chardomain.Character) error

	// ApplyPoolDelta adds amount to a pool and broadcasts every pool that moved
	ApplyPoolDelta(ctx context.Context, characterID, path string, amount float64) ([]chardomain.PoolChange, error)

	// SpendEndurance charges an endurance cost, optionally from the reserve
	SpendEndurance(ctx context.Context, characterID string, cost float64, fromReserve bool) ([]chardomain.PoolChange, error)

	// GiveDramaDie grants a free drama die
	GiveDramaDie(ctx context.Context, characterID string) error

	// ResetDramaDice zeroes the drama dice ledger
	ResetDramaDice(ctx context.Context, characterID string) error

	// UseDramaDice spends drama dice, free ones first
	UseDramaDice(ctx context.Context, characterID string, n int) error

	// SetAbilityActive toggles an ability
	SetAbilityActive(ctx context.Context, characterID, abilityID string, active bool) error

	// AddEffects starts tracking active effects on a character at the clock
	// carried by ctx
	AddEffects(ctx context.Context, characterID string, effs ...*effects.ActiveEffect) error

	// RemoveEffect drops an active effect
	RemoveEffect(ctx context.Context, characterID, effectID string) error

	// TickEffects applies the over-time changes due at the clock carried by
	// ctx and clears expired effects
	TickEffects(ctx context.Context, characterID string) (*TickResult, error)

	// Derive computes the character's derived snapshot at the clock carried by ctx
	Derive(ctx context.Context, characterID string) (*chardomain.Derived, error)

	// DefenseProfile returns the armor and resistances a character defends with
	DefenseProfile(ctx context.Context, characterID string) (*damage.Defender, error)
}

// CreateCharacterInput contains data for creating a character
type CreateCharacterInput struct {
	OwnerID   string
	Name      string
	HP        float64
	Endurance float64
}

// TickResult reports what an over-time tick did
type TickResult struct {
	Ticks       []effects.Tick
	PoolChanges []chardomain.PoolChange
	Expired     []*effects.ActiveEffect
}

// TimeProvider supplies world time
type TimeProvider interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

type service struct {
	repository   characters.Repository
	notifier     notify.Notifier
	uuid         uuid.Generator
	timeProvider TimeProvider
	logger       *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository    characters.Repository
	Notifier      notify.Notifier
	UUIDGenerator uuid.Generator
	TimeProvider  TimeProvider
	Logger        *zap.Logger
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository:   cfg.Repository,
		notifier:     cfg.Notifier,
		uuid:         cfg.UUIDGenerator,
		timeProvider: cfg.TimeProvider,
		logger:       cfg.Logger,
	}
	if svc.notifier == nil {
		svc.notifier = notify.Nop{}
	}
	if svc.uuid == nil {
		svc.uuid = uuid.NewGoogleUUIDGenerator()
	}
	if svc.timeProvider == nil {
		svc.timeProvider = wallClock{}
	}
	if svc.logger == nil {
		svc.logger = zap.NewNop()
	}

	return svc
}

func (s *service) CreateCharacter(ctx context.Context, input *CreateCharacterInput) (*chardomain.Character, error) {
	if err := ValidateInput(input); err != nil {
		return nil, err
	}

	char := chardomain.New(s.uuid.New(), input.OwnerID, input.Name, input.HP, input.Endurance)
	if err := s.repository.Create(ctx, char); err != nil {
		return nil, ovaerr.Wrap(err, "failed to create character")
	}

	s.logger.Info("character created",
		zap.String("character_id", char.ID),
		zap.String("owner_id", char.OwnerID))
	return char, nil
}

func (s *service) ImportCharacter(ctx context.Context, char *chardomain.Character) error {
	if char == nil {
		return ovaerr.InvalidArgument("character cannot be nil")
	}
	if char.ID == "" {
		char.ID = s.uuid.New()
	}
	if err := s.repository.Create(ctx, char); err != nil {
		return ovaerr.Wrapf(err, "failed to import character '%s'", char.Name)
	}
	return nil
}

func (s *service) GetCharacter(ctx context.Context, characterID string) (*chardomain.Character, error) {
	if strings.TrimSpace(characterID) == "" {
		return nil, ovaerr.InvalidArgument("character ID is required")
	}

	char, err := s.repository.Get(ctx, characterID)
	if err != nil {
		return nil, ovaerr.Wrapf(err, "failed to get character '%s'", characterID)
	}
	return char, nil
}

func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]*chardomain.Character, error) {
	chars, err := s.repository.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, ovaerr.Wrapf(err, "failed to list characters of '%s'", ownerID)
	}
	return chars, nil
}

func (s *service) UpdateCharacter(ctx context.Context, char *chardomain.Character) error {
	if char == nil {
		return ovaerr.InvalidArgument("character cannot be nil")
	}
	if err := s.repository.Update(ctx, char); err != nil {
		return ovaerr.Wrapf(err, "failed to update character '%s'", char.ID)
	}
	return nil
}

// modify loads a character, runs fn and saves it when fn succeeds
func (s *service) modify(ctx context.Context, characterID string, fn func(char *chardomain.Character) error) (*chardomain.Character, error) {
	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if err := fn(char); err != nil {
		return nil, err
	}
	if err := s.UpdateCharacter(ctx, char); err != nil {
		return nil, err
	}
	return char, nil
}

func (s *service) ApplyPoolDelta(ctx context.Context, characterID, path string, amount float64) ([]chardomain.PoolChange, error) {
	var changes []chardomain.PoolChange
	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		var err error
		changes, err = char.ApplyPoolDelta(path, amount)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.broadcast(ctx, characterID, changes)
	return changes, nil
}

func (s *service) SpendEndurance(ctx context.Context, characterID string, cost float64, fromReserve bool) ([]chardomain.PoolChange, error) {
	if cost <= 0 {
		return nil, nil
	}

	var changes []chardomain.PoolChange
	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		var err error
		changes, err = char.SpendEndurance(cost, fromReserve)
		return err
	})
	if err != nil {
		return nil, ovaerr.Wrap(err, "failed to spend endurance")
	}

	s.broadcast(ctx, characterID, changes)
	return changes, nil
}

// broadcast sends one notification per moved pool. Delivery failures are
// logged and dropped.
func (s *service) broadcast(ctx context.Context, characterID string, changes []chardomain.PoolChange) {
	for _, c := range changes {
		if err := s.notifier.Notify(ctx, notify.PoolChange(characterID, c.Path, c.Delta())); err != nil {
			s.logger.Warn("failed to send pool change notification",
				zap.String("character_id", characterID),
				zap.String("path", c.Path),
				zap.Error(err))
		}
	}
}

func (s *service) GiveDramaDie(ctx context.Context, characterID string) error {
	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		char.GiveDramaDie()
		return nil
	})
	return err
}

func (s *service) ResetDramaDice(ctx context.Context, characterID string) error {
	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		char.ResetDramaDice()
		return nil
	})
	return err
}

func (s *service) UseDramaDice(ctx context.Context, characterID string, n int) error {
	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		return char.UseDramaDice(n)
	})
	return err
}

func (s *service) SetAbilityActive(ctx context.Context, characterID, abilityID string, active bool) error {
	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		return char.SetAbilityActive(abilityID, active)
	})
	return err
}

func (s *service) AddEffects(ctx context.Context, characterID string, effs ...*effects.ActiveEffect) error {
	if len(effs) == 0 {
		return nil
	}

	clock := s.clock(ctx)
	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		return char.UpdateEffects(func(m *effects.Manager) error {
			for _, e := range effs {
				if e.ID == "" {
					e.ID = s.uuid.New()
				}
				if err := m.AddEffect(e, clock); err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return ovaerr.Wrapf(err, "failed to add effects to '%s'", characterID)
	}
	return nil
}

func (s *service) RemoveEffect(ctx context.Context, characterID, effectID string) error {
	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		return char.UpdateEffects(func(m *effects.Manager) error {
			if !m.RemoveEffect(effectID) {
				return ovaerr.NotFoundf("effect %s not found", effectID)
			}
			return nil
		})
	})
	return err
}

func (s *service) TickEffects(ctx context.Context, characterID string) (*TickResult, error) {
	clock := s.clock(ctx)
	result := &TickResult{}

	_, err := s.modify(ctx, characterID, func(char *chardomain.Character) error {
		var ticks []effects.Tick
		err := char.UpdateEffects(func(m *effects.Manager) error {
			ticks = m.Tick(clock)
			result.Expired = m.ClearExpired(clock)
			return nil
		})
		if err != nil {
			return err
		}

		for _, t := range ticks {
			changes, err := s.applyTick(char, t)
			if err != nil {
				s.logger.Warn("failed to apply over-time change",
					zap.String("character_id", characterID),
					zap.String("effect_id", t.EffectID),
					zap.Error(err))
				continue
			}
			result.Ticks = append(result.Ticks, t)
			result.PoolChanges = append(result.PoolChanges, changes...)
		}
		return nil
	})
	if err != nil {
		return nil, ovaerr.Wrapf(err, "failed to tick effects on '%s'", characterID)
	}

	s.broadcast(ctx, characterID, result.PoolChanges)
	return result, nil
}

// applyTick routes pool paths through the pool rules and writes anything
// else straight onto the stored stats
func (s *service) applyTick(char *chardomain.Character, t effects.Tick) ([]chardomain.PoolChange, error) {
	switch t.Change.Key {
	case chardomain.PathHP, chardomain.PathEndurance, chardomain.PathEnduranceReserve:
		current := char.Stats.Number(t.Change.Key)
		scratch := effects.Snapshot{}
		scratch.Set(t.Change.Key, current)
		next := effects.ApplyChange(t.Change, scratch)
		return char.ApplyPoolDelta(t.Change.Key, next-current)
	}

	if char.Stats == nil {
		char.Stats = effects.Snapshot{}
	}
	effects.ApplyChange(t.Change, char.Stats)
	return nil, nil
}

func (s *service) Derive(ctx context.Context, characterID string) (*chardomain.Derived, error) {
	char, err := s.GetCharacter(ctx, characterID)
	if err != nil {
		return nil, err
	}

	derived := char.Derive(s.clock(ctx))
	for _, e := range derived.Errors {
		s.logger.Warn("effect skipped while deriving stats",
			zap.String("character_id", characterID),
			zap.Error(e))
	}
	return derived, nil
}

func (s *service) DefenseProfile(ctx context.Context, characterID string) (*damage.Defender, error) {
	derived, err := s.Derive(ctx, characterID)
	if err != nil {
		return nil, err
	}

	defender := &damage.Defender{
		Armor:       derived.Stats.Number(chardomain.PathArmor),
		Resistances: make(map[string]damage.Resistance),
	}
	for name, r := range derived.Resistances() {
		defender.Resistances[name] = damage.Resistance{Value: r.Value, CanHeal: r.CanHeal}
	}
	return defender, nil
}

// clock is the clock carried by ctx, or world time outside combat
func (s *service) clock(ctx context.Context) effects.Clock {
	if clock, ok := ClockFrom(ctx); ok {
		return clock
	}
	return effects.Clock{WorldTime: float64(s.timeProvider.Now().Unix())}
}
