package combat

//go:generate mockgen -destination=mock/mock_service.go -package=mockcombatsvc -source=service.go

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ova-combat/internal/combat"
	"github.com/KirkDiggler/ova-combat/internal/command"
	"github.com/KirkDiggler/ova-combat/internal/dice"
	chardomain "github.com/KirkDiggler/ova-combat/internal/domain/character"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	charService "github.com/KirkDiggler/ova-combat/internal/services/character"
	encService "github.com/KirkDiggler/ova-combat/internal/services/encounter"
	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

// DramaEnduranceCost is charged per drama roll and scaled by its multiplier
const DramaEnduranceCost = 5

// Service turns player rolls into resolved combat outcomes
type Service interface {
	// SubmitRoll rolls for an actor and resolves the roll against its session
	SubmitRoll(ctx context.Context, input *SubmitRollInput) (*RollResult, error)

	// SubmitCommand parses a chat command and submits the roll it describes
	SubmitCommand(ctx context.Context, input *CommandInput) (*RollResult, error)

	// Pending returns the attack waiting for a response in a session
	Pending(sessionID string) *combat.AttackRecord
}

// SubmitRollInput describes a roll. Prepared attacks, spells and defenses are
// looked up on the actor; without them Dice, Dx and DN are used as given.
type SubmitRollInput struct {
	// SessionID names the table outside combat. Ignored when EncounterID is set.
	SessionID   string
	EncounterID string
	ActorID     string
	Type        combat.RollType
	AttackID    string
	SpellID     string
	Defense     string
	Dice        int
	Dx          float64
	DN          int
	Modifier    int
	Size        dice.Size
	// Multiplier defaults to a single roll. Zero skips the roll entirely.
	Multiplier  *int
	FromReserve bool
	TargetIDs   []string
}

// CommandInput is a chat command typed by an actor
type CommandInput struct {
	SessionID   string
	EncounterID string
	ActorID     string
	Text        string
	TargetIDs   []string
}

// RollResult is a resolved roll and everything it changed
type RollResult struct {
	Resolution     *combat.Resolution
	EnduranceSpent []chardomain.PoolChange
	PoolChanges    map[string][]chardomain.PoolChange
}

// TimeProvider supplies world time
type TimeProvider interface {
	Now() time.Time
}

type wallClock struct{}

func (wallClock) Now() time.Time { return time.Now() }

type service struct {
	registry         *combat.Registry
	characterService charService.Service
	encounterService encService.Service
	roller           dice.Roller
	uuidGenerator    uuid.Generator
	timeProvider     TimeProvider
	logger           *zap.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Registry         *combat.Registry
	CharacterService charService.Service
	EncounterService encService.Service
	Roller           dice.Roller
	UUIDGenerator    uuid.Generator
	TimeProvider     TimeProvider
	Logger           *zap.Logger
}

// NewService creates a new combat service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig cannot be nil")
	}
	if cfg.CharacterService == nil {
		panic("character service is required")
	}
	if cfg.EncounterService == nil {
		panic("encounter service is required")
	}

	svc := &service{
		registry:         cfg.Registry,
		characterService: cfg.CharacterService,
		encounterService: cfg.EncounterService,
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
	if svc.registry == nil {
		svc.registry = combat.NewRegistry(cfg.CharacterService, svc.uuidGenerator, svc.logger)
	}

	return svc
}

func (s *service) Pending(sessionID string) *combat.AttackRecord {
	session, ok := s.registry.Get(sessionID)
	if !ok {
		return nil
	}
	return session.Pending()
}

func (s *service) SubmitCommand(ctx context.Context, input *CommandInput) (*RollResult, error) {
	if input == nil {
		return nil, ovaerr.InvalidArgument("input cannot be nil")
	}

	cmd, err := command.Parse(input.Text)
	if err != nil {
		return nil, err
	}

	roll := &SubmitRollInput{
		SessionID:   input.SessionID,
		EncounterID: input.EncounterID,
		ActorID:     input.ActorID,
		Dice:        cmd.Dice,
		Dx:          cmd.Dx,
		DN:          cmd.DN,
		TargetIDs:   input.TargetIDs,
	}
	switch cmd.Kind {
	case command.KindAttack:
		roll.Type = combat.RollAttack
	case command.KindDefense:
		roll.Type = combat.RollDefense
	case command.KindDrama:
		roll.Type = combat.RollDrama
	case command.KindMiracle:
		miracle := dice.MultiplierMiracle
		roll.Type = combat.RollDrama
		roll.Dice = 1
		roll.Multiplier = &miracle
	case command.KindSpell:
		roll.Type = combat.RollSpell
	default:
		roll.Type = combat.RollManual
	}

	return s.SubmitRoll(ctx, roll)
}

// prepared is a roll request with what the record needs besides the dice
type prepared struct {
	request *dice.Request
	record  *combat.AttackRecord
	cost    float64
	// limited is the attack whose limited uses the roll spends
	limited string
	drama   int
}

func (s *service) SubmitRoll(ctx context.Context, input *SubmitRollInput) (*RollResult, error) {
	if input == nil {
		return nil, ovaerr.InvalidArgument("input cannot be nil")
	}
	if strings.TrimSpace(input.ActorID) == "" {
		return nil, ovaerr.InvalidArgument("actor ID is required")
	}

	sessionID := input.SessionID
	clock := effects.Clock{WorldTime: float64(s.timeProvider.Now().Unix())}
	if input.EncounterID != "" {
		var err error
		clock, err = s.encounterService.Clock(ctx, input.EncounterID)
		if err != nil {
			return nil, err
		}
		sessionID = input.EncounterID
	}
	if sessionID == "" {
		return nil, ovaerr.InvalidArgument("session or encounter ID is required")
	}
	ctx = charService.WithClock(ctx, clock)

	p, err := s.prepare(ctx, input)
	if err != nil {
		return nil, err
	}

	roll, err := p.request.Roll(s.roller)
	if err != nil {
		return nil, ovaerr.Wrap(err, "failed to roll dice")
	}

	rec := p.record
	rec.ID = s.uuidGenerator.New()
	rec.Roll = roll
	rec.AuthorID = input.ActorID
	rec.TargetIDs = input.TargetIDs
	if c := clock.Combat; c != nil {
		rec.Context = &combat.Context{CombatID: c.CombatID, Round: c.Round, Turn: c.Turn}
	}

	res, err := s.registry.Open(sessionID).Submit(ctx, rec)
	if err != nil {
		return nil, ovaerr.Wrap(err, "failed to resolve roll")
	}

	s.logger.Info("roll resolved",
		zap.String("session_id", sessionID),
		zap.String("author_id", rec.AuthorID),
		zap.String("type", string(rec.Type)),
		zap.Int("result", rec.Result()),
		zap.String("outcome", string(res.Outcome)),
		zap.Int("delta", res.Delta))

	result := &RollResult{Resolution: res, PoolChanges: make(map[string][]chardomain.PoolChange)}
	if err := s.settle(ctx, input, p, result); err != nil {
		return nil, err
	}
	return result, nil
}

// prepare builds the dice request and the record skeleton for a roll
func (s *service) prepare(ctx context.Context, input *SubmitRollInput) (*prepared, error) {
	char, err := s.characterService.GetCharacter(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}
	derived, err := s.characterService.Derive(ctx, input.ActorID)
	if err != nil {
		return nil, err
	}

	p := &prepared{record: &combat.AttackRecord{Type: input.Type}}
	base := input.Dice

	switch {
	case (input.Type == combat.RollAttack || input.Type == combat.RollCounter) && input.AttackID != "":
		attack, err := char.PrepareAttack(input.AttackID)
		if err != nil {
			return nil, err
		}
		if !attack.Attack.HasUses() {
			return nil, ovaerr.Validationf("%s has no uses left", attack.Attack.Name).
				WithMeta("attack_id", attack.Attack.ID)
		}
		s.logSkipped(input.ActorID, attack.Errors)

		base = derived.AttackRoll(attack.Roll)
		p.cost = attack.EnduranceCost
		p.limited = attack.Attack.ID
		p.record.Dx = attack.Dx
		p.record.IgnoreArmor = attack.IgnoreArmor
		p.record.Affinity = attack.Affinity
		p.record.Fatiguing = attack.Attack.Fatiguing || attack.Flags["fatiguing"]
		p.record.Effects = attack.Effects
		p.record.SourceID = attack.Attack.ID

	case input.Type == combat.RollSpell && input.SpellID != "":
		spell, err := char.PrepareSpell(input.SpellID)
		if err != nil {
			return nil, err
		}
		s.logSkipped(input.ActorID, spell.Errors)

		base = derived.AttackRoll(spell.Roll)
		p.cost = spell.EnduranceCost
		p.record.DN = spell.Spell.DN
		p.record.Effects = spell.Effects
		p.record.SourceID = spell.Spell.ID

	case input.Type == combat.RollDefense && input.Defense != "":
		base = derived.DefenseRoll(input.Defense)

	case input.Type == combat.RollDrama:
		if base < 1 {
			base = command.DefaultDramaDice
		}
		p.cost = DramaEnduranceCost
		p.drama = base

	default:
		p.record.Dx = input.Dx
		p.record.DN = input.DN
	}

	p.request = dice.NewRequest(base)
	p.request.Modifier = input.Modifier
	if input.Size != "" {
		p.request.Size = input.Size
	}
	if input.Multiplier != nil {
		p.request.Multiplier = *input.Multiplier
	}
	if input.Type == combat.RollDrama {
		p.cost *= float64(p.request.Multiplier)
	}
	return p, nil
}

func (s *service) logSkipped(actorID string, errs []error) {
	for _, err := range errs {
		s.logger.Warn("effect skipped while preparing roll",
			zap.String("author_id", actorID),
			zap.Error(err))
	}
}

// settle applies what a resolved roll costs the roller and what it did to
// everyone it touched
func (s *service) settle(ctx context.Context, input *SubmitRollInput, p *prepared, result *RollResult) error {
	res := result.Resolution

	if p.limited != "" || res.ActivateSourceID != "" {
		char, err := s.characterService.GetCharacter(ctx, input.ActorID)
		if err != nil {
			return err
		}
		if p.limited != "" {
			if err := char.UseAttack(p.limited); err != nil {
				return err
			}
		}
		if res.ActivateSourceID != "" {
			if err := char.ActivateSpell(res.ActivateSourceID); err != nil {
				return err
			}
		}
		if err := s.characterService.UpdateCharacter(ctx, char); err != nil {
			return err
		}
	}

	if p.drama > 0 {
		if err := s.characterService.UseDramaDice(ctx, input.ActorID, p.drama); err != nil {
			return ovaerr.Wrap(err, "failed to spend drama dice")
		}
	}

	spent, err := s.characterService.SpendEndurance(ctx, input.ActorID, p.cost, input.FromReserve)
	if err != nil {
		return err
	}
	result.EnduranceSpent = spent

	for _, d := range res.Deltas {
		changes, err := s.characterService.ApplyPoolDelta(ctx, d.ActorID, string(d.Pool), d.Amount)
		if err != nil {
			return ovaerr.Wrapf(err, "failed to apply %v to %s", d.Amount, d.ActorID)
		}
		result.PoolChanges[d.ActorID] = append(result.PoolChanges[d.ActorID], changes...)
	}

	for _, g := range res.Grants {
		if err := s.characterService.AddEffects(ctx, g.ActorID, g.Effect); err != nil {
			return ovaerr.Wrapf(err, "failed to grant %s to %s", g.Effect.Label, g.ActorID)
		}
	}
	return nil
}
