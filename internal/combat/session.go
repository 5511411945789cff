package combat

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/KirkDiggler/ova-combat/internal/damage"
	"github.com/KirkDiggler/ova-combat/internal/dice"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
	"github.com/KirkDiggler/ova-combat/internal/formula"
	"github.com/KirkDiggler/ova-combat/internal/uuid"
)

//go:generate mockgen -destination=mock/mock_profiles.go -package=mockcombat -source=session.go

// Profiles supplies what a defender brings against a damaging roll
type Profiles interface {
	DefenseProfile(ctx context.Context, actorID string) (*damage.Defender, error)
}

// SessionConfig holds the dependencies of a Session
type SessionConfig struct {
	ID       string
	Profiles Profiles
	IDs      uuid.Generator
	Logger   *zap.Logger
}

// Session is the resolution state of one combat or table. It holds at most
// one pending attack and the last non-drama roll, and resolves submitted
// rolls one at a time.
type Session struct {
	id       string
	profiles Profiles
	ids      uuid.Generator
	logger   *zap.Logger

	mu      sync.Mutex
	pending *AttackRecord
	last    *AttackRecord
}

// NewSession creates an idle session
func NewSession(cfg *SessionConfig) *Session {
	if cfg == nil {
		panic("SessionConfig cannot be nil")
	}
	if cfg.Profiles == nil {
		panic("Profiles is required")
	}

	ids := cfg.IDs
	if ids == nil {
		ids = uuid.NewGoogleUUIDGenerator()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		id:       cfg.ID,
		profiles: cfg.Profiles,
		ids:      ids,
		logger:   logger.With(zap.String("session_id", cfg.ID)),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Pending returns the attack waiting for a response, if any
func (s *Session) Pending() *AttackRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// LastRoll returns the most recent non-drama roll
func (s *Session) LastRoll() *AttackRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

// Reset drops the pending attack and last roll
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	s.last = nil
}

// Submit resolves a roll against the session state
func (s *Session) Submit(ctx context.Context, r *AttackRecord) (*Resolution, error) {
	if r == nil || r.Roll == nil {
		return nil, ovaerr.InvalidArgument("roll is required")
	}
	if r.AuthorID == "" {
		return nil, ovaerr.InvalidArgument("roll author is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := &Resolution{Record: r}
	prevPending, prevLast := s.pending, s.last

	if s.pending != nil && !s.pending.Context.Same(r.Context) {
		s.logger.Debug("pending attack cleared by context change",
			zap.String("attack_id", s.pending.ID))
		s.pending = nil
		res.StaleCleared = true
	}

	if r.Type == RollDrama {
		return s.mergeDrama(r, res)
	}
	s.last = r

	typ := r.Type
	out, err := s.dispatch(ctx, r, res)
	if err != nil {
		// a failed resolution leaves the session as it was
		s.pending, s.last = prevPending, prevLast
		r.Type = typ
		return nil, err
	}
	return out, nil
}

func (s *Session) dispatch(ctx context.Context, r *AttackRecord, res *Resolution) (*Resolution, error) {
	if r.Type == RollManual && s.pending != nil {
		r.Type = RollDefense
	}

	switch r.Type {
	case RollAttack:
		return s.onAttack(ctx, r, res)
	case RollCounter:
		if s.pending != nil && s.pending.AuthorID != r.AuthorID {
			return s.onCounter(ctx, r, res)
		}
	case RollDefense:
		return s.onDefense(ctx, r, res)
	case RollSpell:
		return s.onSpell(r, res)
	}

	res.Outcome = OutcomeFlavor
	return res, nil
}

func (s *Session) mergeDrama(r *AttackRecord, res *Resolution) (*Resolution, error) {
	if s.last == nil {
		return nil, ovaerr.InvalidBonusMergef("no roll to add drama dice to")
	}
	if s.last.AuthorID != r.AuthorID {
		return nil, ovaerr.InvalidBonusMergef("drama dice may only be added to your own last roll").
			WithMeta("author_id", r.AuthorID).
			WithMeta("last_author_id", s.last.AuthorID)
	}

	if err := dice.MergeBonusDice(s.last.Roll, r.Roll); err != nil {
		return nil, err
	}
	if r.Roll.Nominal == dice.MaxFace {
		r.Miracle = true
		s.last.Miracle = true
	}

	res.Outcome = OutcomeBonusMerged
	res.Against = s.last
	return res, nil
}

func (s *Session) onAttack(ctx context.Context, r *AttackRecord, res *Resolution) (*Resolution, error) {
	if r.Dx < 0 {
		amount := damage.Heal(r.Result(), r.Dx)
		targets := r.TargetIDs
		if len(targets) == 0 {
			targets = []string{r.AuthorID}
		}
		for _, id := range targets {
			res.Deltas = append(res.Deltas, Delta{ActorID: id, Pool: PoolHP, Amount: amount})
		}
		s.grant(r, rollVars(r, nil, amount), r.AuthorID, targets, res)
		res.Outcome = OutcomeHeal
		return res, nil
	}

	if s.pending != nil && s.pending.AuthorID != r.AuthorID {
		r.Type = RollCounter
		return s.onCounter(ctx, r, res)
	}

	s.pending = r
	res.Outcome = OutcomePending
	return res, nil
}

func (s *Session) onCounter(ctx context.Context, r *AttackRecord, res *Resolution) (*Resolution, error) {
	attack := s.pending
	delta := clampMiracles(attack.Result()-r.Result(), attack.Miracle, r.Miracle)

	winner, loser := attack, r
	if delta < 0 {
		winner, loser = r, attack
	}
	var profile *damage.Defender
	if delta != 0 {
		var err error
		if profile, err = s.defenseProfile(ctx, loser.AuthorID); err != nil {
			return nil, err
		}
	}

	s.pending = nil
	res.Against = attack
	res.Delta = delta

	if delta == 0 {
		res.Outcome = OutcomeTie
		return res, nil
	}

	res.Outcome = OutcomeCounterFailed
	if delta < 0 {
		res.Outcome = OutcomeCounterSucceeded
	}
	finalResult := winner.Result()
	loser.overrideResult(0)
	s.hit(winner, loser, finalResult, profile, res)
	return res, nil
}

func (s *Session) onDefense(ctx context.Context, r *AttackRecord, res *Resolution) (*Resolution, error) {
	if s.pending == nil {
		res.Outcome = OutcomeFlavor
		return res, nil
	}

	attack := s.pending
	raw := attack.Result() - r.Result()
	delta := clampMiracles(raw, attack.Miracle, r.Miracle)

	var profile *damage.Defender
	if delta > 0 {
		var err error
		if profile, err = s.defenseProfile(ctx, r.AuthorID); err != nil {
			return nil, err
		}
	}

	s.pending = nil
	res.Against = attack
	res.Delta = delta

	switch {
	case delta > 0:
		res.Outcome = OutcomeHit
		// a miracle hit still lands with at least the clamped margin
		s.hit(attack, r, max(raw, delta), profile, res)
	case delta < 0:
		res.Outcome = OutcomeMiss
	default:
		res.Outcome = OutcomeTie
	}
	return res, nil
}

func (s *Session) onSpell(r *AttackRecord, res *Resolution) (*Resolution, error) {
	delta := r.Result() - r.DN
	if r.Miracle {
		delta = max(delta, 1)
	}
	res.Delta = delta

	if delta < 0 {
		res.Outcome = OutcomeSpellFailure
		return res, nil
	}

	res.Outcome = OutcomeSpellSuccess
	res.ActivateSourceID = r.SourceID
	s.grant(r, rollVars(r, nil, 0), r.AuthorID, r.TargetIDs, res)
	return res, nil
}

func (s *Session) defenseProfile(ctx context.Context, actorID string) (*damage.Defender, error) {
	profile, err := s.profiles.DefenseProfile(ctx, actorID)
	if err != nil {
		return nil, ovaerr.Wrapf(err, "failed to load defense profile for %s", actorID)
	}
	if profile == nil {
		profile = &damage.Defender{}
	}
	return profile, nil
}

// hit applies the winner's damage to the loser and grants the winner's effects
func (s *Session) hit(winner, loser *AttackRecord, finalResult int, profile *damage.Defender, res *Resolution) {
	defender := damage.Defender{Armor: profile.Armor, Resistances: make(map[string]damage.Resistance, len(profile.Resistances))}
	for name, r := range profile.Resistances {
		r.Affected = r.Affected || winner.Affinity[name]
		defender.Resistances[name] = r
	}

	amount := damage.Damage(finalResult, winner.Dx, winner.IgnoreArmor, defender)
	pool := PoolHP
	if winner.Fatiguing {
		pool = PoolEndurance
	}
	res.Deltas = append(res.Deltas, Delta{ActorID: loser.AuthorID, Pool: pool, Amount: amount})

	s.logger.Info("attack landed",
		zap.String("attacker_id", winner.AuthorID),
		zap.String("defender_id", loser.AuthorID),
		zap.Int("final_result", finalResult),
		zap.Float64("amount", amount))

	s.grant(winner, rollVars(winner, loser, amount), winner.AuthorID, []string{loser.AuthorID}, res)
}

// grant materializes rec's effects: self effects for selfID, target effects
// for each of targetIDs. Failures are collected, not returned.
func (s *Session) grant(rec *AttackRecord, rollContext formula.Scope, selfID string, targetIDs []string, res *Resolution) {
	for _, d := range rec.Effects {
		recipients := []string{selfID}
		if d.Definition.Target == effects.TargetTarget {
			recipients = targetIDs
		}

		for _, actorID := range recipients {
			effect, err := effects.Materialize(d.Definition, d.Source, rollContext)
			if err != nil {
				s.logger.Warn("failed to materialize effect",
					zap.String("source", d.Source.Name),
					zap.Error(err))
				res.EffectErrors = append(res.EffectErrors, err)
				break
			}
			effect.ID = s.ids.New()
			res.Grants = append(res.Grants, Grant{ActorID: actorID, Effect: effect})
		}
	}
}

func clampMiracles(delta int, attacker, defender bool) int {
	switch {
	case attacker && defender:
		return 0
	case attacker:
		return max(delta, 1)
	case defender:
		return min(delta, -1)
	}
	return delta
}

func rollVars(attack, defense *AttackRecord, amount float64) formula.Vars {
	vars := formula.Vars{"attack": recordVars(attack, amount)}
	if defense != nil {
		vars["defense"] = recordVars(defense, 0)
	}
	return vars
}

func recordVars(r *AttackRecord, amount float64) map[string]any {
	nominal := 0
	if r.Roll != nil {
		nominal = r.Roll.Nominal
	}
	return map[string]any{
		"result":      r.Result(),
		"roll":        nominal,
		"dx":          r.Dx,
		"ignoreArmor": r.IgnoreArmor,
		"dn":          r.DN,
		"damage":      amount,
	}
}
