package combat

import (
	"github.com/KirkDiggler/ova-combat/internal/effects"
)

// Outcome is what a submitted roll resolved to
type Outcome string

const (
	// OutcomePending means the attack now waits for a response
	OutcomePending Outcome = "pending"
	OutcomeHeal    Outcome = "heal"
	OutcomeHit     Outcome = "hit"
	OutcomeMiss    Outcome = "miss"
	OutcomeTie     Outcome = "tie"
	// OutcomeCounterFailed means the pending attacker won the exchange
	OutcomeCounterFailed Outcome = "counter-failed"
	// OutcomeCounterSucceeded means the counter-attacker won the exchange
	OutcomeCounterSucceeded Outcome = "counter-succeeded"
	OutcomeSpellSuccess     Outcome = "spell-success"
	OutcomeSpellFailure     Outcome = "spell-failure"
	OutcomeBonusMerged      Outcome = "bonus-merged"
	// OutcomeFlavor is a roll with nothing to resolve against
	OutcomeFlavor Outcome = "flavor"
)

// Pool is the stat path a delta lands on
type Pool string

const (
	PoolHP        Pool = "hp.value"
	PoolEndurance Pool = "endurance.value"
)

// Delta is a signed change to one actor's pool. Negative is damage.
type Delta struct {
	ActorID string
	Pool    Pool
	Amount  float64
}

// Grant is an active effect to be added to an actor
type Grant struct {
	ActorID string
	Effect  *effects.ActiveEffect
}

// Resolution reports what a submitted roll did
type Resolution struct {
	Record  *AttackRecord
	Outcome Outcome
	// Against is the pending attack or earlier roll the record resolved against
	Against *AttackRecord
	Delta   int
	Deltas  []Delta
	Grants  []Grant
	// EffectErrors lists effects that failed to materialize
	EffectErrors []error
	// StaleCleared is set when a context change discarded the pending attack
	StaleCleared bool
	// ActivateSourceID is the spell source to mark active after a success
	ActivateSourceID string
}
