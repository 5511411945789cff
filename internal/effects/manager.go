package effects

import (
	"sort"
	"sync"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// Manager holds the active effects of one actor
type Manager struct {
	effects []*ActiveEffect
	mu      sync.RWMutex
}

// NewManager creates a manager over previously persisted effects
func NewManager(existing ...*ActiveEffect) *Manager {
	m := &Manager{}
	for _, e := range existing {
		if e != nil {
			m.effects = append(m.effects, e)
		}
	}
	return m
}

// AddEffect stamps the effect with the current clock and starts tracking it
func (m *Manager) AddEffect(effect *ActiveEffect, clock Clock) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if effect.ID == "" {
		return ovaerr.InvalidArgument("effect must have an ID")
	}
	for _, existing := range m.effects {
		if existing.ID == effect.ID {
			return ovaerr.AlreadyExistsf("effect %s already active", effect.ID)
		}
	}

	effect.Start = clock.Mark()
	m.effects = append(m.effects, effect)
	return nil
}

// RemoveEffect removes an effect by ID and reports whether it was present
func (m *Manager) RemoveEffect(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, e := range m.effects {
		if e.ID == id {
			m.effects = append(m.effects[:i], m.effects[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveEffectsByOrigin removes every effect created by the given source
func (m *Manager) RemoveEffectsByOrigin(origin string) []*ActiveEffect {
	return m.removeWhere(func(e *ActiveEffect) bool { return e.Origin == origin })
}

// ClearExpired removes effects whose duration has run out and returns them
func (m *Manager) ClearExpired(clock Clock) []*ActiveEffect {
	return m.removeWhere(func(e *ActiveEffect) bool { return e.Expired(clock) })
}

func (m *Manager) removeWhere(match func(*ActiveEffect) bool) []*ActiveEffect {
	m.mu.Lock()
	defer m.mu.Unlock()

	var removed []*ActiveEffect
	kept := m.effects[:0]
	for _, e := range m.effects {
		if match(e) {
			removed = append(removed, e)
			continue
		}
		kept = append(kept, e)
	}
	m.effects = kept
	return removed
}

// Effects returns every tracked effect in the order they were added
func (m *Manager) Effects() []*ActiveEffect {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ActiveEffect, len(m.effects))
	copy(out, m.effects)
	return out
}

// GetActiveEffects returns enabled effects that have not expired
func (m *Manager) GetActiveEffects(clock Clock) []*ActiveEffect {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var active []*ActiveEffect
	for _, e := range m.effects {
		if !e.Disabled && !e.Expired(clock) {
			active = append(active, e)
		}
	}
	return active
}

// ApplyTo folds the changes of every active effect into snap by ascending
// priority and returns the applied changes.
func (m *Manager) ApplyTo(snap Snapshot, clock Clock) []Change {
	var changes []Change
	for _, e := range m.GetActiveEffects(clock) {
		changes = append(changes, e.Changes...)
	}
	sort.SliceStable(changes, func(i, j int) bool {
		return changes[i].Priority < changes[j].Priority
	})

	for _, c := range changes {
		ApplyChange(c, snap)
	}
	return changes
}

// Tick is an over-time change due on the current turn
type Tick struct {
	EffectID string
	Label    string
	Trigger  Trigger
	Change   Change
}

// Tick collects over-time changes due at clock. Each-round changes fire
// when the combat comes back round to the turn the effect started on. Once
// changes fire on the first tick after the effect started and are consumed.
// Expired effects still tick on the turn they run out; clear them after.
// Effects started outside the current combat are restarted at its current
// position and do not tick until the next turn.
func (m *Manager) Tick(clock Clock) []Tick {
	if clock.Combat == nil {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var ticks []Tick
	for _, e := range m.effects {
		if e.Disabled || len(e.OverTime) == 0 {
			continue
		}

		if !e.Start.In(clock.Combat) {
			e.Start.rebase(clock.Combat)
			continue
		}

		started := clock.Combat.Round > e.Start.Round ||
			(clock.Combat.Round == e.Start.Round && clock.Combat.Turn > e.Start.Turn)
		if !started {
			continue
		}

		if c, ok := e.OverTime[TriggerEachRound]; ok && clock.Combat.Turn == e.Start.Turn {
			ticks = append(ticks, Tick{EffectID: e.ID, Label: e.Label, Trigger: TriggerEachRound, Change: c})
		}
		if c, ok := e.OverTime[TriggerOnce]; ok {
			ticks = append(ticks, Tick{EffectID: e.ID, Label: e.Label, Trigger: TriggerOnce, Change: c})
			delete(e.OverTime, TriggerOnce)
		}
	}
	return ticks
}
