package effects

import (
	"fmt"
	"math"
	"strings"
)

// DurationType is how an active effect's lifetime is measured
type DurationType string

const (
	DurationSeconds DurationType = "seconds"
	DurationTurns   DurationType = "turns"
	DurationNone    DurationType = "none"
)

// DurationSpec is the authored length of an effect. Any unset field is
// ignored; a spec with nothing set lasts until removed.
type DurationSpec struct {
	Seconds *float64 `json:"seconds,omitempty" yaml:"seconds,omitempty"`
	Rounds  *int     `json:"rounds,omitempty" yaml:"rounds,omitempty"`
	Turns   *int     `json:"turns,omitempty" yaml:"turns,omitempty"`
}

// Rounds is a convenience for round based specs
func Rounds(n int) *DurationSpec {
	return &DurationSpec{Rounds: &n}
}

// Seconds is a convenience for time based specs
func Seconds(s float64) *DurationSpec {
	return &DurationSpec{Seconds: &s}
}

// StartMarker records the clock at the moment an effect was applied
type StartMarker struct {
	WorldTime float64 `json:"worldTime"`
	CombatID  string  `json:"combatId,omitempty"`
	Round     int     `json:"round"`
	Turn      int     `json:"turn"`
}

// In reports whether the marker was taken in the combat c is running
func (m StartMarker) In(c *CombatClock) bool {
	return c != nil && m.CombatID == c.CombatID
}

// rebase moves the combat position to c, keeping the world time
func (m *StartMarker) rebase(c *CombatClock) {
	m.CombatID = c.CombatID
	m.Round = c.Round
	m.Turn = c.Turn
}

// CombatClock is the position in the active combat
type CombatClock struct {
	CombatID     string
	Round        int
	Turn         int
	TurnsInRound int
}

// Clock is the current world time and, during combat, the combat position
type Clock struct {
	WorldTime float64
	Combat    *CombatClock
}

// Mark captures clock as a start marker
func (c Clock) Mark() StartMarker {
	m := StartMarker{WorldTime: c.WorldTime}
	if c.Combat != nil {
		m.CombatID = c.Combat.CombatID
		m.Round = c.Combat.Round
		m.Turn = c.Combat.Turn
	}
	return m
}

// Descriptor is a resolved duration. Total and Remaining are nil for
// effects without a duration.
type Descriptor struct {
	Type      DurationType
	Total     *float64
	Remaining *float64
	Label     string
}

// Expired reports whether a finite duration has nothing left
func (d Descriptor) Expired() bool {
	return d.Remaining != nil && *d.Remaining <= 0
}

// ResolveDuration computes what is left of spec given when it started and
// the current clock. It holds no state, so repeated calls agree. Round and
// turn durations only count down inside the combat they were started in;
// anywhere else they report their full length.
func ResolveDuration(spec DurationSpec, start StartMarker, clock Clock) Descriptor {
	if spec.Seconds != nil && !math.IsInf(*spec.Seconds, 0) && !math.IsNaN(*spec.Seconds) {
		total := *spec.Seconds
		remaining := math.Max(total-(clock.WorldTime-start.WorldTime), 0)
		return Descriptor{
			Type:      DurationSeconds,
			Total:     &total,
			Remaining: &remaining,
			Label:     fmt.Sprintf("%d Seconds", int(math.Ceil(remaining))),
		}
	}

	rounds, turns := deref(spec.Rounds), deref(spec.Turns)
	if rounds != 0 || turns != 0 {
		var current float64
		turnsInRound := 1
		if c := clock.Combat; c != nil {
			if c.TurnsInRound > 0 {
				turnsInRound = c.TurnsInRound
			}
			current = combatTime(c.Round, c.Turn, turnsInRound)
		}

		total := combatTime(rounds, turns, turnsInRound)
		begin := combatTime(start.Round, start.Turn, turnsInRound)

		if !start.In(clock.Combat) || current <= begin {
			return Descriptor{
				Type:      DurationTurns,
				Total:     &total,
				Remaining: &total,
				Label:     turnLabel(rounds, turns),
			}
		}

		remaining := math.Max(begin+total-current, 0)
		wholeRounds := math.Floor(remaining)
		leftTurns := int(math.Round((remaining - wholeRounds) * float64(turnsInRound)))
		if leftTurns > turnsInRound-1 {
			leftTurns = turnsInRound - 1
		}

		label := turnLabel(int(wholeRounds), leftTurns)
		if remaining <= 0 {
			label = "Expired"
		}
		return Descriptor{
			Type:      DurationTurns,
			Total:     &total,
			Remaining: &remaining,
			Label:     label,
		}
	}

	return Descriptor{Type: DurationNone, Label: "∞"}
}

func combatTime(rounds, turns, turnsInRound int) float64 {
	return float64(rounds) + float64(turns)/float64(turnsInRound)
}

func turnLabel(rounds, turns int) string {
	var parts []string
	if rounds > 0 {
		parts = append(parts, plural(rounds, "Round"))
	}
	if turns > 0 {
		parts = append(parts, plural(turns, "Turn"))
	}
	if len(parts) == 0 {
		return "∞"
	}
	return strings.Join(parts, ", ")
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func deref(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}
