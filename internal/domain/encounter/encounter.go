package encounter

import (
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/ova-combat/internal/effects"
)

// Status represents the current state of an encounter
type Status string

const (
	StatusSetup     Status = "setup"     // Adding combatants
	StatusRolling   Status = "rolling"   // Initiative rolled, not started
	StatusActive    Status = "active"    // Combat in progress
	StatusCompleted Status = "completed" // Encounter finished
)

// maxLogEntries bounds the combat log
const maxLogEntries = 20

// Combatant is a character taking part in an encounter
type Combatant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CharacterID string `json:"character_id"`
	Initiative  int    `json:"initiative"`
	IsActive    bool   `json:"is_active"` // Still in combat
	HasActed    bool   `json:"has_acted"` // Has taken turn this round
}

// Encounter is a combat: its combatants, turn order and round/turn clock
type Encounter struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	Status     Status                `json:"status"`
	Round      int                   `json:"round"` // Current round number
	Turn       int                   `json:"turn"`  // Current turn index
	Combatants map[string]*Combatant `json:"combatants"`
	TurnOrder  []string              `json:"turn_order"` // Ordered list of combatant IDs
	CreatedAt  time.Time             `json:"created_at"`
	StartedAt  *time.Time            `json:"started_at"`
	EndedAt    *time.Time            `json:"ended_at"`
	CreatedBy  string                `json:"created_by"`
	CombatLog  []string              `json:"combat_log"`
}

// NewEncounter creates a new encounter
func NewEncounter(id, name, createdBy string) *Encounter {
	return &Encounter{
		ID:         id,
		Name:       name,
		Status:     StatusSetup,
		Combatants: make(map[string]*Combatant),
		TurnOrder:  []string{},
		CreatedAt:  time.Now(),
		CreatedBy:  createdBy,
		CombatLog:  []string{},
	}
}

// AddCombatant adds a combatant at the end of the turn order
func (e *Encounter) AddCombatant(c *Combatant) {
	if _, exists := e.Combatants[c.ID]; !exists {
		e.TurnOrder = append(e.TurnOrder, c.ID)
	}
	c.IsActive = true
	e.Combatants[c.ID] = c
}

// RemoveCombatant removes a combatant from the encounter
func (e *Encounter) RemoveCombatant(id string) {
	delete(e.Combatants, id)
	newOrder := []string{}
	for i, cid := range e.TurnOrder {
		if cid == id {
			if i < e.Turn {
				e.Turn--
			}
			continue
		}
		newOrder = append(newOrder, cid)
	}
	e.TurnOrder = newOrder
}

// CombatantByCharacter finds the combatant playing a character
func (e *Encounter) CombatantByCharacter(characterID string) *Combatant {
	for _, id := range e.TurnOrder {
		if c := e.Combatants[id]; c != nil && c.CharacterID == characterID {
			return c
		}
	}
	return nil
}

// SortTurnOrder orders combatants by initiative, highest first. Ties keep
// the order combatants joined in.
func (e *Encounter) SortTurnOrder() {
	sort.SliceStable(e.TurnOrder, func(i, j int) bool {
		return e.Combatants[e.TurnOrder[i]].Initiative > e.Combatants[e.TurnOrder[j]].Initiative
	})
	e.Status = StatusRolling
}

// Start begins round one
func (e *Encounter) Start() bool {
	if e.Status != StatusRolling || len(e.TurnOrder) == 0 {
		return false
	}

	now := time.Now()
	e.Status = StatusActive
	e.StartedAt = &now
	e.Round = 1
	e.Turn = 0
	e.skipInactive()
	return true
}

// NextTurn advances to the next active combatant, starting a new round when
// the turn order wraps. It reports whether a new round began.
func (e *Encounter) NextTurn() bool {
	if e.Status != StatusActive {
		return false
	}

	if current := e.GetCurrentCombatant(); current != nil {
		current.HasActed = true
	}

	e.Turn++
	e.skipInactive()
	if e.Turn < len(e.TurnOrder) {
		return false
	}

	e.Round++
	e.Turn = 0
	for _, c := range e.Combatants {
		c.HasActed = false
	}
	e.skipInactive()
	return true
}

func (e *Encounter) skipInactive() {
	for e.Turn < len(e.TurnOrder) {
		if c, exists := e.Combatants[e.TurnOrder[e.Turn]]; exists && c.IsActive {
			return
		}
		e.Turn++
	}
}

// GetCurrentCombatant returns the combatant whose turn it is
func (e *Encounter) GetCurrentCombatant() *Combatant {
	if e.Status != StatusActive || e.Turn >= len(e.TurnOrder) {
		return nil
	}
	return e.Combatants[e.TurnOrder[e.Turn]]
}

// End concludes the encounter
func (e *Encounter) End() {
	now := time.Now()
	e.Status = StatusCompleted
	e.EndedAt = &now
}

// Clock is the combat position for duration resolution. It is nil unless
// the encounter is running.
func (e *Encounter) Clock() *effects.CombatClock {
	if e.Status != StatusActive {
		return nil
	}
	return &effects.CombatClock{
		CombatID:     e.ID,
		Round:        e.Round,
		Turn:         e.Turn,
		TurnsInRound: len(e.TurnOrder),
	}
}

// AddCombatLogEntry adds an entry to the combat log
func (e *Encounter) AddCombatLogEntry(entry string) {
	e.CombatLog = append(e.CombatLog, fmt.Sprintf("Round %d: %s", e.Round, entry))
	if len(e.CombatLog) > maxLogEntries {
		e.CombatLog = e.CombatLog[len(e.CombatLog)-maxLogEntries:]
	}
}
