package character

import (
	"sync"
	"time"

	"github.com/KirkDiggler/ova-combat/internal/dice"
	"github.com/KirkDiggler/ova-combat/internal/effects"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// Ability is an ability or weakness with the effects it carries while active
type Ability struct {
	ID    string             `json:"id" yaml:"id"`
	Name  string             `json:"name" yaml:"name"`
	Kind  effects.SourceKind `json:"kind" yaml:"kind"`
	Level float64            `json:"level" yaml:"level"`
	// Active abilities contribute their effects to the derived snapshot
	Active bool `json:"active" yaml:"active"`
	// Magic marks the ability that powers spells
	Magic   bool                 `json:"magic,omitempty" yaml:"magic,omitempty"`
	Flavor  string               `json:"flavor,omitempty" yaml:"flavor,omitempty"`
	Effects []effects.Definition `json:"effects,omitempty" yaml:"effects,omitempty"`
}

// Ref is the ability as an effect source
func (a *Ability) Ref() effects.SourceRef {
	return effects.SourceRef{
		ID:    a.ID,
		Name:  a.Name,
		Kind:  a.Kind,
		Level: a.Level,
		Item: map[string]any{
			"level":  a.Level,
			"flavor": a.Flavor,
			"magic":  a.Magic,
		},
	}
}

// Source is the ability with its effects, for stacking
func (a *Ability) Source() effects.Source {
	return effects.Source{SourceRef: a.Ref(), Effects: a.Effects}
}

// Character is an actor: base stats, what it can do and the effects on it
type Character struct {
	ID      string `json:"id" yaml:"id"`
	OwnerID string `json:"owner_id" yaml:"owner"`
	Name    string `json:"name" yaml:"name"`

	// Stats holds the stored values. Pools live under hp, endurance,
	// enduranceReserve and dramaDice.
	Stats effects.Snapshot `json:"stats" yaml:"stats"`

	Abilities     []*Ability              `json:"abilities,omitempty" yaml:"abilities,omitempty"`
	Attacks       []*Attack               `json:"attacks,omitempty" yaml:"attacks,omitempty"`
	Spells        []*Spell                `json:"spells,omitempty" yaml:"spells,omitempty"`
	ActiveEffects []*effects.ActiveEffect `json:"active_effects,omitempty" yaml:"-"`

	CreatedAt time.Time `json:"created_at" yaml:"-"`
	UpdatedAt time.Time `json:"updated_at" yaml:"-"`

	mu sync.Mutex
}

// New creates a character with full default pools
func New(id, ownerID, name string, hp, endurance float64) *Character {
	c := &Character{
		ID:      id,
		OwnerID: ownerID,
		Name:    name,
		Stats:   effects.Snapshot{},
	}
	c.Stats.Set(PathHP, hp)
	c.Stats.Set(PathHPMax, hp)
	c.Stats.Set(PathEndurance, endurance)
	c.Stats.Set(PathEnduranceMax, endurance)
	return c
}

func (c *Character) stats() effects.Snapshot {
	if c.Stats == nil {
		c.Stats = effects.Snapshot{}
	}
	return c.Stats
}

func (c *Character) GetAbility(id string) (*Ability, error) {
	for _, a := range c.Abilities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ovaerr.NotFoundf("ability %s not found on %s", id, c.Name).
		WithMeta("character_id", c.ID)
}

func (c *Character) GetAttack(id string) (*Attack, error) {
	for _, a := range c.Attacks {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, ovaerr.NotFoundf("attack %s not found on %s", id, c.Name).
		WithMeta("character_id", c.ID)
}

func (c *Character) GetSpell(id string) (*Spell, error) {
	for _, s := range c.Spells {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, ovaerr.NotFoundf("spell %s not found on %s", id, c.Name).
		WithMeta("character_id", c.ID)
}

// SetAbilityActive toggles whether an ability's effects apply
func (c *Character) SetAbilityActive(id string, active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	a, err := c.GetAbility(id)
	if err != nil {
		return err
	}
	a.Active = active
	return nil
}

// UpdateEffects runs fn against a manager over the character's active
// effects and keeps whatever the manager holds afterwards.
func (c *Character) UpdateEffects(fn func(m *effects.Manager) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m := effects.NewManager(c.ActiveEffects...)
	err := fn(m)
	c.ActiveEffects = m.Effects()
	return err
}

// RollInitiative rolls 2 + speed dice
func RollInitiative(roller dice.Roller, speed float64) (*dice.Roll, error) {
	return dice.RollNominal(roller, 2+int(speed))
}
