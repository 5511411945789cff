package effects

// Kind separates changes applied straight to a snapshot from effects that
// are handed back to be persisted as active effects.
type Kind string

const (
	KindApplyChanges      Kind = "apply-changes"
	KindApplyActiveEffect Kind = "apply-active-effect"
)

// Target selects whose stats an effect definition changes
type Target string

const (
	TargetSelf   Target = "self"
	TargetTarget Target = "target"
)

// Mode is how a change combines with the current value
type Mode string

const (
	ModeAdd       Mode = "add"
	ModeMultiply  Mode = "multiply"
	ModeDowngrade Mode = "downgrade"
	ModeUpgrade   Mode = "upgrade"
	ModeOverride  Mode = "override"
)

// Trigger is when an over-time change fires
type Trigger string

const (
	TriggerEachRound Trigger = "each-round"
	TriggerOnce      Trigger = "once"
)

// SourceKind classifies the ability or perk an effect comes from
type SourceKind string

const (
	SourceAbility  SourceKind = "ability"
	SourceWeakness SourceKind = "weakness"
	SourcePerk     SourceKind = "perk"
	SourceFlaw     SourceKind = "flaw"
)

// Sign is -1 for weaknesses and flaws
func (k SourceKind) Sign() float64 {
	if k == SourceWeakness || k == SourceFlaw {
		return -1
	}
	return 1
}

// OverTime is a change repeated while an active effect lasts
type OverTime struct {
	When     Trigger `json:"when" yaml:"when"`
	Key      string  `json:"key" yaml:"key"`
	KeyValue string  `json:"keyValue,omitempty" yaml:"keyValue,omitempty"`
	Mode     Mode    `json:"mode" yaml:"mode"`
	Value    string  `json:"value" yaml:"value"`
}

// Definition is an effect as authored on an ability or perk
type Definition struct {
	Kind     Kind          `json:"kind" yaml:"kind"`
	Target   Target        `json:"target" yaml:"target"`
	Key      string        `json:"key" yaml:"key"`
	KeyValue string        `json:"keyValue,omitempty" yaml:"keyValue,omitempty"`
	Mode     Mode          `json:"mode" yaml:"mode"`
	Value    string        `json:"value" yaml:"value"`
	Priority int           `json:"priority" yaml:"priority"`
	Duration *DurationSpec `json:"duration,omitempty" yaml:"duration,omitempty"`
	OverTime *OverTime     `json:"overTime,omitempty" yaml:"overTime,omitempty"`
}

// SourceRef identifies the ability or perk behind an effect
type SourceRef struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Kind  SourceKind     `json:"kind"`
	Level float64        `json:"level"`
	Item  map[string]any `json:"item,omitempty"`
}

// SignedLevel is the level exposed to formulas as @level
func (s SourceRef) SignedLevel() float64 {
	return s.Kind.Sign() * s.Level
}

// Flavor is the wildcard substitution used when a definition has no key value
func (s SourceRef) Flavor() string {
	if f, ok := s.Item["flavor"].(string); ok {
		return f
	}
	return ""
}

// Source is an ability or perk with its ordered effect definitions
type Source struct {
	SourceRef
	Effects []Definition
}

// Change is a resolved path change
type Change struct {
	Key      string  `json:"key"`
	Mode     Mode    `json:"mode"`
	Value    float64 `json:"value"`
	Priority int     `json:"priority"`
}
