package effects

// Builder assembles effect definitions
type Builder struct {
	def Definition
}

// NewBuilder starts a self-targeted additive definition of the given kind
func NewBuilder(kind Kind) *Builder {
	return &Builder{
		def: Definition{
			Kind:   kind,
			Target: TargetSelf,
			Mode:   ModeAdd,
		},
	}
}

// Changes starts an apply-changes definition
func Changes(key, value string) *Builder {
	return NewBuilder(KindApplyChanges).WithKey(key, "").WithValue(value)
}

// Active starts an apply-active-effect definition aimed at the target
func Active(key, value string) *Builder {
	return NewBuilder(KindApplyActiveEffect).WithTarget(TargetTarget).WithKey(key, "").WithValue(value)
}

func (b *Builder) WithTarget(target Target) *Builder {
	b.def.Target = target
	return b
}

// WithKey sets the key and the wildcard substitution
func (b *Builder) WithKey(key, keyValue string) *Builder {
	b.def.Key = key
	b.def.KeyValue = keyValue
	return b
}

func (b *Builder) WithMode(mode Mode) *Builder {
	b.def.Mode = mode
	return b
}

func (b *Builder) WithValue(expr string) *Builder {
	b.def.Value = expr
	return b
}

func (b *Builder) WithPriority(priority int) *Builder {
	b.def.Priority = priority
	return b
}

func (b *Builder) ForRounds(rounds int) *Builder {
	b.def.Duration = Rounds(rounds)
	return b
}

func (b *Builder) ForSeconds(seconds float64) *Builder {
	b.def.Duration = Seconds(seconds)
	return b
}

// WithOverTime adds a repeating change
func (b *Builder) WithOverTime(when Trigger, key string, mode Mode, value string) *Builder {
	b.def.OverTime = &OverTime{
		When:  when,
		Key:   key,
		Mode:  mode,
		Value: value,
	}
	return b
}

// Build returns a copy of the definition
func (b *Builder) Build() Definition {
	def := b.def
	if b.def.OverTime != nil {
		ot := *b.def.OverTime
		def.OverTime = &ot
	}
	return def
}
