// Package command parses the chat roll commands players type, such as
// `/a 3 2` for a three dice attack with dx 2.
package command

import (
	"math"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/KirkDiggler/ova-combat/internal/dice"
	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// Kind is what a command asks for
type Kind string

const (
	KindAttack  Kind = "attack"
	KindDefense Kind = "defense"
	KindDrama   Kind = "drama"
	KindMiracle Kind = "miracle"
	KindSpell   Kind = "spell"
	KindRoll    Kind = "roll"
)

// Defaults for omitted arguments
const (
	DefaultDice      = 2
	DefaultDx        = 1.0
	DefaultDramaDice = 1
)

var chatLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Slash", Pattern: `/`},
	{Name: "Ident", Pattern: `[a-zA-Z]+`},
	{Name: "Number", Pattern: `[-+]?(?:\d+(?:\.\d*)?|\.\d+)`},
	{Name: "Whitespace", Pattern: `\s+`},
})

type line struct {
	Name string    `parser:"Slash @Ident"`
	Args []float64 `parser:"@Number*"`
}

var parser = participle.MustBuild[line](
	participle.Lexer(chatLexer),
	participle.Elide("Whitespace"),
)

// Command is a parsed chat command
type Command struct {
	Kind Kind
	// Dice is the nominal dice count
	Dice int
	Dx   float64
	DN   int
}

type spec struct {
	kind    Kind
	maxArgs int
	minArgs int
}

var commands = map[string]spec{
	"a":       {kind: KindAttack, maxArgs: 2},
	"attack":  {kind: KindAttack, maxArgs: 2},
	"d":       {kind: KindDefense, maxArgs: 1},
	"defense": {kind: KindDefense, maxArgs: 1},
	"drama":   {kind: KindDrama, maxArgs: 1},
	"miracle": {kind: KindMiracle},
	"spell":   {kind: KindSpell, minArgs: 2, maxArgs: 2},
	"r":       {kind: KindRoll, maxArgs: 1},
	"roll":    {kind: KindRoll, maxArgs: 1},
}

// IsCommand reports whether text looks like a chat command
func IsCommand(text string) bool {
	return strings.HasPrefix(strings.TrimSpace(text), "/")
}

// Parse reads one chat command
func Parse(text string) (*Command, error) {
	parsed, err := parser.ParseString("", strings.TrimSpace(text))
	if err != nil {
		return nil, ovaerr.InvalidArgumentf("could not read %q: %v", text, err)
	}

	name := strings.ToLower(parsed.Name)
	s, ok := commands[name]
	if !ok {
		return nil, ovaerr.InvalidArgumentf("unknown command /%s", parsed.Name).
			WithMeta("command", name)
	}
	if len(parsed.Args) < s.minArgs || len(parsed.Args) > s.maxArgs {
		return nil, ovaerr.InvalidArgumentf("/%s takes %d to %d arguments, got %d",
			name, s.minArgs, s.maxArgs, len(parsed.Args)).
			WithMeta("command", name)
	}

	cmd := &Command{Kind: s.kind, Dice: DefaultDice, Dx: DefaultDx}
	args := parsed.Args

	switch s.kind {
	case KindAttack:
		if len(args) > 1 {
			cmd.Dx = args[1]
		}
	case KindDrama:
		cmd.Dice = DefaultDramaDice
	case KindMiracle:
		cmd.Dice = dice.MaxFace
	case KindSpell:
		dn, err := whole(args[1], "dn")
		if err != nil {
			return nil, err
		}
		cmd.DN = dn
	}

	if len(args) > 0 {
		n, err := whole(args[0], "dice")
		if err != nil {
			return nil, err
		}
		cmd.Dice = n
	}
	if s.kind == KindDrama && cmd.Dice < 1 {
		return nil, ovaerr.InvalidArgumentf("/drama needs at least one die")
	}

	return cmd, nil
}

func whole(v float64, name string) (int, error) {
	if v != math.Trunc(v) {
		return 0, ovaerr.InvalidArgumentf("%s must be a whole number, got %v", name, v)
	}
	return int(v), nil
}
