package formula

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Lexer tokenizes effect formulas such as `2 * @level + max(@armor, 1)`.
var Lexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `(?:\d+(?:\.\d*)?|\.\d+)(?:[eE][+-]?\d+)?`},
	{Name: "Ident", Pattern: `[a-zA-Z_]\w*`},
	{Name: "Power", Pattern: `\*\*|\^`},
	{Name: "Punct", Pattern: `[-+*/%(),.@]`},
	{Name: "Whitespace", Pattern: `\s+`},
})

func build() *participle.Parser[Expression] {
	return participle.MustBuild[Expression](
		participle.Lexer(Lexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
}
