package formula

// Expression is a sum of terms
type Expression struct {
	Left *Term     `parser:"@@"`
	Rest []*OpTerm `parser:"@@*"`
}

type OpTerm struct {
	Op   string `parser:"@(\"+\" | \"-\")"`
	Term *Term  `parser:"@@"`
}

// Term is a product of unary factors
type Term struct {
	Left *Unary      `parser:"@@"`
	Rest []*OpFactor `parser:"@@*"`
}

type OpFactor struct {
	Op     string `parser:"@(\"*\" | \"/\" | \"%\")"`
	Factor *Unary `parser:"@@"`
}

type Unary struct {
	Op      string `parser:"  ( @(\"-\" | \"+\")"`
	Operand *Unary `parser:"    @@ )"`
	Power   *Power `parser:"| @@"`
}

// Power is right associative: 2 ** 3 ** 2 is 2 ** 9
type Power struct {
	Base     *Primary `parser:"@@"`
	Op       string   `parser:"( @Power"`
	Exponent *Unary   `parser:"  @@ )?"`
}

type Primary struct {
	Number *float64    `parser:"  @Number"`
	Field  *Field      `parser:"| @@"`
	Call   *Call       `parser:"| @@"`
	Const  *string     `parser:"| @Ident"`
	Group  *Expression `parser:"| \"(\" @@ \")\""`
}

// Field is an @-prefixed lookup such as @item.flavor
type Field struct {
	Path []string `parser:"\"@\" @Ident ( \".\" @Ident )*"`
}

type Call struct {
	Name string        `parser:"@Ident \"(\""`
	Args []*Expression `parser:"( @@ ( \",\" @@ )* )? \")\""`
}
