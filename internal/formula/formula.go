// Package formula evaluates effect value expressions. Expressions are parsed
// into an AST and evaluated against an explicit Scope, so a formula can only
// read the @-paths it is handed and call the math functions listed here.
package formula

import (
	"math"
	"strings"
	"sync"

	"github.com/alecthomas/participle/v2"

	ovaerr "github.com/KirkDiggler/ova-combat/internal/errors"
)

// Evaluator parses and caches formulas
type Evaluator struct {
	parser *participle.Parser[Expression]

	mu    sync.RWMutex
	cache map[string]*Expression
}

func NewEvaluator() *Evaluator {
	return &Evaluator{
		parser: build(),
		cache:  make(map[string]*Expression),
	}
}

var defaultEvaluator = NewEvaluator()

// Evaluate runs expr against scope with the package evaluator
func Evaluate(expr string, scope Scope) (float64, error) {
	return defaultEvaluator.Evaluate(expr, scope)
}

// Compile parses expr, reusing an earlier parse of the same text
func (e *Evaluator) Compile(expr string) (*Expression, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ovaerr.InvalidExpressionf("empty expression")
	}

	e.mu.RLock()
	ast, ok := e.cache[expr]
	e.mu.RUnlock()
	if ok {
		return ast, nil
	}

	ast, err := e.parser.ParseString("", expr)
	if err != nil {
		return nil, ovaerr.WrapWithCode(err, ovaerr.CodeInvalidExpression, "failed to parse expression").
			WithMeta("expression", expr)
	}

	e.mu.Lock()
	e.cache[expr] = ast
	e.mu.Unlock()

	return ast, nil
}

// Evaluate parses expr and evaluates it against scope. A result that is not
// a finite number is an error.
func (e *Evaluator) Evaluate(expr string, scope Scope) (float64, error) {
	ast, err := e.Compile(expr)
	if err != nil {
		return 0, err
	}

	v, err := ast.Eval(scope)
	if err != nil {
		return 0, ovaerr.Wrap(err, "failed to evaluate expression").WithMeta("expression", expr)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ovaerr.InvalidExpressionf("expression %q is not a finite number", expr).
			WithMeta("expression", expr)
	}
	return v, nil
}

// Eval evaluates the parsed expression
func (x *Expression) Eval(scope Scope) (float64, error) {
	out, err := x.Left.eval(scope)
	if err != nil {
		return 0, err
	}
	for _, r := range x.Rest {
		v, err := r.Term.eval(scope)
		if err != nil {
			return 0, err
		}
		if r.Op == "+" {
			out += v
		} else {
			out -= v
		}
	}
	return out, nil
}

func (t *Term) eval(scope Scope) (float64, error) {
	out, err := t.Left.eval(scope)
	if err != nil {
		return 0, err
	}
	for _, r := range t.Rest {
		v, err := r.Factor.eval(scope)
		if err != nil {
			return 0, err
		}
		switch r.Op {
		case "*":
			out *= v
		case "/":
			out /= v
		case "%":
			out = math.Mod(out, v)
		}
	}
	return out, nil
}

func (u *Unary) eval(scope Scope) (float64, error) {
	if u.Operand != nil {
		v, err := u.Operand.eval(scope)
		if err != nil {
			return 0, err
		}
		if u.Op == "-" {
			return -v, nil
		}
		return v, nil
	}
	return u.Power.eval(scope)
}

func (p *Power) eval(scope Scope) (float64, error) {
	base, err := p.Base.eval(scope)
	if err != nil {
		return 0, err
	}
	if p.Exponent == nil {
		return base, nil
	}
	exp, err := p.Exponent.eval(scope)
	if err != nil {
		return 0, err
	}
	return math.Pow(base, exp), nil
}

func (p *Primary) eval(scope Scope) (float64, error) {
	switch {
	case p.Number != nil:
		return *p.Number, nil
	case p.Field != nil:
		return p.Field.eval(scope)
	case p.Call != nil:
		return p.Call.eval(scope)
	case p.Const != nil:
		c, ok := constants[*p.Const]
		if !ok {
			return 0, ovaerr.InvalidExpressionf("unknown name %q", *p.Const)
		}
		return c, nil
	case p.Group != nil:
		return p.Group.Eval(scope)
	}
	return 0, ovaerr.InvalidExpressionf("empty operand")
}

func (f *Field) eval(scope Scope) (float64, error) {
	name := "@" + strings.Join(f.Path, ".")
	if scope == nil {
		return 0, ovaerr.InvalidExpressionf("%s is not defined", name)
	}
	raw, ok := scope.Lookup(f.Path)
	if !ok {
		return 0, ovaerr.InvalidExpressionf("%s is not defined", name)
	}
	v, ok := ToNumber(raw)
	if !ok {
		return 0, ovaerr.InvalidExpressionf("%s is not a number", name)
	}
	return v, nil
}

func (c *Call) eval(scope Scope) (float64, error) {
	fn, ok := functions[c.Name]
	if !ok {
		return 0, ovaerr.InvalidExpressionf("unknown function %q", c.Name)
	}
	if len(c.Args) < fn.minArgs || (fn.maxArgs >= 0 && len(c.Args) > fn.maxArgs) {
		return 0, ovaerr.InvalidExpressionf("wrong number of arguments for %s: %d", c.Name, len(c.Args))
	}

	args := make([]float64, len(c.Args))
	for i, a := range c.Args {
		v, err := a.Eval(scope)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return fn.fn(args), nil
}
