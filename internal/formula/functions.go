package formula

import (
	"math"
)

type function struct {
	minArgs int
	// maxArgs of -1 accepts any number of arguments
	maxArgs int
	fn      func(args []float64) float64
}

func unary(fn func(float64) float64) function {
	return function{minArgs: 1, maxArgs: 1, fn: func(args []float64) float64 { return fn(args[0]) }}
}

func binary(fn func(float64, float64) float64) function {
	return function{minArgs: 2, maxArgs: 2, fn: func(args []float64) float64 { return fn(args[0], args[1]) }}
}

var functions = map[string]function{
	"abs":   unary(math.Abs),
	"ceil":  unary(math.Ceil),
	"floor": unary(math.Floor),
	"round": unary(func(x float64) float64 { return math.Floor(x + 0.5) }),
	"trunc": unary(math.Trunc),
	"sign": unary(func(x float64) float64 {
		switch {
		case x > 0:
			return 1
		case x < 0:
			return -1
		}
		return x
	}),
	"sqrt":  unary(math.Sqrt),
	"cbrt":  unary(math.Cbrt),
	"exp":   unary(math.Exp),
	"log":   unary(math.Log),
	"log2":  unary(math.Log2),
	"log10": unary(math.Log10),
	"sin":   unary(math.Sin),
	"cos":   unary(math.Cos),
	"tan":   unary(math.Tan),
	"pow":   binary(math.Pow),
	"min": {minArgs: 1, maxArgs: -1, fn: func(args []float64) float64 {
		out := args[0]
		for _, a := range args[1:] {
			out = math.Min(out, a)
		}
		return out
	}},
	"max": {minArgs: 1, maxArgs: -1, fn: func(args []float64) float64 {
		out := args[0]
		for _, a := range args[1:] {
			out = math.Max(out, a)
		}
		return out
	}},
	"hypot": binary(math.Hypot),
	"clamp": {minArgs: 3, maxArgs: 3, fn: func(args []float64) float64 {
		return math.Min(math.Max(args[0], args[1]), args[2])
	}},
}

var constants = map[string]float64{
	"pi": math.Pi,
	"PI": math.Pi,
	"e":  math.E,
	"E":  math.E,
}
