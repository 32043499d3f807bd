package exactcalc

import "strconv"

// Func is one of the named functions of the expression syntax. Each function
// is a power with a fixed exponent: 1/2, 1/3, 2, or 3.
type Func int8

const (
	funcNone Func = iota
	// FuncSqrt is sqrt(x), x^(1/2).
	FuncSqrt
	// FuncCbrt is cbrt(x), x^(1/3).
	FuncCbrt
	// FuncSquare is square(x), x^2.
	FuncSquare
	// FuncCube is cube(x), x^3.
	FuncCube
)

func (f Func) String() string {
	switch f {
	case FuncSqrt:
		return "sqrt"
	case FuncCbrt:
		return "cbrt"
	case FuncSquare:
		return "square"
	case FuncCube:
		return "cube"
	default:
		return "Func(" + strconv.Itoa(int(f)) + ")"
	}
}

// Call applies the function to x.
func (f Func) Call(x Value) (Value, error) {
	switch f {
	case FuncSqrt:
		return Sqrt(x)
	case FuncCbrt:
		return Cbrt(x)
	case FuncSquare:
		return Pow(x, NewInt(2))
	case FuncCube:
		return Pow(x, NewInt(3))
	default:
		return Value{}, Internal
	}
}

// token returns the token kind that names the function.
func (f Func) token() TokenKind {
	switch f {
	case FuncSqrt:
		return TokenSqrt
	case FuncCbrt:
		return TokenCbrt
	case FuncSquare:
		return TokenSquare
	case FuncCube:
		return TokenCube
	default:
		return tokenNone
	}
}
