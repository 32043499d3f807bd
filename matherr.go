package exactcalc

import "strconv"

// MathError is the kind of a failure to compute a result. MathError values are
// themselves errors; positional errors from parsing unwrap to them, so callers
// can use errors.Is(err, exactcalc.UnmatchedBracket) regardless of where the
// failure was detected.
type MathError int8

const (
	// None is the absence of an error. It is never returned as an error.
	None MathError = iota
	// Overflow means an exact integer computation left the 128-bit range.
	// Arithmetic retries such computations in floating point, so Overflow is
	// not normally returned from the package's entry points.
	Overflow
	// DoubleOverflow means that the floating-point fallback of a computation,
	// or a literal, is too large for a float64.
	DoubleOverflow
	// InvalidFraction signals that normalizing a fraction left no fractional
	// part, i.e. the value is an integer. It is resolved internally.
	InvalidFraction
	// InvalidDecimalPoint means a numeric literal has more than one decimal
	// point or a decimal point with no digits.
	InvalidDecimalPoint
	// UnknownOperator means the input contains a character or name that is
	// not part of the expression syntax.
	UnknownOperator
	// UnmatchedBracket means a close bracket has no open bracket or an open
	// bracket is never closed.
	UnmatchedBracket
	// DivisionByZero means a divisor is exactly zero, including raising zero
	// to a negative power.
	DivisionByZero
	// MissingOperand means an operator or function is missing an operand, or
	// the expression or a bracketed subexpression is empty.
	MissingOperand
	// MissingOperator means two operands are adjacent with no operator
	// between them.
	MissingOperator
	// NegativeRoot means a square root of a negative value was requested.
	NegativeRoot
	// InvalidExponent means the exponent of ^ is not an integer.
	InvalidExponent
	// Internal means an internal invariant was violated.
	Internal
)

var matherrText = [...]string{
	None:                "no error",
	Overflow:            "integer overflow",
	DoubleOverflow:      "floating-point overflow",
	InvalidFraction:     "fraction is an integer",
	InvalidDecimalPoint: "invalid decimal point",
	UnknownOperator:     "unknown operator",
	UnmatchedBracket:    "unmatched bracket",
	DivisionByZero:      "division by zero",
	MissingOperand:      "missing operand",
	MissingOperator:     "missing operator",
	NegativeRoot:        "square root of negative number",
	InvalidExponent:     "exponent is not an integer",
	Internal:            "internal error",
}

func (e MathError) Error() string {
	if e < 0 || int(e) >= len(matherrText) {
		return "math error " + strconv.Itoa(int(e))
	}
	return matherrText[e]
}

// String returns the same text as Error.
func (e MathError) String() string {
	return e.Error()
}
