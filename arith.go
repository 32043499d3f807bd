package exactcalc

import (
	"errors"
	"math"
	"math/big"
)

// errInexact reports that an operation has no exact result for its operands.
// Like Overflow, it sends the operation to its floating-point fallback.
var errInexact = errors.New("exactcalc: no exact result")

// Arithmetic on Values tries the most exact representation first. Whenever
// an exact computation overflows or has no exact form, the same operation is
// recomputed on the operands' float64 projections. Only a non-finite result
// from that fallback is an error.

// Add computes x + y.
func Add(x, y Value) (Value, error) {
	if err := operands(x, y); err != nil {
		return Value{}, err
	}
	r, err := addExact(x, y)
	return fallback(r, err, x, y, func(a, b float64) float64 { return a + b })
}

// Sub computes x - y.
func Sub(x, y Value) (Value, error) {
	if err := operands(x, y); err != nil {
		return Value{}, err
	}
	r, err := subExact(x, y)
	return fallback(r, err, x, y, func(a, b float64) float64 { return a - b })
}

// Mul computes x * y.
func Mul(x, y Value) (Value, error) {
	if err := operands(x, y); err != nil {
		return Value{}, err
	}
	r, err := mulExact(x, y)
	return fallback(r, err, x, y, func(a, b float64) float64 { return a * b })
}

// Div computes x / y. The result is DivisionByZero if y is zero.
func Div(x, y Value) (Value, error) {
	if err := operands(x, y); err != nil {
		return Value{}, err
	}
	if y.isZero() {
		return Value{}, DivisionByZero
	}
	r, err := divExact(x, y)
	return fallback(r, err, x, y, func(a, b float64) float64 { return a / b })
}

// Neg computes -x.
func Neg(x Value) (Value, error) {
	return Mul(x, NewInt(-1))
}

// Pow computes x^y. The exponent must be an integer; anything else is
// InvalidExponent. Raising zero to a negative power is DivisionByZero.
func Pow(x, y Value) (Value, error) {
	if err := operands(x, y); err != nil {
		return Value{}, err
	}
	switch y.kind {
	case KindInteger:
		// ok
	case KindDouble:
		// Integral exponents can only become Doubles by overflowing, in which
		// case the result is usually out of range too.
		if y.f != math.Trunc(y.f) {
			return Value{}, InvalidExponent
		}
		return powFloat(x.Float64(), y.f)
	default:
		return Value{}, InvalidExponent
	}
	if x.kind == KindDouble {
		return powFloat(x.f, y.Float64())
	}
	r, err := powExact(x, y.i)
	if err != Overflow && err != errInexact {
		return r, err
	}
	return powFloat(x.Float64(), y.Float64())
}

// operands checks that neither operand is Empty.
func operands(x, y Value) error {
	if x.kind == KindEmpty || y.kind == KindEmpty {
		return MissingOperand
	}
	return nil
}

// fallback returns r unless err says to retry the operation in floating
// point.
func fallback(r Value, err error, x, y Value, op func(a, b float64) float64) (Value, error) {
	if err != Overflow && err != errInexact {
		return r, err
	}
	return NewDouble(op(x.Float64(), y.Float64()))
}

// sameRoot reports whether x and y are roots of the same degree and base.
func sameRoot(x, y Value) bool {
	d := x.degree()
	return d != 0 && d == y.degree() && x.base.Cmp(y.base) == 0
}

func addExact(x, y Value) (Value, error) {
	switch {
	case x.kind == KindInteger && y.kind == KindInteger:
		i, err := add(x.i, y.i)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindInteger, i: i}, nil
	case x.rational() && y.rational():
		return addfrac(x.frac(), y.frac())
	case sameRoot(x, y):
		c, err := addExact(x.coef(), y.coef())
		if err != nil {
			return Value{}, err
		}
		return withRoot(c, x.base, x.degree()), nil
	}
	return Value{}, errInexact
}

func subExact(x, y Value) (Value, error) {
	switch {
	case x.kind == KindInteger && y.kind == KindInteger:
		i, err := sub(x.i, y.i)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindInteger, i: i}, nil
	case x.rational() && y.rational():
		return subfrac(x.frac(), y.frac())
	case sameRoot(x, y):
		c, err := subExact(x.coef(), y.coef())
		if err != nil {
			return Value{}, err
		}
		return withRoot(c, x.base, x.degree()), nil
	}
	return Value{}, errInexact
}

func mulExact(x, y Value) (Value, error) {
	switch {
	case x.kind == KindDouble || y.kind == KindDouble:
		return Value{}, errInexact
	case x.kind == KindInteger && y.kind == KindInteger:
		i, err := mul(x.i, y.i)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindInteger, i: i}, nil
	case x.rational() && y.rational():
		return mulfrac(x.frac(), y.frac())
	case x.rational():
		c, err := mulExact(x, y.coef())
		if err != nil {
			return Value{}, err
		}
		return withRoot(c, y.base, y.degree()), nil
	case y.rational():
		c, err := mulExact(x.coef(), y)
		if err != nil {
			return Value{}, err
		}
		return withRoot(c, x.base, x.degree()), nil
	case x.degree() == y.degree():
		deg := x.degree()
		c, err := mulExact(x.coef(), y.coef())
		if err != nil {
			return Value{}, err
		}
		out, in, err := rootProduct(x.base, y.base, deg)
		if err != nil {
			return Value{}, err
		}
		if c, err = mulExact(c, Value{kind: KindInteger, i: out}); err != nil {
			return Value{}, err
		}
		return withRoot(c, in, deg), nil
	}
	// Square root times cube root.
	return Value{}, errInexact
}

// rootProduct reduces the root of a*b, where a and b are free of deg'th
// powers, to out * root(in).
func rootProduct(a, b *big.Int, deg int) (out, in *big.Int, err error) {
	if deg == 2 {
		// With a = g*a' and b = g*b' square-free, a'b' is square-free, so
		// sqrt(ab) = g*sqrt(a'b') without factoring.
		g := new(big.Int).GCD(nil, nil, a, b)
		a1 := new(big.Int).Quo(a, g)
		b1 := new(big.Int).Quo(b, g)
		if in, err = mul(a1, b1); err != nil {
			return nil, nil, err
		}
		return g, in, nil
	}
	p, err := mul(a, b)
	if err != nil {
		return nil, nil, err
	}
	out, in, ok := radical(p, deg)
	if !ok {
		return nil, nil, Overflow
	}
	return out, in, nil
}

func divExact(x, y Value) (Value, error) {
	if x.kind == KindDouble || y.kind == KindDouble {
		return Value{}, errInexact
	}
	r, err := recip(y)
	if err != nil {
		return Value{}, err
	}
	return mulExact(x, r)
}

// recip computes 1/y exactly. Roots have their denominators rationalized:
// 1/(c√b) = √b/(cb) and 1/(c∛b) = ∛(b²)/(cb).
func recip(y Value) (Value, error) {
	if y.rational() {
		return recipfrac(y.frac())
	}
	deg := y.degree()
	if deg == 0 {
		return Value{}, errInexact
	}
	cb, err := mulExact(y.coef(), Value{kind: KindInteger, i: y.base})
	if err != nil {
		return Value{}, err
	}
	inv, err := recip(cb)
	if err != nil {
		return Value{}, err
	}
	if deg == 2 {
		return withRoot(inv, y.base, 2), nil
	}
	out, in, err := rootProduct(y.base, y.base, 3)
	if err != nil {
		return Value{}, err
	}
	if inv, err = mulExact(inv, Value{kind: KindInteger, i: out}); err != nil {
		return Value{}, err
	}
	return withRoot(inv, in, 3), nil
}

// powExact computes x^n by squaring. Negative exponents invert x first.
func powExact(x Value, n *big.Int) (Value, error) {
	if n.Sign() < 0 {
		if x.isZero() {
			return Value{}, DivisionByZero
		}
		r, err := recip(x)
		if err != nil {
			return Value{}, err
		}
		return powExact(r, new(big.Int).Neg(n))
	}
	r := NewInt(1)
	b := x
	var err error
	for i, k := 0, n.BitLen(); i < k; i++ {
		if n.Bit(i) != 0 {
			if r, err = mulExact(r, b); err != nil {
				return Value{}, err
			}
		}
		if i+1 < k {
			if b, err = mulExact(b, b); err != nil {
				return Value{}, err
			}
		}
	}
	return r, nil
}
