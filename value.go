package exactcalc

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the representation of a Value.
type Kind int8

const (
	// KindEmpty is the zero Value. It is never the result of a computation.
	KindEmpty Kind = iota
	// KindInteger is an exact integer.
	KindInteger
	// KindFraction is an exact non-integer rational, int + num/den.
	KindFraction
	// KindSquareRootInt is mul * sqrt(base) with an integer mul.
	KindSquareRootInt
	// KindSquareRootFrac is mul * sqrt(base) with a fractional mul.
	KindSquareRootFrac
	// KindCubeRootInt is mul * cbrt(base) with an integer mul.
	KindCubeRootInt
	// KindCubeRootFrac is mul * cbrt(base) with a fractional mul.
	KindCubeRootFrac
	// KindDouble is an inexact finite float64.
	KindDouble
)

var kindnames = [...]string{
	KindEmpty:          "Empty",
	KindInteger:        "Integer",
	KindFraction:       "Fraction",
	KindSquareRootInt:  "SquareRootInt",
	KindSquareRootFrac: "SquareRootFrac",
	KindCubeRootInt:    "CubeRootInt",
	KindCubeRootFrac:   "CubeRootFrac",
	KindDouble:         "Double",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindnames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindnames[k]
}

// Value is the result of evaluating an expression or any part of one. Values
// are immutable; the zero Value is Empty.
//
// Fractions are kept in floor form: 0 < num < den and gcd(num, den) = 1, so
// -1/3 is -1 + 2/3. The coefficient of a root is itself an Integer or a
// Fraction in the same form, and the base of a square (cube) root is always
// greater than 1 and square-free (cube-free).
type Value struct {
	kind Kind
	// i is the integer, the integer part of a fraction, or the integer part
	// of a root's coefficient.
	i *big.Int
	// n and d are the fractional part of a Fraction or of a root's
	// coefficient. Both are nil for integral kinds.
	n, d *big.Int
	// base is the radicand of a root.
	base *big.Int
	// f is the value of a Double.
	f float64
}

// NewInt creates an Integer Value.
func NewInt(x int64) Value {
	return Value{kind: KindInteger, i: big.NewInt(x)}
}

// NewBigInt creates an Integer Value. The result is Overflow if x does not
// fit in 128 bits.
func NewBigInt(x *big.Int) (Value, error) {
	if !inRange(x) {
		return Value{}, Overflow
	}
	return Value{kind: KindInteger, i: new(big.Int).Set(x)}, nil
}

// NewFraction creates the exact value i + num/den. The result is an Integer
// if the fractional part reduces to zero. Errors are DivisionByZero if den is
// zero and Overflow if any part does not fit in 128 bits.
func NewFraction(i, num, den *big.Int) (Value, error) {
	if !inRange(i) || !inRange(num) || !inRange(den) {
		return Value{}, Overflow
	}
	f := frac{
		i: new(big.Int).Set(i),
		n: new(big.Int).Set(num),
		d: new(big.Int).Set(den),
	}
	return f.value()
}

// NewDouble creates a Double Value. The result is DoubleOverflow if f is not
// finite.
func NewDouble(f float64) (Value, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return Value{}, DoubleOverflow
	}
	return Value{kind: KindDouble, f: f}, nil
}

// Kind returns the representation of v.
func (v Value) Kind() Kind {
	return v.kind
}

// IsEmpty reports whether v is the zero Value.
func (v Value) IsEmpty() bool {
	return v.kind == KindEmpty
}

// IsExact reports whether v is an exact value.
func (v Value) IsExact() bool {
	return v.kind != KindEmpty && v.kind != KindDouble
}

// Int returns the value of an Integer, the integer part of a Fraction, or the
// integer part of a root's coefficient. It returns nil for other kinds.
func (v Value) Int() *big.Int {
	if v.i == nil {
		return nil
	}
	return new(big.Int).Set(v.i)
}

// Frac returns the fractional part of a Fraction or of a root's coefficient.
// Both results are nil for kinds without one.
func (v Value) Frac() (num, den *big.Int) {
	if v.n == nil {
		return nil, nil
	}
	return new(big.Int).Set(v.n), new(big.Int).Set(v.d)
}

// Root returns the coefficient and base of a root Value along with the
// degree of the root, 2 or 3. The degree is 0 for non-roots.
func (v Value) Root() (mul Value, base *big.Int, degree int) {
	deg := v.degree()
	if deg == 0 {
		return Value{}, nil, 0
	}
	return v.coef(), new(big.Int).Set(v.base), deg
}

// Float64 returns the nearest float64 to v. Empty Values give NaN.
func (v Value) Float64() float64 {
	switch v.kind {
	case KindInteger:
		f, _ := new(big.Float).SetInt(v.i).Float64()
		return f
	case KindFraction:
		num, den := v.ratio()
		f, _ := new(big.Rat).SetFrac(num, den).Float64()
		return f
	case KindSquareRootInt, KindSquareRootFrac:
		b, _ := new(big.Float).SetInt(v.base).Float64()
		return v.coef().Float64() * math.Sqrt(b)
	case KindCubeRootInt, KindCubeRootFrac:
		b, _ := new(big.Float).SetInt(v.base).Float64()
		return v.coef().Float64() * math.Cbrt(b)
	case KindDouble:
		return v.f
	default:
		return math.NaN()
	}
}

// Equal reports whether v and w have the same representation and value.
// Doubles compare with ==.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindEmpty:
		return true
	case KindDouble:
		return v.f == w.f
	}
	if v.i.Cmp(w.i) != 0 {
		return false
	}
	if v.n != nil && (v.n.Cmp(w.n) != 0 || v.d.Cmp(w.d) != 0) {
		return false
	}
	if v.base != nil && v.base.Cmp(w.base) != 0 {
		return false
	}
	return true
}

// String formats v. Fractions are written improper, e.g. "-1/3", and roots
// with their coefficient in front, e.g. "2√3" or "(1/2)∛5".
func (v Value) String() string {
	switch v.kind {
	case KindEmpty:
		return "<empty>"
	case KindInteger:
		return v.i.String()
	case KindFraction:
		num, den := v.ratio()
		return num.String() + "/" + den.String()
	case KindDouble:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	}
	var b strings.Builder
	c := v.coef()
	switch {
	case c.kind == KindFraction:
		b.WriteByte('(')
		b.WriteString(c.String())
		b.WriteByte(')')
	case c.i.Cmp(bigOne) == 0:
		// no coefficient
	case c.i.Cmp(big.NewInt(-1)) == 0:
		b.WriteByte('-')
	default:
		b.WriteString(c.i.String())
	}
	if v.degree() == 2 {
		b.WriteString("√")
	} else {
		b.WriteString("∛")
	}
	b.WriteString(v.base.String())
	return b.String()
}

// rational reports whether v is an Integer or Fraction.
func (v Value) rational() bool {
	return v.kind == KindInteger || v.kind == KindFraction
}

// isZero reports whether v is exactly zero. Only Integers and Doubles can be.
func (v Value) isZero() bool {
	switch v.kind {
	case KindInteger:
		return v.i.Sign() == 0
	case KindDouble:
		return v.f == 0
	default:
		return false
	}
}

// sign returns the sign of v.
func (v Value) sign() int {
	switch v.kind {
	case KindEmpty:
		return 0
	case KindDouble:
		switch {
		case v.f < 0:
			return -1
		case v.f > 0:
			return 1
		}
		return 0
	}
	// With 0 < n < d, the sign of i + n/d is the sign of i unless i is 0.
	if s := v.i.Sign(); s != 0 {
		return s
	}
	if v.n != nil {
		return 1
	}
	return 0
}

// frac returns the rational part of v: the value of an Integer or Fraction, or
// the coefficient of a root.
func (v Value) frac() frac {
	if v.n == nil {
		return intfrac(v.i)
	}
	return frac{i: v.i, n: v.n, d: v.d}
}

// ratio returns the rational part of v as a single improper fraction. This is
// used for display and projection, so it is not range-checked.
func (v Value) ratio() (num, den *big.Int) {
	if v.n == nil {
		return v.i, bigOne
	}
	num = new(big.Int).Mul(v.i, v.d)
	num.Add(num, v.n)
	return num, v.d
}

// coef returns the coefficient of a root, or v itself if v is rational.
func (v Value) coef() Value {
	if v.n == nil {
		return Value{kind: KindInteger, i: v.i}
	}
	return Value{kind: KindFraction, i: v.i, n: v.n, d: v.d}
}

// degree returns 2 for square roots, 3 for cube roots, and 0 otherwise.
func (v Value) degree() int {
	switch v.kind {
	case KindSquareRootInt, KindSquareRootFrac:
		return 2
	case KindCubeRootInt, KindCubeRootFrac:
		return 3
	default:
		return 0
	}
}

// withRoot creates c * base^(1/deg). c must be rational, and base must be
// positive and free of deg'th powers.
func withRoot(c Value, base *big.Int, deg int) Value {
	if c.isZero() || base.Cmp(bigOne) == 0 {
		return c
	}
	r := Value{i: c.i, n: c.n, d: c.d, base: base}
	switch {
	case deg == 2 && c.kind == KindInteger:
		r.kind = KindSquareRootInt
	case deg == 2:
		r.kind = KindSquareRootFrac
	case c.kind == KindInteger:
		r.kind = KindCubeRootInt
	default:
		r.kind = KindCubeRootFrac
	}
	return r
}
