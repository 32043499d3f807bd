package exactcalc

import "math/big"

// frac is the value i + n/d. A frac fresh out of arithmetic may be
// unnormalized; normalize brings it to the form stored in a Value.
type frac struct {
	i, n, d *big.Int
}

// intfrac converts an integer to a frac with no fractional part.
func intfrac(i *big.Int) frac {
	return frac{i: i, n: bigZero, d: bigOne}
}

// normalize reduces f so that 0 < n < d and gcd(n, d) = 1, carrying whole
// multiples of d into i.
//
// If nothing remains of the fractional part, the error is InvalidFraction and
// the returned frac holds the integer value in i with n = 0 and d = 1; the
// caller should use that integer instead. If any part of the result leaves the
// 128-bit range, the error is Overflow. A zero denominator is DivisionByZero.
func (f frac) normalize() (frac, error) {
	if f.d.Sign() == 0 {
		return frac{}, DivisionByZero
	}
	n, d := f.n, f.d
	if d.Sign() < 0 {
		var err error
		if n, err = neg(n); err != nil {
			return frac{}, err
		}
		if d, err = neg(d); err != nil {
			return frac{}, err
		}
	}
	g := new(big.Int).GCD(nil, nil, n, d)
	if g.Cmp(bigOne) != 0 {
		n = new(big.Int).Quo(n, g)
		d = new(big.Int).Quo(d, g)
	}
	// DivMod is Euclidean, so the remainder is never negative.
	q, m := new(big.Int).DivMod(n, d, new(big.Int))
	i, err := add(f.i, q)
	if err != nil {
		return frac{}, err
	}
	if m.Sign() == 0 {
		return intfrac(i), InvalidFraction
	}
	return frac{i: i, n: m, d: d}, nil
}

// value normalizes f and converts it to an Integer or Fraction Value.
func (f frac) value() (Value, error) {
	r, err := f.normalize()
	switch err {
	case nil:
		return Value{kind: KindFraction, i: r.i, n: r.n, d: r.d}, nil
	case InvalidFraction:
		return Value{kind: KindInteger, i: r.i}, nil
	default:
		return Value{}, err
	}
}

// improper returns the numerator and denominator of f as a single fraction,
// i*d + n over d.
func (f frac) improper() (num, den *big.Int, err error) {
	p, err := mul(f.i, f.d)
	if err != nil {
		return nil, nil, err
	}
	if p, err = add(p, f.n); err != nil {
		return nil, nil, err
	}
	return p, f.d, nil
}

func addfrac(x, y frac) (Value, error) {
	i, err := add(x.i, y.i)
	if err != nil {
		return Value{}, err
	}
	a, err := mul(x.n, y.d)
	if err != nil {
		return Value{}, err
	}
	b, err := mul(y.n, x.d)
	if err != nil {
		return Value{}, err
	}
	n, err := add(a, b)
	if err != nil {
		return Value{}, err
	}
	d, err := mul(x.d, y.d)
	if err != nil {
		return Value{}, err
	}
	return frac{i: i, n: n, d: d}.value()
}

func subfrac(x, y frac) (Value, error) {
	i, err := sub(x.i, y.i)
	if err != nil {
		return Value{}, err
	}
	a, err := mul(x.n, y.d)
	if err != nil {
		return Value{}, err
	}
	b, err := mul(y.n, x.d)
	if err != nil {
		return Value{}, err
	}
	n, err := sub(a, b)
	if err != nil {
		return Value{}, err
	}
	d, err := mul(x.d, y.d)
	if err != nil {
		return Value{}, err
	}
	return frac{i: i, n: n, d: d}.value()
}

// mulfrac computes (xi + xn/xd)(yi + yn/yd)
// = xi*yi + (xi*yn*xd + yi*xn*yd + xn*yn) / (xd*yd).
func mulfrac(x, y frac) (Value, error) {
	i, err := mul(x.i, y.i)
	if err != nil {
		return Value{}, err
	}
	a, err := mul(x.i, y.n)
	if err != nil {
		return Value{}, err
	}
	if a, err = mul(a, x.d); err != nil {
		return Value{}, err
	}
	b, err := mul(y.i, x.n)
	if err != nil {
		return Value{}, err
	}
	if b, err = mul(b, y.d); err != nil {
		return Value{}, err
	}
	c, err := mul(x.n, y.n)
	if err != nil {
		return Value{}, err
	}
	n, err := add(a, b)
	if err != nil {
		return Value{}, err
	}
	if n, err = add(n, c); err != nil {
		return Value{}, err
	}
	d, err := mul(x.d, y.d)
	if err != nil {
		return Value{}, err
	}
	return frac{i: i, n: n, d: d}.value()
}

// recipfrac computes 1/x. x must not be zero.
func recipfrac(x frac) (Value, error) {
	num, den, err := x.improper()
	if err != nil {
		return Value{}, err
	}
	if num.Sign() == 0 {
		return Value{}, DivisionByZero
	}
	return frac{i: bigZero, n: den, d: num}.value()
}
