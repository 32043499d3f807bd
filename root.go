package exactcalc

import (
	"math"
	"math/big"
)

// trialLimit bounds the divisors tried when extracting perfect powers from a
// radicand. What is left after trial division is only known to be free of
// deg'th powers when it is small enough relative to trialLimit; otherwise the
// root falls back to floating point.
const trialLimit = 1 << 16

// radical splits n > 0 into out^deg * in, where in is free of deg'th powers.
// ok is false if n has large factors that make the split impractical.
func radical(n *big.Int, deg int) (out, in *big.Int, ok bool) {
	out, in = big.NewInt(1), big.NewInt(1)
	rest := new(big.Int).Set(n)
	var p, q, r, sq big.Int
	for d := int64(2); d <= trialLimit; d++ {
		if d > 3 && d%2 == 0 {
			continue
		}
		p.SetInt64(d)
		if sq.Mul(&p, &p).Cmp(rest) > 0 {
			// rest is 1 or a prime.
			in.Mul(in, rest)
			return out, in, true
		}
		k := 0
		for {
			q.QuoRem(rest, &p, &r)
			if r.Sign() != 0 {
				break
			}
			rest.Set(&q)
			k++
		}
		for ; k >= deg; k -= deg {
			out.Mul(out, &p)
		}
		for ; k > 0; k-- {
			in.Mul(in, &p)
		}
	}
	if rest.Cmp(bigOne) == 0 {
		return out, in, true
	}
	// Every prime factor of rest exceeds trialLimit. If rest is below
	// trialLimit^(deg+1), it has at most deg prime factors, so the only
	// deg'th power it can contain is itself.
	if root := iroot(rest, deg); ipow(root, deg).Cmp(rest) == 0 {
		out.Mul(out, root)
		return out, in, true
	}
	lim := ipow(big.NewInt(trialLimit), deg+1)
	if rest.Cmp(lim) < 0 {
		in.Mul(in, rest)
		return out, in, true
	}
	return nil, nil, false
}

// iroot returns the floor of the deg'th root of n > 0.
func iroot(n *big.Int, deg int) *big.Int {
	if deg == 2 {
		return new(big.Int).Sqrt(n)
	}
	// Newton's method from an overestimate decreases monotonically to the
	// floor of the root.
	k := big.NewInt(int64(deg))
	k1 := big.NewInt(int64(deg - 1))
	x := new(big.Int).Lsh(bigOne, uint(n.BitLen()/deg+1))
	var y, t big.Int
	for {
		// y = ((deg-1)x + n/x^(deg-1)) / deg
		t.Quo(n, ipow(x, deg-1))
		y.Mul(k1, x)
		y.Add(&y, &t)
		y.Quo(&y, k)
		if y.Cmp(x) >= 0 {
			return x
		}
		x.Set(&y)
	}
}

// ipow returns x^k without range checks.
func ipow(x *big.Int, k int) *big.Int {
	return new(big.Int).Exp(x, big.NewInt(int64(k)), nil)
}

// Sqrt computes the square root of x. Perfect square factors of an exact
// radicand are extracted, so sqrt(8) is 2√2 and sqrt(9/4) is 3/2. The result
// is NegativeRoot if x is negative.
func Sqrt(x Value) (Value, error) {
	return root(x, 2)
}

// Cbrt computes the cube root of x. Perfect cube factors of an exact radicand
// are extracted, so cbrt(16) is 2∛2 and cbrt(-27) is -3.
func Cbrt(x Value) (Value, error) {
	return root(x, 3)
}

func root(x Value, deg int) (Value, error) {
	if x.kind == KindEmpty {
		return Value{}, MissingOperand
	}
	negative := x.sign() < 0
	if negative && deg == 2 {
		return Value{}, NegativeRoot
	}
	if x.rational() {
		if r, err := rootExact(x, deg, negative); err == nil {
			return r, nil
		}
	}
	f := math.Abs(x.Float64())
	if deg == 2 {
		f = math.Sqrt(f)
	} else {
		f = math.Cbrt(f)
	}
	if negative {
		f = -f
	}
	return NewDouble(f)
}

// rootExact computes the root of a rational x as a rational coefficient times
// a reduced radical. With x = p/q, the root is root(p * q^(deg-1)) / q.
func rootExact(x Value, deg int, negative bool) (Value, error) {
	p, q, err := x.frac().improper()
	if err != nil {
		return Value{}, err
	}
	if p.Sign() == 0 {
		return NewInt(0), nil
	}
	if negative {
		if p, err = neg(p); err != nil {
			return Value{}, err
		}
	}
	rad := p
	for k := 1; k < deg; k++ {
		if rad, err = mul(rad, q); err != nil {
			return Value{}, err
		}
	}
	out, in, ok := radical(rad, deg)
	if !ok {
		return Value{}, Overflow
	}
	if negative {
		out.Neg(out)
	}
	c, err := frac{i: bigZero, n: out, d: q}.value()
	if err != nil {
		return Value{}, err
	}
	return withRoot(c, in, deg), nil
}
