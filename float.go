package exactcalc

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// powPrec is the precision used to compute floating-point powers before
// rounding to float64.
const powPrec = 128

// powFloat computes x^y in floating point for an integral y.
func powFloat(x, y float64) (Value, error) {
	switch {
	case y == 0:
		return NewDouble(1)
	case y == 1:
		return NewDouble(x)
	case x == 0:
		if y < 0 {
			return Value{}, DivisionByZero
		}
		return NewDouble(0)
	}
	odd := x < 0 && math.Mod(y, 2) != 0
	ax := math.Abs(x)
	// The binary exponent of the result is about y*log2|x|. Far outside the
	// range of float64, skip the arbitrary-precision computation. Anything at
	// or below 2^-1075 rounds to zero.
	switch e := y * math.Log2(ax); {
	case e > 1100:
		return Value{}, DoubleOverflow
	case e <= -1075:
		return NewDouble(0)
	}
	z := new(big.Float).SetPrec(powPrec)
	w := new(big.Float).SetPrec(powPrec).SetFloat64(ax)
	p := new(big.Float).SetPrec(powPrec).SetFloat64(y)
	z = bigfloat.Pow(z, w, p)
	f, _ := z.Float64()
	if odd {
		f = -f
	}
	return NewDouble(f)
}
