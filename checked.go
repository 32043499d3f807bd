package exactcalc

import "math/big"

// Exact integers are *big.Int confined to the signed 128-bit range. Every
// operation producing an integer that is part of a Value goes through one of
// the checked helpers so that the range is enforced at each step.

var (
	maxInt = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	minInt = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 127))

	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// MaxInt returns the largest integer a Value can hold exactly, 2^127-1.
func MaxInt() *big.Int {
	return new(big.Int).Set(maxInt)
}

// MinInt returns the smallest integer a Value can hold exactly, -2^127.
func MinInt() *big.Int {
	return new(big.Int).Set(minInt)
}

// inRange reports whether x fits in a signed 128-bit integer.
func inRange(x *big.Int) bool {
	return x.Cmp(minInt) >= 0 && x.Cmp(maxInt) <= 0
}

// binaryOp is the signature of the arithmetic methods of *big.Int.
type binaryOp func(z, x, y *big.Int) *big.Int

// checked applies op to x and y, returning kind if the result does not fit in
// 128 bits. Neither x nor y is modified.
func checked(op binaryOp, x, y *big.Int, kind MathError) (*big.Int, error) {
	z := op(new(big.Int), x, y)
	if !inRange(z) {
		return nil, kind
	}
	return z, nil
}

func add(x, y *big.Int) (*big.Int, error) {
	return checked((*big.Int).Add, x, y, Overflow)
}

func sub(x, y *big.Int) (*big.Int, error) {
	return checked((*big.Int).Sub, x, y, Overflow)
}

func mul(x, y *big.Int) (*big.Int, error) {
	return checked((*big.Int).Mul, x, y, Overflow)
}

func neg(x *big.Int) (*big.Int, error) {
	return sub(bigZero, x)
}

// pow10 returns 10^k, or Overflow if it does not fit.
func pow10(k int64) (*big.Int, error) {
	// 10^38 < 2^127 < 10^39
	if k < 0 || k > 38 {
		return nil, Overflow
	}
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(k), nil), nil
}
