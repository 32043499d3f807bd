package exactcalc

import (
	"errors"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
)

// literal converts the text of a number token to a Value. The text has
// already been validated by the lexer.
//
// The literal is split into a coefficient C and decimal exponent E so that
// its value is C*10^E, with trailing zeros of C moved into E. A non-negative
// E gives an Integer; a negative E gives the fraction C/10^-E. If the exact
// value does not fit, the literal is parsed as a Double instead.
func literal(text string) (Value, error) {
	s := canonical(text)
	d, _, err := apd.NewFromString(s)
	if err != nil {
		// The exponent is beyond what apd can represent, which is far outside
		// the exact range anyway unless the digits are all zero.
		if zeroMantissa(s) {
			return NewInt(0), nil
		}
		return floatLiteral(s)
	}
	v, err := exactLiteral(d)
	if err == nil {
		return v, nil
	}
	if err != Overflow {
		return Value{}, err
	}
	f, err := d.Float64()
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, Internal
	}
	if math.IsInf(f, 0) {
		return Value{}, DoubleOverflow
	}
	return NewDouble(f)
}

func exactLiteral(d *apd.Decimal) (Value, error) {
	d, _ = new(apd.Decimal).Reduce(d)
	c := d.Coeff.MathBigInt()
	if c.Sign() == 0 {
		return NewInt(0), nil
	}
	if d.Exponent >= 0 {
		if !inRange(c) {
			return Value{}, Overflow
		}
		p, err := pow10(int64(d.Exponent))
		if err != nil {
			return Value{}, err
		}
		i, err := mul(c, p)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: KindInteger, i: i}, nil
	}
	p, err := pow10(-int64(d.Exponent))
	if err != nil {
		return Value{}, err
	}
	// Split at the decimal point so that only the parts need to fit.
	i, n := new(big.Int).QuoRem(c, p, new(big.Int))
	return frac{i: i, n: n, d: p}.value()
}

// floatLiteral parses a literal directly as a float64.
func floatLiteral(s string) (Value, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return Value{}, Internal
	}
	if math.IsInf(f, 0) {
		return Value{}, DoubleOverflow
	}
	return NewDouble(f)
}

// zeroMantissa reports whether the digits of a literal before its exponent
// are all zero.
func zeroMantissa(s string) bool {
	if k := strings.IndexAny(s, "eE"); k >= 0 {
		s = s[:k]
	}
	return strings.Trim(s, "0.") == ""
}

// canonical adds the digits around a decimal point that a literal may omit,
// so ".5" becomes "0.5" and "5.e3" becomes "5.0e3".
func canonical(text string) string {
	m, e := text, ""
	if k := strings.IndexAny(text, "eE"); k >= 0 {
		m, e = text[:k], text[k:]
	}
	if strings.HasPrefix(m, ".") {
		m = "0" + m
	}
	if strings.HasSuffix(m, ".") {
		m += "0"
	}
	return m + e
}
