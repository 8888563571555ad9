// Package decimal provides an immutable fixed-point decimal value backed by
// an arbitrary precision scaled integer. It is used for token amount math
// where floating point error is not acceptable.
//
// A Decimal carries the number of decimal places it preserves and whether
// digits discarded beyond those places are rounded half away from zero or
// truncated. Every operation returns a new value using the receiver's
// configuration.
package decimal

import (
	"math/big"
	"strings"
)

// Set of default configuration values used when a caller does not provide them.
const (
	DefaultPlaces   = 2
	DefaultRounding = false
)

// Decimal represents a fixed-point decimal number. The zero value is the
// number 0 with no decimal places.
type Decimal struct {
	value    *big.Int
	places   int
	rounding bool
}

// FromInteger wraps the integer n as the scaled integer of a value with the
// specified number of decimal places. No rounding is performed since the
// caller asserts n already represents the value at that scale. The integer
// is copied so later changes to n don't affect the value.
func FromInteger(n *big.Int, places int, rounding bool) Decimal {
	if places < 0 {
		places = 0
	}

	value := new(big.Int)
	if n != nil {
		value.Set(n)
	}

	return Decimal{
		value:    value,
		places:   places,
		rounding: rounding,
	}
}

// FromInt64 is a convenience wrapper of FromInteger for values that fit
// in an int64.
func FromInt64(n int64, places int, rounding bool) Decimal {
	return FromInteger(big.NewInt(n), places, rounding)
}

// Places returns the number of decimal places the value preserves.
func (d Decimal) Places() int {
	return d.places
}

// Rounding reports if digits beyond the decimal places are rounded.
func (d Decimal) Rounding() bool {
	return d.rounding
}

// Scaled returns a copy of the scaled integer, the value multiplied by
// 10^Places.
func (d Decimal) Scaled() *big.Int {
	return new(big.Int).Set(d.scaled())
}

// Sign returns -1, 0 or +1 depending on the sign of the value.
func (d Decimal) Sign() int {
	return d.scaled().Sign()
}

// IsZero reports if the value is zero.
func (d Decimal) IsZero() bool {
	return d.Sign() == 0
}

// Cmp compares the value of d and e and returns -1, 0 or +1. The values
// are compared numerically, so they may carry different decimal places.
func (d Decimal) Cmp(e Decimal) int {
	x, y := d.scaled(), e.scaled()

	switch {
	case d.places < e.places:
		x = new(big.Int).Mul(x, pow10(e.places-d.places))
	case d.places > e.places:
		y = new(big.Int).Mul(y, pow10(d.places-e.places))
	}

	return x.Cmp(y)
}

// Neg returns the value with the opposite sign.
func (d Decimal) Neg() Decimal {
	return d.with(new(big.Int).Neg(d.scaled()))
}

// Abs returns the absolute value.
func (d Decimal) Abs() Decimal {
	return d.with(new(big.Int).Abs(d.scaled()))
}

// String returns the canonical representation of the value. Trailing zeros
// in the fractional part are removed and the decimal point is dropped when
// the fractional part is zero. Scientific notation is never used.
func (d Decimal) String() string {
	value := d.scaled()

	var b strings.Builder
	if value.Sign() < 0 {
		b.WriteByte('-')
	}

	digits := new(big.Int).Abs(value).String()
	if len(digits) <= d.places {
		digits = strings.Repeat("0", d.places-len(digits)+1) + digits
	}

	split := len(digits) - d.places
	b.WriteString(digits[:split])

	fraction := strings.TrimRight(digits[split:], "0")
	if fraction != "" {
		b.WriteByte('.')
		b.WriteString(fraction)
	}

	return b.String()
}

// =============================================================================

// scaled returns the scaled integer without copying. The zero value of
// Decimal has no integer allocated.
func (d Decimal) scaled() *big.Int {
	if d.value == nil {
		return new(big.Int)
	}
	return d.value
}

// with constructs a new value sharing the configuration of d.
func (d Decimal) with(value *big.Int) Decimal {
	return Decimal{
		value:    value,
		places:   d.places,
		rounding: d.rounding,
	}
}

// pow10 returns 10^n as a new integer.
func pow10(n int) *big.Int {
	return new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
}
