package decimal

import (
	"fmt"
	"math/big"
)

// Add returns d + other. The operand is parsed with the places and rounding
// configuration of d.
func (d Decimal) Add(other string) (Decimal, error) {
	e, err := d.operand(other)
	if err != nil {
		return Decimal{}, err
	}

	return d.with(new(big.Int).Add(d.scaled(), e.scaled())), nil
}

// Sub returns d - other. The operand is parsed with the places and rounding
// configuration of d.
func (d Decimal) Sub(other string) (Decimal, error) {
	e, err := d.operand(other)
	if err != nil {
		return Decimal{}, err
	}

	return d.with(new(big.Int).Sub(d.scaled(), e.scaled())), nil
}

// Mul returns d * other. The product of two scaled integers carries twice
// the scale, so it is divided back down by 10^Places.
func (d Decimal) Mul(other string) (Decimal, error) {
	e, err := d.operand(other)
	if err != nil {
		return Decimal{}, err
	}

	product := new(big.Int).Mul(d.scaled(), e.scaled())
	return divideRounding(product, pow10(d.places), d.places, d.rounding)
}

// Div returns d / other. The dividend is scaled up by 10^Places before the
// integer division so the fractional digits are kept. Dividing by a value
// that parses to zero returns ErrDivisionByZero.
func (d Decimal) Div(other string) (Decimal, error) {
	e, err := d.operand(other)
	if err != nil {
		return Decimal{}, err
	}

	dividend := new(big.Int).Mul(d.scaled(), pow10(d.places))
	return divideRounding(dividend, e.scaled(), d.places, d.rounding)
}

// =============================================================================

func (d Decimal) operand(other string) (Decimal, error) {
	return Parse(other, d.places, d.rounding)
}

// divideRounding performs a truncating integer division of dividend by
// divisor. With rounding, the quotient's magnitude grows by one when the
// remainder is at least half the divisor, in the direction of the sign of
// the true quotient.
func divideRounding(dividend *big.Int, divisor *big.Int, places int, rounding bool) (Decimal, error) {
	if divisor.Sign() == 0 {
		return Decimal{}, fmt.Errorf("divide %s: %w", dividend, ErrDivisionByZero)
	}

	quo, rem := new(big.Int).QuoRem(dividend, divisor, new(big.Int))

	if rounding && rem.Sign() != 0 {
		twice := new(big.Int).Lsh(new(big.Int).Abs(rem), 1)
		if twice.Cmp(new(big.Int).Abs(divisor)) >= 0 {
			switch dividend.Sign() * divisor.Sign() {
			case -1:
				quo.Sub(quo, big.NewInt(1))
			default:
				quo.Add(quo, big.NewInt(1))
			}
		}
	}

	d := Decimal{
		value:    quo,
		places:   places,
		rounding: rounding,
	}

	return d, nil
}
