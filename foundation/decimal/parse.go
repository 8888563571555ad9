package decimal

import (
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// Set of error variables for parsing and arithmetic.
var (
	ErrInvalidFormat  = errors.New("invalid decimal format")
	ErrInvalidPlaces  = errors.New("decimal places must not be negative")
	ErrDivisionByZero = errors.New("division by zero")
)

// Parse converts a base 10 string into a value with the specified number of
// decimal places. The string may carry a single leading '-' and at most one
// '.'. Fractional digits beyond places are truncated, or rounded half away
// from zero when rounding is true.
func Parse(value string, places int, rounding bool) (Decimal, error) {
	if places < 0 {
		return Decimal{}, fmt.Errorf("parse %q: %w", value, ErrInvalidPlaces)
	}

	neg, whole, fraction, err := split(value)
	if err != nil {
		return Decimal{}, fmt.Errorf("parse %q: %w", value, err)
	}

	// Pad the fraction so there is always a digit for every place, then
	// remember the first discarded digit before cutting it down.
	if len(fraction) < places {
		fraction += strings.Repeat("0", places-len(fraction))
	}

	var discarded byte
	if len(fraction) > places {
		discarded = fraction[places]
	}
	fraction = fraction[:places]

	digits := strings.TrimLeft(whole+fraction, "0")
	if digits == "" {
		digits = "0"
	}

	scaled, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return Decimal{}, fmt.Errorf("parse %q: %w", value, ErrInvalidFormat)
	}

	// Rounding is applied to the magnitude before the sign so -1.25
	// becomes -1.3 at one place.
	if rounding && discarded >= '5' {
		scaled.Add(scaled, big.NewInt(1))
	}

	if neg {
		scaled.Neg(scaled)
	}

	d := Decimal{
		value:    scaled,
		places:   places,
		rounding: rounding,
	}

	return d, nil
}

// ParseDefault parses the value using two decimal places and no rounding.
func ParseDefault(value string) (Decimal, error) {
	return Parse(value, DefaultPlaces, DefaultRounding)
}

// MustParse is like Parse but panics if the string can't be parsed. It
// simplifies the initialization of package level values.
func MustParse(value string, places int, rounding bool) Decimal {
	d, err := Parse(value, places, rounding)
	if err != nil {
		panic(fmt.Sprintf("MustParse(%q) failed: %v", value, err))
	}
	return d
}

// split validates the string and breaks it into its sign, whole digits
// and fractional digits.
func split(value string) (neg bool, whole string, fraction string, err error) {
	s := value
	if strings.HasPrefix(s, "-") {
		neg = true
		s = s[1:]
	}

	var dot bool
	var digits int
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++

		case c == '.':
			if dot {
				return false, "", "", fmt.Errorf("multiple decimal points: %w", ErrInvalidFormat)
			}
			dot = true

		case c == '-':
			return false, "", "", fmt.Errorf("misplaced sign at %d: %w", i, ErrInvalidFormat)

		default:
			return false, "", "", fmt.Errorf("invalid character %q: %w", c, ErrInvalidFormat)
		}
	}

	if digits == 0 {
		return false, "", "", fmt.Errorf("no digits: %w", ErrInvalidFormat)
	}

	whole, fraction, _ = strings.Cut(s, ".")
	return neg, whole, fraction, nil
}
