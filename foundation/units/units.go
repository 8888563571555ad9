// Package units converts token amounts between base units and display units
// and renders them for people to read.
package units

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ardanlabs/explorer/foundation/decimal"
	"github.com/dustin/go-humanize"
)

// Token describes how base units of a token relate to its display unit.
type Token struct {
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	Subunit  string `json:"subunit"`
	Decimals int    `json:"decimals"`
}

// Set of known tokens.
var (
	Shimmer = Token{Name: "shimmer", Unit: "SMR", Subunit: "glow", Decimals: 6}
	IOTA    = Token{Name: "iota", Unit: "IOTA", Subunit: "micro", Decimals: 6}
	Testnet = Token{Name: "testnet", Unit: "RMS", Subunit: "glow", Decimals: 6}
)

var tokens = []Token{Shimmer, IOTA, Testnet}

// Lookup returns the known token with the specified name.
func Lookup(name string) (Token, error) {
	for _, tkn := range tokens {
		if strings.EqualFold(tkn.Name, name) {
			return tkn, nil
		}
	}

	return Token{}, fmt.Errorf("unknown token %q", name)
}

// FromBase converts an amount of base units into display units.
func (tkn Token) FromBase(amount *big.Int) decimal.Decimal {
	return decimal.FromInteger(amount, tkn.Decimals, false)
}

// ToBase converts a display amount into base units. Digits beyond the
// token's decimals are truncated.
func (tkn Token) ToBase(display string) (*big.Int, error) {
	d, err := decimal.Parse(display, tkn.Decimals, false)
	if err != nil {
		return nil, fmt.Errorf("to base: %w", err)
	}

	return d.Scaled(), nil
}

// Format renders an amount of base units in display units with the whole
// part grouped by thousands, followed by the unit.
func (tkn Token) Format(amount *big.Int) string {
	return Group(tkn.FromBase(amount)) + " " + tkn.Unit
}

// Group renders the value with the whole part grouped by thousands.
func Group(d decimal.Decimal) string {
	s := d.Abs().String()
	whole, fraction, found := strings.Cut(s, ".")

	n, _ := new(big.Int).SetString(whole, 10)

	var b strings.Builder
	if d.Sign() < 0 {
		b.WriteByte('-')
	}
	b.WriteString(humanize.BigComma(n))
	if found {
		b.WriteByte('.')
		b.WriteString(fraction)
	}

	return b.String()
}

// =============================================================================

// Percentage computes part * 100 / total at the specified places, rounding
// half away from zero. A zero total returns decimal.ErrDivisionByZero.
func Percentage(part *big.Int, total *big.Int, places int) (decimal.Decimal, error) {
	d, err := decimal.Parse(part.String(), places, true)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("percentage: %w", err)
	}

	d, err = d.Mul("100")
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("percentage: %w", err)
	}

	d, err = d.Div(total.String())
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("percentage: %w", err)
	}

	return d, nil
}

// FormatPercentage renders a percentage for display.
func FormatPercentage(d decimal.Decimal) string {
	return d.String() + "%"
}

// =============================================================================

var magnitudes = []string{"i", "Ki", "Mi", "Gi", "Ti", "Pi"}

// Magnitude renders a legacy IOTA amount using the largest magnitude unit
// that keeps the whole part non-zero, truncated to two fractional digits.
func Magnitude(amount *big.Int) string {
	abs := new(big.Int).Abs(amount)

	var exp int
	limit := big.NewInt(1000)
	for exp < len(magnitudes)-1 && abs.Cmp(limit) >= 0 {
		exp++
		limit.Mul(limit, big.NewInt(1000))
	}

	value := decimal.FromInteger(amount, exp*3, false).String()

	d, err := decimal.Parse(value, 2, false)
	if err != nil {
		return value + " " + magnitudes[exp]
	}

	return d.String() + " " + magnitudes[exp]
}
