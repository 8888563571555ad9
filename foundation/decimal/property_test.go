package decimal_test

import (
	"math/big"
	"math/rand"
	"strings"
	"testing"
	"testing/quick"

	"github.com/ardanlabs/explorer/foundation/decimal"
	ref "github.com/shopspring/decimal"
)

// sample holds a randomly generated decimal string and the places it is
// parsed at.
type sample struct {
	value  string
	places int
}

func newSample(r *rand.Rand) sample {
	places := r.Intn(9)

	var b strings.Builder
	if r.Intn(2) == 0 {
		b.WriteByte('-')
	}
	b.WriteString(big.NewInt(r.Int63n(1_000_000_000)).String())

	if digits := r.Intn(places + 4); digits > 0 {
		b.WriteByte('.')
		for i := 0; i < digits; i++ {
			b.WriteByte(byte('0' + r.Intn(10)))
		}
	}

	return sample{value: b.String(), places: places}
}

func quickConfig(seed int64) *quick.Config {
	r := rand.New(rand.NewSource(seed))

	return &quick.Config{
		MaxCount: 2000,
		Rand:     r,
	}
}

// =============================================================================

func Test_RoundTrip(t *testing.T) {
	t.Log("Given the need for lossless string conversion.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen parsing the string form of a parsed value.", testID)
		{
			r := rand.New(rand.NewSource(1))

			f := func(rounding bool) bool {
				s := newSample(r)

				d, err := decimal.Parse(s.value, s.places, rounding)
				if err != nil {
					t.Logf("\t\tTest %d:\tparse %q: %v", testID, s.value, err)
					return false
				}

				str := d.String()
				if _, fraction, found := strings.Cut(str, "."); found && len(fraction) > s.places {
					t.Logf("\t\tTest %d:\t%q has too many fractional digits", testID, str)
					return false
				}

				again, err := decimal.Parse(str, s.places, rounding)
				if err != nil {
					return false
				}

				return again.Scaled().Cmp(d.Scaled()) == 0
			}

			if err := quick.Check(f, quickConfig(1)); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould parse back to the same value: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould parse back to the same value.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen adding and subtracting the same value.", testID)
		{
			r := rand.New(rand.NewSource(2))

			f := func() bool {
				a, b := newSample(r), newSample(r)

				x, err := decimal.Parse(a.value, a.places, false)
				if err != nil {
					return false
				}

				sum, err := x.Add(b.value)
				if err != nil {
					return false
				}

				diff, err := sum.Sub(b.value)
				if err != nil {
					return false
				}

				return diff.String() == x.String()
			}

			if err := quick.Check(f, quickConfig(2)); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould get back the original value: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get back the original value.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen multiplying and dividing by the same value.", testID)
		{
			r := rand.New(rand.NewSource(3))

			f := func(rounding bool) bool {
				a := newSample(r)

				x, err := decimal.Parse(a.value, a.places, rounding)
				if err != nil {
					return false
				}

				// The divisor is kept at a magnitude of at least one so the
				// error of the product isn't amplified by the division.
				unit := decimal.MustParse("1", a.places, false).Scaled().Int64()
				b := decimal.FromInt64(unit+r.Int63n(1_000_000*unit), a.places, false).String()
				if r.Intn(2) == 0 {
					b = "-" + b
				}

				product, err := x.Mul(b)
				if err != nil {
					return false
				}

				quotient, err := product.Div(b)
				if err != nil {
					return false
				}

				delta := new(big.Int).Sub(quotient.Scaled(), x.Scaled())
				return delta.CmpAbs(big.NewInt(1)) <= 0
			}

			if err := quick.Check(f, quickConfig(3)); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould stay within one unit in the last place: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould stay within one unit in the last place.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen the first discarded digit is a five.", testID)
		{
			r := rand.New(rand.NewSource(4))

			f := func() bool {
				places := r.Intn(6)
				whole := r.Int63n(1_000_000)

				var b strings.Builder
				b.WriteString(big.NewInt(whole).String())
				b.WriteByte('.')
				for i := 0; i < places; i++ {
					b.WriteByte(byte('0' + r.Intn(10)))
				}
				b.WriteByte('5')
				pos := b.String()

				up, err := decimal.Parse(pos, places, true)
				if err != nil {
					return false
				}
				down, err := decimal.Parse(pos, places, false)
				if err != nil {
					return false
				}
				neg, err := decimal.Parse("-"+pos, places, true)
				if err != nil {
					return false
				}

				one := big.NewInt(1)
				if new(big.Int).Sub(up.Scaled(), down.Scaled()).Cmp(one) != 0 {
					return false
				}

				return new(big.Int).Add(neg.Scaled(), up.Scaled()).Sign() == 0
			}

			if err := quick.Check(f, quickConfig(4)); err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould round the magnitude up regardless of sign: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould round the magnitude up regardless of sign.", success, testID)
		}
	}
}

func Test_Reference(t *testing.T) {
	t.Log("Given the need to agree with an independent decimal implementation.")
	{
		r := rand.New(rand.NewSource(5))

		for testID := 0; testID < 500; testID++ {
			a, b := newSample(r), newSample(r)
			rounding := testID%2 == 0

			x, err := decimal.Parse(a.value, a.places, rounding)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to parse %q: %v", failed, testID, a.value, err)
			}
			y, err := decimal.Parse(b.value, a.places, rounding)
			if err != nil {
				t.Fatalf("\t%s\tTest %d:\tShould be able to parse %q: %v", failed, testID, b.value, err)
			}

			places := int32(a.places)
			ra := ref.RequireFromString(a.value)
			rx := ref.RequireFromString(x.String())
			ry := ref.RequireFromString(y.String())

			exp := map[string]ref.Decimal{
				"parse": ra.Truncate(places),
				"add":   rx.Add(ry),
				"sub":   rx.Sub(ry),
				"mul":   rx.Mul(ry).Truncate(places),
			}
			if rounding {
				exp["parse"] = ra.Round(places)
				exp["mul"] = rx.Mul(ry).Round(places)
			}

			got := map[string]func() (decimal.Decimal, error){
				"parse": func() (decimal.Decimal, error) { return x, nil },
				"add":   func() (decimal.Decimal, error) { return x.Add(b.value) },
				"sub":   func() (decimal.Decimal, error) { return x.Sub(b.value) },
				"mul":   func() (decimal.Decimal, error) { return x.Mul(b.value) },
			}

			if !ry.IsZero() {
				switch rounding {
				case true:
					exp["div"] = rx.DivRound(ry, places)
				default:
					q, _ := rx.QuoRem(ry, places)
					exp["div"] = q
				}
				got["div"] = func() (decimal.Decimal, error) { return x.Div(b.value) }
			}

			for op, fn := range got {
				d, err := fn()
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould be able to %s %q and %q: %v", failed, testID, op, a.value, b.value, err)
				}

				if !ref.RequireFromString(d.String()).Equal(exp[op]) {
					t.Logf("\t\tTest %d:\t%s %q %q places %d rounding %v", testID, op, a.value, b.value, a.places, rounding)
					t.Logf("\t\tTest %d:\tgot: %s", testID, d)
					t.Logf("\t\tTest %d:\texp: %s", testID, exp[op])
					t.Fatalf("\t%s\tTest %d:\tShould match the reference result.", failed, testID)
				}
			}
		}
		t.Logf("\t%s\tShould match the reference results.", success)
	}
}
