package units_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/ardanlabs/explorer/foundation/decimal"
	"github.com/ardanlabs/explorer/foundation/units"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func bigInt(t *testing.T, s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		t.Fatalf("invalid integer %q", s)
	}
	return n
}

// =============================================================================

func Test_Format(t *testing.T) {
	type table struct {
		name   string
		amount string
		exp    string
	}

	tt := []table{
		{name: "whole", amount: "1000000", exp: "1 SMR"},
		{name: "fraction", amount: "1500000", exp: "1.5 SMR"},
		{name: "grouped", amount: "1450896407249092", exp: "1,450,896,407.249092 SMR"},
		{name: "small", amount: "1", exp: "0.000001 SMR"},
		{name: "negative", amount: "-500000", exp: "-0.5 SMR"},
		{name: "zero", amount: "0", exp: "0 SMR"},
	}

	t.Log("Given the need to format base unit amounts.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen formatting %s glow.", testID, tst.amount)
				{
					got := units.Shimmer.Format(bigInt(t, tst.amount))
					if got != tst.exp {
						t.Logf("\t\tTest %d:\tgot: %s", testID, got)
						t.Logf("\t\tTest %d:\texp: %s", testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right display amount.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right display amount.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_ToBase(t *testing.T) {
	t.Log("Given the need to convert display amounts to base units.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen converting display amounts.", testID)
		{
			tt := map[string]string{
				"1":           "1000000",
				"1.5":         "1500000",
				"0.0000019":   "1",
				"-2.25":       "-2250000",
				"1450896407.": "1450896407000000",
			}

			for display, exp := range tt {
				got, err := units.IOTA.ToBase(display)
				if err != nil {
					t.Fatalf("\t%s\tTest %d:\tShould convert %q: %v", failed, testID, display, err)
				}
				if got.String() != exp {
					t.Fatalf("\t%s\tTest %d:\tShould convert %q to %s: %s", failed, testID, display, exp, got)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould convert display amounts.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen converting an invalid amount.", testID)
		{
			if _, err := units.IOTA.ToBase("1,5"); !errors.Is(err, decimal.ErrInvalidFormat) {
				t.Fatalf("\t%s\tTest %d:\tShould get an invalid format error: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get an invalid format error.", success, testID)
		}
	}
}

func Test_Percentage(t *testing.T) {
	type table struct {
		name   string
		part   string
		total  string
		places int
		exp    string
	}

	tt := []table{
		{name: "half", part: "50", total: "100", places: 2, exp: "50%"},
		{name: "third", part: "1", total: "3", places: 2, exp: "33.33%"},
		{name: "two-thirds", part: "2", total: "3", places: 2, exp: "66.67%"},
		{name: "supply", part: "30000000000000", total: "1450896407249092", places: 4, exp: "2.0677%"},
		{name: "whole", part: "2", total: "3", places: 0, exp: "67%"},
	}

	t.Log("Given the need to compute percentages without floating point error.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen computing %s of %s.", testID, tst.part, tst.total)
				{
					d, err := units.Percentage(bigInt(t, tst.part), bigInt(t, tst.total), tst.places)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould compute the percentage: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould compute the percentage.", success, testID)

					if got := units.FormatPercentage(d); got != tst.exp {
						t.Logf("\t\tTest %d:\tgot: %s", testID, got)
						t.Logf("\t\tTest %d:\texp: %s", testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get back the right percentage.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get back the right percentage.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}

		testID := len(tt)
		t.Logf("\tTest %d:\tWhen the total is zero.", testID)
		{
			_, err := units.Percentage(big.NewInt(1), big.NewInt(0), 2)
			if !errors.Is(err, decimal.ErrDivisionByZero) {
				t.Fatalf("\t%s\tTest %d:\tShould get a division by zero error: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould get a division by zero error.", success, testID)
		}
	}
}

func Test_Magnitude(t *testing.T) {
	t.Log("Given the need to render legacy magnitude units.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen rendering amounts.", testID)
		{
			tt := map[string]string{
				"0":                   "0 i",
				"999":                 "999 i",
				"1000":                "1 Ki",
				"1500000":             "1.5 Mi",
				"1234567":             "1.23 Mi",
				"-2779530283277761":   "-2.77 Pi",
				"2779530283277761000": "2779.53 Pi",
				"4000000000":          "4 Gi",
			}

			for amount, exp := range tt {
				if got := units.Magnitude(bigInt(t, amount)); got != exp {
					t.Fatalf("\t%s\tTest %d:\tShould render %s as %q: %q", failed, testID, amount, exp, got)
				}
			}
			t.Logf("\t%s\tTest %d:\tShould render amounts.", success, testID)
		}
	}
}

func Test_Lookup(t *testing.T) {
	t.Log("Given the need to find tokens by name.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen looking up tokens.", testID)
		{
			tkn, err := units.Lookup("Shimmer")
			if err != nil || tkn.Unit != "SMR" {
				t.Fatalf("\t%s\tTest %d:\tShould find shimmer: %v", failed, testID, err)
			}
			t.Logf("\t%s\tTest %d:\tShould find shimmer.", success, testID)

			if _, err := units.Lookup("bitcoin"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould not find an unknown token.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould not find an unknown token.", success, testID)
		}
	}
}
