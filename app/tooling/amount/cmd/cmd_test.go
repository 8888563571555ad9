package cmd

import (
	"bytes"
	"strings"
	"testing"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func execute(args ...string) (string, error) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)

	places = 2
	rounding = false
	tokenName = "shimmer"

	err := rootCmd.Execute()
	return strings.TrimSpace(out.String()), err
}

func Test_Commands(t *testing.T) {
	type table struct {
		name string
		args []string
		exp  string
	}

	tt := []table{
		{name: "add", args: []string{"calc", "1.005", "add", "2.004"}, exp: "3"},
		{name: "mul", args: []string{"calc", "--places", "3", "--rounding", "1.234", "mul", "3.45"}, exp: "4.257"},
		{name: "div", args: []string{"calc", "--places", "3", "--rounding", "1", "div", "3"}, exp: "0.333"},
		{name: "parse", args: []string{"parse", "1.5"}, exp: "1500000 glow"},
		{name: "claimed", args: []string{"claimed", "1", "3"}, exp: "33.33%"},
	}

	t.Log("Given the need to run the amount commands.")
	{
		for testID, tst := range tt {
			f := func(t *testing.T) {
				t.Logf("\tTest %d:\tWhen running %v.", testID, tst.args)
				{
					got, err := execute(tst.args...)
					if err != nil {
						t.Fatalf("\t%s\tTest %d:\tShould be able to run the command: %v", failed, testID, err)
					}
					t.Logf("\t%s\tTest %d:\tShould be able to run the command.", success, testID)

					if got != tst.exp {
						t.Logf("\t\tTest %d:\tgot: %q", testID, got)
						t.Logf("\t\tTest %d:\texp: %q", testID, tst.exp)
						t.Fatalf("\t%s\tTest %d:\tShould get the expected output.", failed, testID)
					}
					t.Logf("\t%s\tTest %d:\tShould get the expected output.", success, testID)
				}
			}

			t.Run(tst.name, f)
		}
	}
}

func Test_CommandErrors(t *testing.T) {
	t.Log("Given the need to reject bad input.")
	{
		testID := 0
		t.Logf("\tTest %d:\tWhen dividing by zero.", testID)
		{
			if _, err := execute("calc", "1", "div", "0"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould get an error.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get an error.", success, testID)
		}

		testID++
		t.Logf("\tTest %d:\tWhen using an unknown operation.", testID)
		{
			if _, err := execute("calc", "1", "pow", "2"); err == nil {
				t.Fatalf("\t%s\tTest %d:\tShould get an error.", failed, testID)
			}
			t.Logf("\t%s\tTest %d:\tShould get an error.", success, testID)
		}
	}
}
