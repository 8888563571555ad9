package cmd

import (
	"fmt"

	"github.com/ardanlabs/explorer/foundation/decimal"
	"github.com/spf13/cobra"
)

var calcCmd = &cobra.Command{
	Use:   "calc <value> <add|sub|mul|div> <operand>",
	Short: "Perform a calculation on two decimal values.",
	Args:  cobra.ExactArgs(3),
	RunE:  calcRun,
}

func init() {
	rootCmd.AddCommand(calcCmd)
}

func calcRun(cmd *cobra.Command, args []string) error {
	d, err := decimal.Parse(args[0], places, rounding)
	if err != nil {
		return err
	}

	var result decimal.Decimal
	switch op := args[1]; op {
	case "add", "+":
		result, err = d.Add(args[2])
	case "sub", "-":
		result, err = d.Sub(args[2])
	case "mul", "*", "x":
		result, err = d.Mul(args[2])
	case "div", "/":
		result, err = d.Div(args[2])
	default:
		return fmt.Errorf("unknown operation %q", op)
	}

	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), result)
	return nil
}
