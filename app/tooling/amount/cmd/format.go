package cmd

import (
	"fmt"
	"math/big"

	"github.com/ardanlabs/explorer/foundation/units"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format <base>",
	Short: "Convert an amount of base units into display units.",
	Args:  cobra.ExactArgs(1),
	RunE:  formatRun,
}

var parseCmd = &cobra.Command{
	Use:   "parse <display>",
	Short: "Convert a display amount into base units.",
	Args:  cobra.ExactArgs(1),
	RunE:  parseRun,
}

func init() {
	rootCmd.AddCommand(formatCmd)
	rootCmd.AddCommand(parseCmd)
}

func formatRun(cmd *cobra.Command, args []string) error {
	tkn, err := token()
	if err != nil {
		return err
	}

	amount, ok := new(big.Int).SetString(args[0], 10)
	if !ok {
		return fmt.Errorf("invalid base amount %q", args[0])
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Display:  ", tkn.FromBase(amount))
	fmt.Fprintln(out, "Formatted:", tkn.Format(amount))
	fmt.Fprintln(out, "Magnitude:", units.Magnitude(amount))

	return nil
}

func parseRun(cmd *cobra.Command, args []string) error {
	tkn, err := token()
	if err != nil {
		return err
	}

	amount, err := tkn.ToBase(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", amount, tkn.Subunit)
	return nil
}
