package cmd

import (
	"fmt"
	"math/big"

	"github.com/ardanlabs/explorer/foundation/units"
	"github.com/spf13/cobra"
)

var claimedCmd = &cobra.Command{
	Use:   "claimed <claimed> <total>",
	Short: "Print the percentage of the total supply that was claimed.",
	Args:  cobra.ExactArgs(2),
	RunE:  claimedRun,
}

func init() {
	rootCmd.AddCommand(claimedCmd)
}

func claimedRun(cmd *cobra.Command, args []string) error {
	claimed, ok := new(big.Int).SetString(args[0], 10)
	if !ok {
		return fmt.Errorf("invalid claimed amount %q", args[0])
	}

	total, ok := new(big.Int).SetString(args[1], 10)
	if !ok {
		return fmt.Errorf("invalid total amount %q", args[1])
	}

	percent, err := units.Percentage(claimed, total, places)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), units.FormatPercentage(percent))
	return nil
}
