// Package cmd contains the amount tooling app.
package cmd

import (
	"os"

	"github.com/ardanlabs/explorer/foundation/decimal"
	"github.com/ardanlabs/explorer/foundation/units"
	"github.com/spf13/cobra"
)

var (
	places    int
	rounding  bool
	tokenName string
)

func init() {
	rootCmd.PersistentFlags().IntVarP(&places, "places", "p", decimal.DefaultPlaces, "Number of decimal places.")
	rootCmd.PersistentFlags().BoolVarP(&rounding, "rounding", "r", decimal.DefaultRounding, "Round half away from zero instead of truncating.")
	rootCmd.PersistentFlags().StringVarP(&tokenName, "token", "t", "shimmer", "Token used for unit conversions.")
}

var rootCmd = &cobra.Command{
	Use:          "amount",
	Short:        "Fixed-point math for token amounts",
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func token() (units.Token, error) {
	return units.Lookup(tokenName)
}
