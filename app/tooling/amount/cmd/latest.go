package cmd

import (
	"fmt"
	"net/http"

	"github.com/ardanlabs/explorer/business/core/stats"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var url string

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the latest milestone known by an explorer.",
	RunE:  latestRun,
}

func init() {
	rootCmd.AddCommand(latestCmd)
	latestCmd.Flags().StringVarP(&url, "url", "u", "http://localhost:8080", "Url of the explorer.")
}

func latestRun(cmd *cobra.Command, args []string) error {
	resp, err := http.Get(fmt.Sprintf("%s/v1/milestones/latest", url))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("explorer returned %s", resp.Status)
	}

	var ms stats.MilestoneView
	if err := json.NewDecoder(resp.Body).Decode(&ms); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Milestone:", ms.Index, ms.ID)
	fmt.Fprintln(out, "Blocks:   ", ms.IncludedBlocks, "of", ms.ReferencedBlocks, "("+ms.ConfirmationRate.String()+"%)")
	fmt.Fprintln(out, "Claimed:  ", ms.ClaimedDisplay, "("+ms.ClaimedPercent.String()+"%)")

	return nil
}
