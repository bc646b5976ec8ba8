package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats <output-root>",
	Short: "Summarize the transfers into an output root",
	Long: `Summarize the ledger for one output root: total transfers, first and
last transfer time, and per-year file counts.

Example:
  phototransfer stats /Volumes/photo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stats, err := GetLedger().Stats(args[0])
		if err != nil {
			return err
		}

		if stats.TotalTransfers == 0 {
			fmt.Printf("No transfers recorded for %s.\n", stats.OutputRoot)
			return nil
		}

		fmt.Println(summaryStyle.Render(
			fmt.Sprintf("%d transfers into %s", stats.TotalTransfers, stats.OutputRoot)))
		fmt.Println(detailStyle.Render(
			fmt.Sprintf("first %s, last %s",
				stats.FirstTransfer.Format(time.RFC3339),
				stats.LastTransfer.Format(time.RFC3339))))
		for _, yc := range stats.ByYear {
			fmt.Printf("%s  %d\n", yc.Year, yc.Count)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
