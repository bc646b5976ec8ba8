package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"phototransfer/internal/domain"
)

var (
	historyOriginal string
	historyLimit    int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded transfers",
	Long: `Show transfers recorded in the ledger, newest first.

Examples:
  phototransfer history
  phototransfer history --limit 50
  phototransfer history --original /input/a/img1.jpg`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var records []domain.TransferRecord
		var err error

		if historyOriginal != "" {
			records, err = GetLedger().HistoryFor(historyOriginal)
		} else {
			records, err = GetLedger().History(historyLimit)
		}
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("No transfers recorded.")
			return nil
		}
		for _, rec := range records {
			fmt.Printf("%s  %s -> %s\n",
				rec.TransferredAt.Format(time.RFC3339), rec.OriginalPath, rec.CopyPath)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyOriginal, "original", "", "show the transfers of one source file")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of transfers to show")
	rootCmd.AddCommand(historyCmd)
}
