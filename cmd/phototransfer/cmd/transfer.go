package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"phototransfer/internal/adapters/exif"
	"phototransfer/internal/application"
	"phototransfer/internal/logging"
)

var (
	summaryStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10B981")) // Green

	failureStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#EF4444")) // Red

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280")) // Gray
)

var transferCmd = &cobra.Command{
	Use:   "transfer <input> <output>",
	Short: "Copy new files from input into dated folders under output",
	Long: `Walk the input tree and copy every file not yet recorded for this output
root into output/<year>/<month>/<day>, where the date is the embedded capture
date when readable and the file modification time otherwise.

Already-occupied destination names get a "(n)" version suffix; nothing is
ever overwritten. Each completed copy is recorded in the ledger, making the
command safe to re-run.

Examples:
  phototransfer transfer ~/Pictures/import /Volumes/photo
  phototransfer --database /Volumes/photo/ledger.db transfer ./masters /Volumes/photo`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		start := time.Now()
		logger, files, err := logging.NewRunLogger(logDir, start)
		if err != nil {
			return err
		}

		tc := application.NewTransferCommand(
			afero.NewOsFs(), exif.NewReader(), GetLedger(), logger, args[0], args[1])

		bar := progressbar.Default(-1, "transferring")
		tc.Progress = func() { bar.Add(1) }

		result, err := tc.Execute(context.Background())
		bar.Finish()
		if err != nil {
			return err
		}

		fmt.Println(summaryStyle.Render(
			fmt.Sprintf("Checked %d files, copied %d", result.Discovered, result.Transferred)))
		if result.Failed > 0 {
			fmt.Println(failureStyle.Render(
				fmt.Sprintf("%d files failed, see %s", result.Failed, files.Error)))
		}
		fmt.Println(detailStyle.Render(
			fmt.Sprintf("Run %s finished in %s, log: %s",
				result.RunID, result.Elapsed.Round(time.Millisecond), files.Info)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(transferCmd)
}
