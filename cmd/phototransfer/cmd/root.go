package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"phototransfer/internal/adapters/sqlite"
	"phototransfer/internal/config"
	"phototransfer/internal/ports"
)

var (
	databasePath string
	logDir       string
	ledger       ports.TransferLedger
)

var rootCmd = &cobra.Command{
	Use:   "phototransfer",
	Short: "Organize media files into dated folders",
	Long: `phototransfer copies media files from an input tree into an output tree
organized by capture date (year/month/day). Every completed copy is recorded
in a SQLite ledger, so running the same input again only transfers new files.

Files without a readable capture date fall back to their modification time.
A destination name that is already taken gets a "(n)" version suffix instead
of being overwritten.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		l := sqlite.NewLedger()
		if err := l.Open(databasePath); err != nil {
			return err
		}
		ledger = l
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if ledger != nil {
			return ledger.Close()
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&databasePath, "database", config.DatabasePath(), "path to the transfer ledger database")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", config.LogDir(), "directory for run log files")
}

// GetLedger returns the ledger opened for this invocation
func GetLedger() ports.TransferLedger {
	return ledger
}
