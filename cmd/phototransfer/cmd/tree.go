package cmd

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/disiqueira/gotree/v3"
	"github.com/spf13/cobra"
)

var treeCmd = &cobra.Command{
	Use:   "tree <output-root>",
	Short: "Render the dated layout of an output root",
	Long: `Render the year/month/day tree of an output root as recorded in the
ledger, with the number of files per day.

Example:
  phototransfer tree /Volumes/photo`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputRoot := args[0]

		records, err := GetLedger().Transfers(outputRoot)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Printf("No transfers recorded for %s.\n", outputRoot)
			return nil
		}

		// year -> month -> day -> file count
		layout := make(map[string]map[string]map[string]int)
		for _, rec := range records {
			rel, err := filepath.Rel(outputRoot, rec.CopyPath)
			if err != nil {
				continue
			}
			parts := strings.Split(rel, string(filepath.Separator))
			if len(parts) != 4 {
				continue
			}
			year, month, day := parts[0], parts[1], parts[2]
			if layout[year] == nil {
				layout[year] = make(map[string]map[string]int)
			}
			if layout[year][month] == nil {
				layout[year][month] = make(map[string]int)
			}
			layout[year][month][day]++
		}

		root := gotree.New(outputRoot)
		for _, year := range sortedNumeric(layout) {
			yearNode := root.Add(year)
			for _, month := range sortedNumeric(layout[year]) {
				monthNode := yearNode.Add(month)
				for _, day := range sortedNumeric(layout[year][month]) {
					count := layout[year][month][day]
					noun := "files"
					if count == 1 {
						noun = "file"
					}
					monthNode.Add(fmt.Sprintf("%s (%d %s)", day, count, noun))
				}
			}
		}

		fmt.Print(root.Print())
		return nil
	},
}

// sortedNumeric returns the keys of m in ascending numeric order. Path
// segments are unpadded, so a plain string sort would put "10" before "3".
func sortedNumeric[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		if errA != nil || errB != nil {
			return keys[i] < keys[j]
		}
		return a < b
	})
	return keys
}

func init() {
	rootCmd.AddCommand(treeCmd)
}
