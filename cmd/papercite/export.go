package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/wlin-papers/papercite/internal/history"
)

var exportCSV bool

func init() {
	exportCmd.Flags().BoolVar(&exportCSV, "csv", false, "Export as CSV")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the rename history",
	Long: `Export the full rename history.

CSV is always text output, never JSON.

Examples:
  papercite export --csv
  papercite export --csv > renames.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	if !exportCSV {
		exitWithError(ExitError, "--csv flag is required")
	}

	records, err := history.ReadAll(history.LogPath())
	if err != nil {
		exitWithError(ExitDataError, "reading history: %v", err)
	}

	if err := history.WriteRecordsCSV(os.Stdout, records); err != nil {
		exitWithError(ExitError, "writing CSV: %v", err)
	}
	return nil
}
