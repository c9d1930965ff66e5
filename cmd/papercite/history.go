package main

import (
	"github.com/spf13/cobra"

	"github.com/wlin-papers/papercite/internal/history"
	"github.com/wlin-papers/papercite/internal/meta"
)

// DefaultHistoryLimit bounds history output unless overridden.
const DefaultHistoryLimit = 50

var historyLimit int

func init() {
	historyCmd.PersistentFlags().IntVar(&historyLimit, "limit", DefaultHistoryLimit, "Maximum records to show (0 = all)")
	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historySearchCmd)
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect the rename history",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List past renames, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search past renames by title or author",
	Long: `Full-text search over logged titles and author names.

Examples:
  papercite history search "deep learning"
  papercite history search Wang`,
	Args: cobra.ExactArgs(1),
	RunE: runHistorySearch,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	db := mustOpenHistoryDB()
	defer db.Close()

	records, err := db.List(historyLimit)
	if err != nil {
		exitWithError(ExitError, "listing history: %v", err)
	}
	printRecords(records)
	return nil
}

func runHistorySearch(cmd *cobra.Command, args []string) error {
	db := mustOpenHistoryDB()
	defer db.Close()

	limit := historyLimit
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	records, err := db.Search(args[0], limit)
	if err != nil {
		exitWithError(ExitError, "searching history: %v", err)
	}
	printRecords(records)
	return nil
}

func printRecords(records []history.Record) {
	if !humanOutput {
		outputJSON(records)
		return
	}
	for _, rec := range records {
		outputHuman("%s  %s\n", rec.Time.Format("2006-01-02 15:04"), rec.OldPath)
		if rec.Status == meta.StatusSuccess {
			outputHuman("  -> %s\n", rec.NewPath)
			outputHuman("  %s\n", truncateString(rec.Title, summaryTitleMaxLen))
			outputHuman("  %s (%d)\n", formatAuthorsShort(rec.Authors, 3), rec.Year)
		} else {
			outputHuman("  !! %s\n", rec.Error)
		}
	}
	outputHuman("\n%d records\n", len(records))
}
