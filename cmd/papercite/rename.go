package main

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wlin-papers/papercite/internal/history"
	"github.com/wlin-papers/papercite/internal/meta"
)

var (
	renameRecursive    bool
	renameDryRun       bool
	renameFormat       string
	renameNAuthors     int
	renameFallbackYear int
)

func init() {
	renameCmd.Flags().BoolVarP(&renameRecursive, "recursive", "r", false, "Process subdirectories")
	renameCmd.Flags().BoolVar(&renameDryRun, "dry-run", false, "Show renames without applying them")
	renameCmd.Flags().StringVar(&renameFormat, "format", "", "Author format (first_surname, all_surnames, ...)")
	renameCmd.Flags().IntVar(&renameNAuthors, "n-authors", 0, "Author count for n_surnames/n_full formats")
	renameCmd.Flags().IntVar(&renameFallbackYear, "fallback-year", 0, "Year used when none can be extracted")
	rootCmd.AddCommand(renameCmd)
}

var renameCmd = &cobra.Command{
	Use:   "rename <path>",
	Short: "Extract metadata and rename PDFs to citation-style filenames",
	Long: `Extract metadata from PDFs and rename them in place.

Existing files with the target name get a numeric suffix, e.g.
"Wang (2023) - Title (2).pdf". Applied renames are logged to the
history; inspect them with 'papercite history list'.

Examples:
  papercite rename ~/Downloads
  papercite rename -r ~/papers --dry-run
  papercite rename paper.pdf --format all_surnames`,
	Args: cobra.ExactArgs(1),
	RunE: runRename,
}

func runRename(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := mustLoadConfig()
	p := newProcessor(cfg, renameFormat, renameNAuthors, renameFallbackYear)

	papers, err := processPath(p, args[0], renameRecursive)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	// Paths mutate during rename; remember the originals for the log.
	oldPaths := make([]string, len(papers))
	for i, paper := range papers {
		oldPaths[i] = paper.Path
	}

	p.ApplyRenames(papers, renameDryRun)

	if !renameDryRun {
		if err := logRenames(papers, oldPaths); err != nil {
			exitWithError(ExitError, "writing history: %v", err)
		}
	}

	res := newBatchResult(papers, renameDryRun)
	if humanOutput {
		printBatchHuman(res)
	} else {
		outputJSON(res)
	}
	return nil
}

func logRenames(papers []*meta.Paper, oldPaths []string) error {
	logPath := history.LogPath()
	if logPath == "" {
		return nil
	}

	now := time.Now().UTC()
	records := make([]history.Record, len(papers))
	for i, paper := range papers {
		records[i] = history.FromPaper(paper, oldPaths[i], now)
	}
	if len(records) == 0 {
		return nil
	}
	return history.Append(logPath, records...)
}
