package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wlin-papers/papercite/internal/meta"
	"github.com/wlin-papers/papercite/internal/process"
)

var (
	scanRecursive    bool
	scanFormat       string
	scanNAuthors     int
	scanFallbackYear int
)

func init() {
	scanCmd.Flags().BoolVarP(&scanRecursive, "recursive", "r", false, "Scan subdirectories")
	scanCmd.Flags().StringVar(&scanFormat, "format", "", "Author format (first_surname, all_surnames, ...)")
	scanCmd.Flags().IntVar(&scanNAuthors, "n-authors", 0, "Author count for n_surnames/n_full formats")
	scanCmd.Flags().IntVar(&scanFallbackYear, "fallback-year", 0, "Year used when none can be extracted")
	rootCmd.AddCommand(scanCmd)
}

var scanCmd = &cobra.Command{
	Use:   "scan <path>",
	Short: "Extract metadata and show proposed renames without touching files",
	Long: `Extract metadata from PDFs and show the filenames they would get.

No files are modified; use 'papercite rename' to apply.

Examples:
  papercite scan ~/Downloads
  papercite scan -r ~/papers --format all_surnames
  papercite scan paper.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func runScan(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := mustLoadConfig()
	p := newProcessor(cfg, scanFormat, scanNAuthors, scanFallbackYear)

	papers, err := processPath(p, args[0], scanRecursive)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	res := newBatchResult(papers, true)
	if humanOutput {
		printBatchHuman(res)
	} else {
		outputJSON(res)
	}
	return nil
}

// processPath dispatches on whether path is a single PDF or a directory.
func processPath(p *process.Processor, path string, recursive bool) ([]*meta.Paper, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("reading path: %w", err)
	}
	if info.IsDir() {
		return p.ProcessDirectory(path, recursive)
	}
	return []*meta.Paper{p.ProcessOne(path)}, nil
}
