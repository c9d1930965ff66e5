// Package main provides the papercite CLI entry point.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/wlin-papers/papercite/internal/config"
	"github.com/wlin-papers/papercite/internal/extract"
	"github.com/wlin-papers/papercite/internal/history"
	"github.com/wlin-papers/papercite/internal/meta"
	"github.com/wlin-papers/papercite/internal/ocr"
	"github.com/wlin-papers/papercite/internal/pdftext"
	"github.com/wlin-papers/papercite/internal/process"
)

// Version is set at build time via ldflags
var Version = "dev"

// humanOutput controls whether to use human-readable output
var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "papercite",
	Short: "Rename academic PDFs to citation-style filenames",
	Long: `papercite extracts metadata from academic paper PDFs and renames
them to citation-style filenames like "Wang et al. (2023) - Title.pdf".

Core features:
  - Title, author and year extraction from PDF text and layout
  - OCR fallback for scanned documents (tesseract or a remote service)
  - Configurable author formats (first_surname, all_surnames, ...)
  - Append-only rename history with search and CSV export

All commands output JSON by default for scripting; use --human for
terminal-friendly output.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.Version = Version
}

// mustLoadConfig loads the global config, exits on error.
func mustLoadConfig() *config.GlobalConfig {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	return cfg
}

// newProcessor builds a processor wired per config and flags. OCR is
// routed through the engine cache unless disabled.
func newProcessor(cfg *config.GlobalConfig, format string, nAuthors, fallbackYear int) *process.Processor {
	extractor := pdftext.New()
	if cfg.OCREngine != "disabled" {
		cache := ocr.NewCache()
		// Env takes priority over the config file for the service URL.
		if cfg.OCRServerURL != "" && os.Getenv("OCR_SERVER_URL") == "" {
			url := cfg.OCRServerURL
			cache.Register(ocr.EngineRemote, func(device string) (ocr.Engine, error) {
				return ocr.NewRemote(device, ocr.WithBaseURL(url)), nil
			})
		}
		engine := cfg.OCREngine
		device := cfg.OCRDevice
		extractor.OCR = func(path string, maxPages int) string {
			return cache.Run(engine, device, path, maxPages, 0)
		}
	}

	p := process.New(extract.NewEngine(extractor))
	p.Format = cfg.Format()
	p.NAuthors = cfg.NAuthors
	p.FallbackYear = cfg.FallbackYear

	if format != "" {
		f, err := meta.ParseAuthorFormat(format)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		p.Format = f
	}
	if nAuthors > 0 {
		p.NAuthors = nAuthors
	}
	if fallbackYear > 0 {
		p.FallbackYear = fallbackYear
	}
	return p
}

// mustOpenHistoryDB opens the SQLite history cache rebuilt from the
// JSONL log. The caller is responsible for calling Close().
func mustOpenHistoryDB() *history.DB {
	dir := history.DataDir()
	if dir == "" {
		exitWithError(ExitConfigError, "cannot determine data directory")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		exitWithError(ExitError, "creating data directory: %v", err)
	}

	db, err := history.OpenDB(filepath.Join(dir, "cache.db"))
	if err != nil {
		exitWithError(ExitError, "opening history database: %v", err)
	}
	if _, err := db.RebuildFromJSONL(history.LogPath()); err != nil {
		db.Close()
		exitWithError(ExitDataError, "rebuilding history database: %v", err)
	}
	return db
}
