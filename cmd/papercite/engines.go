package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/wlin-papers/papercite/internal/ocr"
)

func init() {
	rootCmd.AddCommand(enginesCmd)
}

var enginesCmd = &cobra.Command{
	Use:   "engines",
	Short: "List OCR engines and their availability",
	Long: `List the registered OCR engines and whether each is usable.

tesseract requires the tesseract and pdftoppm binaries on PATH; remote
requires OCR_SERVER_URL (env, .env or config).`,
	Args: cobra.NoArgs,
	RunE: runEngines,
}

func runEngines(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg := mustLoadConfig()
	statuses := ocr.NewCache().Statuses(cfg.OCRDevice)

	if humanOutput {
		for _, s := range statuses {
			state := "unavailable"
			if s.Available {
				state = "available"
			}
			outputHuman("%-12s %s\n", s.Name, state)
		}
	} else {
		outputJSON(statuses)
	}
	return nil
}
