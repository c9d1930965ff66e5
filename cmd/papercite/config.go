package main

import (
	"github.com/spf13/cobra"

	"github.com/wlin-papers/papercite/internal/config"
)

func init() {
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config [key] [value]",
	Short: "Get or set configuration values",
	Long: `Get or set configuration values.

Usage:
  papercite config                        # Show all config
  papercite config author_format          # Get specific value
  papercite config author_format all_surnames  # Set value
  papercite config fallback_year 2023     # Set fallback year

Keys:
  author_format   How authors appear in filenames
                  (first_surname, first_full, all_surnames, all_full,
                  n_surnames, n_full)
  n_authors       Author count for the n_* formats
  fallback_year   Year used when none can be extracted
  ocr_engine      OCR engine: auto, tesseract, remote or disabled
  ocr_device      Device preference for OCR: auto, cpu or gpu
  ocr_server_url  Remote OCR service base URL`,
	Args: cobra.MaximumNArgs(2),
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	// No args: show all config
	if len(args) == 0 {
		if humanOutput {
			for _, key := range config.Keys {
				value, _ := cfg.Get(key)
				outputHuman("%-15s %s\n", key, value)
			}
		} else {
			outputJSON(cfg.All())
		}
		return nil
	}

	key := args[0]

	// One arg: get specific value
	if len(args) == 1 {
		value, err := cfg.Get(key)
		if err != nil {
			exitWithError(ExitError, "%v", err)
		}
		if humanOutput {
			outputHuman("%s\n", value)
		} else {
			outputJSON(map[string]string{key: value})
		}
		return nil
	}

	// Two args: set value
	value := args[1]
	if err := cfg.Set(key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := config.SaveGlobalConfig(cfg); err != nil {
		exitWithError(ExitError, "saving config: %v", err)
	}

	if humanOutput {
		outputHuman("Updated %s to %s\n", key, value)
	} else {
		outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value})
	}
	return nil
}
