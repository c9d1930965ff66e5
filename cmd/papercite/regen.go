package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/wlin-papers/papercite/internal/meta"
)

var (
	regenFormat   string
	regenNAuthors int
)

func init() {
	regenCmd.Flags().StringVar(&regenFormat, "format", "", "Author format (first_surname, all_surnames, ...)")
	regenCmd.Flags().IntVar(&regenNAuthors, "n-authors", 0, "Author count for n_surnames/n_full formats")
	rootCmd.AddCommand(regenCmd)
}

var regenCmd = &cobra.Command{
	Use:   "regen",
	Short: "Regenerate a filename from an edited paper record on stdin",
	Long: `Read a paper record as JSON from stdin, rebuild its filename from
the (possibly hand-edited) title, authors and year, and print the
updated record.

Example:
  papercite scan paper.pdf | jq '.papers[0] | .title = "Fixed Title"' \
    | papercite regen`,
	Args: cobra.NoArgs,
	RunE: runRegen,
}

func runRegen(cmd *cobra.Command, args []string) error {
	var paper meta.Paper
	if err := json.NewDecoder(os.Stdin).Decode(&paper); err != nil {
		exitWithError(ExitDataError, "parsing record from stdin: %v", err)
	}

	cfg := mustLoadConfig()
	p := newProcessor(cfg, regenFormat, regenNAuthors, 0)
	p.Regenerate(&paper)

	if humanOutput {
		outputHuman("%s\n", paper.NewFilename)
	} else {
		outputJSON(&paper)
	}
	return nil
}
