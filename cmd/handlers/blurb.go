package handlers

import (
	"fmt"

	"github.com/spf13/cobra"

	"ecocubano/internal/analysis"
	"ecocubano/internal/config"
	"ecocubano/internal/ingest"
	"ecocubano/internal/store"
)

// NewBlurbCmd creates the blurb command: a tweet-style summary of one news
// item's comment thread.
func NewBlurbCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "blurb <news title>",
		Short: "Print a tweet-style summary of one news item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBlurb(input, args[0])
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "path to the JSON export (default from config)")

	return cmd
}

func runBlurb(input, title string) error {
	cfg := config.Get()
	if input == "" {
		input = cfg.Data.File
	}

	st := store.New(input, ingest.Options{Category: cfg.Data.Category, StrictDates: cfg.Data.StrictDates})
	ds, err := st.Dataset()
	if err != nil {
		return err
	}

	blurb := analysis.New(cfg.Analysis.Locale).Blurb(ds, title)
	if blurb == "" {
		return fmt.Errorf("no comments found for news title %q", title)
	}
	fmt.Println(blurb)
	return nil
}
