package handlers

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ecocubano/internal/config"
	"ecocubano/internal/ingest"
)

// NewValidateCmd creates the validate command: a structural check of an
// export file without running any analysis.
func NewValidateCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a JSON comment export",
		Long: `Check that an export file parses, has the required structure, and report
how many records the two pipeline variants would produce.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(input)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "path to the JSON export (default from config)")

	return cmd
}

func runValidate(input string) error {
	if input == "" {
		input = config.Get().Data.File
	}

	raw, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}

	general, err := ingest.Normalize(raw, ingest.Options{})
	if err != nil {
		var parseErr *ingest.ParseError
		var schemaErr *ingest.SchemaError
		switch {
		case errors.As(err, &parseErr):
			return fmt.Errorf("%s is not valid JSON: %w", input, parseErr.Err)
		case errors.As(err, &schemaErr):
			return fmt.Errorf("%s: %w", input, schemaErr)
		default:
			return err
		}
	}

	politics, _ := ingest.Normalize(raw, ingest.Options{Category: "politica", StrictDates: true})

	undated := 0
	for _, r := range general {
		if !r.HasDate() {
			undated++
		}
	}

	fmt.Printf("%s: OK\n", input)
	fmt.Printf("  Registros (pipeline general):  %d (%d sin fecha)\n", len(general), undated)
	fmt.Printf("  Registros (pipeline político): %d\n", len(politics))
	return nil
}
