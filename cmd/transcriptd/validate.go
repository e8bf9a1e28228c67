package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/willowgate/transcriptd/internal/record"
)

var validateCmd = &cobra.Command{
	Use:   "validate <record.json>",
	Short: "Score an extracted record without processing it",
	Long: `Validate a JSON record against the quality catalog and print the report.

Pass "-" to read the record from stdin:
  echo '{"client_name": "Sarah Chen", "meeting_stage": "Closed Won"}' | transcriptd validate -`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	var data []byte
	if args[0] == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("reading record: %w", err)
	}

	var rec record.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("parsing record: %w", err)
	}

	report := a.validator.Validate(rec)
	if err := printJSON(report); err != nil {
		return err
	}

	if report.OverallScore < a.cfg.Validation.Thresholds.MinimumScore {
		return fmt.Errorf("record scored %d, below minimum %d",
			report.OverallScore, a.cfg.Validation.Thresholds.MinimumScore)
	}
	return nil
}
