package crm

import (
	"sort"
	"strings"
	"time"

	"github.com/willowgate/transcriptd/internal/record"
	"github.com/willowgate/transcriptd/internal/validation"
)

// recordFields are the extracted fields carried into the CRM verbatim when
// present. Everything else on the record stays internal.
var recordFields = []string{
	"client_name",
	"meeting_stage",
	"state",
	"estate_value",
	"marital_status",
	"age",
	"children_count",
	"urgency_score",
	"next_steps",
	"objections_raised",
}

// MapRow builds the CRM row for a processed record. The quality verdict
// travels with the data so reviewers can sort by score without opening
// the full report.
func MapRow(rec record.Record, report *validation.Report) Row {
	row := Row{}
	for _, field := range recordFields {
		if v, ok := rec.Get(field); ok {
			row[field] = v
		}
	}

	row["follow_up_required"] = rec.Truthy("follow_up_required")
	row["processed_at"] = time.Now().UTC().Format(time.RFC3339)

	if report != nil {
		row["quality_score"] = report.OverallScore
		row["quality_level"] = string(report.QualityLevel)
		row["recommendation"] = string(report.Recommendation)
		row["processing_status"] = statusFor(report.Recommendation)
		if summary := issueSummary(report); summary != "" {
			row["validation_issues"] = summary
		}
	}

	return row
}

func statusFor(rec validation.Recommendation) string {
	switch rec {
	case validation.AutoApprove:
		return "Processed"
	case validation.ReviewAndCorrect, validation.ManualReview:
		return "Needs Review"
	default:
		return "Reprocessing"
	}
}

// issueSummary flattens validation problems into one human-readable cell.
func issueSummary(report *validation.Report) string {
	var parts []string
	for field, reason := range report.FieldValidation.Errors {
		parts = append(parts, field+": "+reason)
	}
	for rule, desc := range report.LogicalValidation.Inconsistencies {
		parts = append(parts, rule+": "+desc)
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
