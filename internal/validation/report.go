package validation

import (
	"fmt"
	"time"
)

// QualityLevel classifies an overall score into a band.
type QualityLevel string

const (
	QualityPoor       QualityLevel = "poor"
	QualityAcceptable QualityLevel = "acceptable"
	QualityGood       QualityLevel = "good"
	QualityExcellent  QualityLevel = "excellent"

	// QualityFailed is only produced by the internal-fault degradation path,
	// never by threshold banding.
	QualityFailed QualityLevel = "failed"
)

// Recommendation is the workflow routing decision downstream automation
// acts on.
type Recommendation string

const (
	AutoApprove        Recommendation = "auto_approve"
	ReviewAndCorrect   Recommendation = "review_and_correct"
	ManualReview       Recommendation = "manual_review"
	RejectAndReprocess Recommendation = "reject_and_reprocess"
)

// FieldValidation tallies field-level checks. Errors maps field name to the
// reason of its most recent failure (required, format, range, enum order).
type FieldValidation struct {
	Passed int               `json:"passed"`
	Failed int               `json:"failed"`
	Errors map[string]string `json:"errors"`
}

// LogicalValidation tallies consistency rules. Inconsistencies maps rule
// name to the rule description for every failed rule.
type LogicalValidation struct {
	Passed          int               `json:"passed"`
	Failed          int               `json:"failed"`
	Inconsistencies map[string]string `json:"inconsistencies"`
}

// TierCompleteness counts filled fields within one required-field tier.
type TierCompleteness struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

// Completeness summarizes how much of the expected data was extracted.
type Completeness struct {
	Critical          TierCompleteness `json:"critical_fields"`
	Important         TierCompleteness `json:"important_fields"`
	Optional          TierCompleteness `json:"optional_fields"`
	OverallPercentage int              `json:"overall_percentage"`
}

// Correction is a proposed field rewrite. Proposals are never applied
// silently; ApplyCorrections does that explicitly on a copy.
type Correction struct {
	Original  string `json:"original"`
	Corrected string `json:"corrected"`
	Reason    string `json:"reason"`
}

// Report is the value object produced by one Validate call. It is
// serializable to flat JSON for storage and logging and is never mutated
// after return.
type Report struct {
	GeneratedAt       time.Time             `json:"timestamp"`
	OverallScore      int                   `json:"overall_score"`
	QualityLevel      QualityLevel          `json:"quality_level"`
	Recommendation    Recommendation        `json:"recommendation"`
	FieldValidation   FieldValidation       `json:"field_validation"`
	LogicalValidation LogicalValidation     `json:"logical_validation"`
	Completeness      Completeness          `json:"completeness_analysis"`
	AutoCorrections   map[string]Correction `json:"auto_corrections"`

	// Errors records internal validation faults. Non-empty only on the
	// degraded path; field-level problems go in FieldValidation instead.
	Errors []string `json:"errors,omitempty"`
}

// ActionItems derives a human-readable task list from the report.
func (r *Report) ActionItems(minimumScore int) []string {
	var actions []string
	if r.FieldValidation.Failed > 0 {
		actions = append(actions, fmt.Sprintf("fix %d field validation errors", r.FieldValidation.Failed))
	}
	if r.LogicalValidation.Failed > 0 {
		actions = append(actions, fmt.Sprintf("resolve %d logical inconsistencies", r.LogicalValidation.Failed))
	}
	if r.Completeness.Critical.Completed < r.Completeness.Critical.Total {
		actions = append(actions, "complete missing critical fields")
	}
	if r.OverallScore < minimumScore {
		actions = append(actions, fmt.Sprintf("improve overall data quality (currently %d%%)", r.OverallScore))
	}
	return actions
}
