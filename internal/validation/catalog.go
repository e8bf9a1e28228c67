// Package validation implements the quality-scoring engine for extracted
// client records. A Validator evaluates one record against a RuleCatalog and
// produces a Report with an overall score, detected defects, a workflow
// recommendation and proposed auto-corrections. Validation never fails the
// pipeline: internal faults degrade the report instead of propagating.
package validation

import (
	"errors"
	"fmt"
	"regexp"

	"github.com/willowgate/transcriptd/internal/record"
)

// ErrInvalidThresholds indicates a misordered quality threshold configuration.
// It is the only error the validation package surfaces to callers; everything
// else is absorbed into the report.
var ErrInvalidThresholds = errors.New("invalid quality thresholds")

// Thresholds defines the score bands used for quality levels and routing.
type Thresholds struct {
	MinimumScore        int `koanf:"minimum_score" json:"minimum_score"`
	AutoApproveScore    int `koanf:"auto_approve_score" json:"auto_approve_score"`
	HighConfidenceScore int `koanf:"high_confidence_score" json:"high_confidence_score"`
}

// DefaultThresholds returns the standard score bands.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinimumScore:        60,
		AutoApproveScore:    85,
		HighConfidenceScore: 95,
	}
}

// Validate checks threshold ordering. Called eagerly at Validator
// construction so misconfiguration fails fast, not per-record.
func (t Thresholds) Validate() error {
	if t.MinimumScore < 0 || t.HighConfidenceScore > 100 {
		return fmt.Errorf("%w: scores must lie in [0,100], got %d/%d/%d",
			ErrInvalidThresholds, t.MinimumScore, t.AutoApproveScore, t.HighConfidenceScore)
	}
	if t.MinimumScore >= t.AutoApproveScore || t.AutoApproveScore >= t.HighConfidenceScore {
		return fmt.Errorf("%w: want minimum < auto_approve < high_confidence, got %d/%d/%d",
			ErrInvalidThresholds, t.MinimumScore, t.AutoApproveScore, t.HighConfidenceScore)
	}
	return nil
}

// Range is an inclusive numeric bound for a field.
type Range struct {
	Min float64
	Max float64
}

// ConsistencyRule is a named cross-field plausibility predicate. Check reads
// whatever fields it needs from the record and returns true when the record
// is consistent with the rule.
type ConsistencyRule struct {
	Name        string
	Description string
	Check       func(record.Record) bool
}

// Catalog is the immutable rule set a Validator evaluates records against.
// It is pure data: tiered required fields, format patterns, numeric ranges,
// enumerations, ordered consistency rules, a state gazetteer for
// auto-correction, and the score thresholds. Swapping catalogs never
// requires Validator changes.
type Catalog struct {
	// Required field tiers. Tier membership determines completeness
	// weighting and the critical-field penalty.
	Critical  []string
	Important []string
	Optional  []string

	// Formats maps a format kind (email, phone, date, state_code, currency)
	// to its pattern. A kind applies to any field whose name contains the
	// kind, with one special case: currency also applies to fields whose
	// name contains "value".
	Formats map[string]*regexp.Regexp

	// Ranges maps field name to an inclusive [min,max] bound.
	Ranges map[string]Range

	// Enums maps field name to the exact set of allowed string values.
	Enums map[string][]string

	// Consistency rules are evaluated in order against the full record.
	Consistency []ConsistencyRule

	// States maps lowercased state names to two-letter codes for the
	// state auto-correction.
	States map[string]string

	Thresholds Thresholds
}

// DefaultCatalog returns the estate-planning rule set.
func DefaultCatalog() *Catalog {
	return &Catalog{
		Critical:  []string{"client_name", "meeting_stage"},
		Important: []string{"estate_value", "marital_status", "state"},
		Optional:  []string{"urgency_score", "next_steps", "objections_raised"},

		Formats: map[string]*regexp.Regexp{
			"email":      regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`),
			"phone":      regexp.MustCompile(`^\+?[\d\s\-().]{10,}$`),
			"date":       regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
			"state_code": regexp.MustCompile(`^[A-Z]{2}$`),
			"currency":   regexp.MustCompile(`(?i)^\$?[\d,]+(\.\d{2})?[KMB]?$`),
		},

		Ranges: map[string]Range{
			"age":                  {Min: 18, Max: 120},
			"urgency_score":        {Min: 1, Max: 10},
			"estate_value_numeric": {Min: 0, Max: 1_000_000_000},
			"children_count":       {Min: 0, Max: 20},
		},

		Enums: map[string][]string{
			"meeting_stage":  {"Closed Won", "Closed Lost", "No Show", "Follow Up"},
			"marital_status": {"Single", "Married", "Divorced", "Widowed"},
			"entity_type":    {"LLC", "S-Corp", "C-Corp", "Partnership", "Trust", "Multiple", "None"},
		},

		Consistency: []ConsistencyRule{
			{
				Name:        "spouse_alignment",
				Description: "if marital_status is Married, spouse_name should be present",
				Check: func(r record.Record) bool {
					if r.Text("marital_status") == "Married" {
						return r.Filled("spouse_name")
					}
					return true
				},
			},
			{
				Name:        "business_entity_alignment",
				Description: "if business_owner is true, entity_type should not be None",
				Check: func(r record.Record) bool {
					if r.Truthy("business_owner") {
						return r.Filled("entity_type") && r.Text("entity_type") != "None"
					}
					return true
				},
			},
			{
				Name:        "children_beneficiary_alignment",
				Description: "if has_minor_children is true, num_beneficiaries should be > 0",
				Check: func(r record.Record) bool {
					if r.Truthy("has_minor_children") {
						return r.IntOr("num_beneficiaries", 0) > 0
					}
					return true
				},
			},
			{
				Name:        "estate_value_consistency",
				Description: "estate_value should be consistent with tax_planning_priority",
				Check: func(r record.Record) bool {
					value, _ := r.Get("estate_value")
					estate := ParseEstateValue(value)
					priority := r.Text("tax_planning_priority")
					if estate > 10_000_000 && priority != "critical" {
						return false
					}
					if estate < 1_000_000 && priority == "critical" {
						return false
					}
					return true
				},
			},
		},

		States:     StateGazetteer(),
		Thresholds: DefaultThresholds(),
	}
}
