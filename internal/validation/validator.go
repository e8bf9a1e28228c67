package validation

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/willowgate/transcriptd/internal/record"
)

var (
	nameJunkPattern     = regexp.MustCompile(`[^\w\s\-.]`)
	currencyJunkPattern = regexp.MustCompile(`[^\d.,kmbKMB]`)
)

// Validator evaluates records against a fixed catalog. It is stateless
// beyond the catalog and safe for concurrent use.
type Validator struct {
	catalog *Catalog
}

// NewValidator builds a validator for the given catalog. A nil catalog
// selects DefaultCatalog. Threshold ordering is checked here so a
// misconfigured deployment fails at startup.
func NewValidator(catalog *Catalog) (*Validator, error) {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	if err := catalog.Thresholds.Validate(); err != nil {
		return nil, err
	}
	return &Validator{catalog: catalog}, nil
}

// Catalog returns the rule set this validator evaluates against.
func (v *Validator) Catalog() *Catalog {
	return v.catalog
}

// Validate scores one record. It never returns an error and never panics:
// an internal fault (a panicking consistency predicate, malformed data the
// accessors did not anticipate) degrades to a zero-score report with the
// fault recorded in Errors and a manual_review recommendation.
func (v *Validator) Validate(rec record.Record) (report Report) {
	defer func() {
		if r := recover(); r != nil {
			report = Report{
				GeneratedAt:     time.Now().UTC(),
				OverallScore:    0,
				QualityLevel:    QualityFailed,
				Recommendation:  ManualReview,
				AutoCorrections: map[string]Correction{},
				Errors:          []string{fmt.Sprintf("validation fault: %v", r)},
			}
		}
	}()

	report = Report{
		GeneratedAt:     time.Now().UTC(),
		AutoCorrections: map[string]Correction{},
	}

	report.FieldValidation = v.validateFields(rec)
	report.LogicalValidation = v.validateConsistency(rec)
	report.Completeness = v.analyzeCompleteness(rec)
	report.OverallScore = v.score(rec, report)
	report.QualityLevel = v.qualityLevel(report.OverallScore)
	report.Recommendation = v.recommend(report)
	report.AutoCorrections = v.proposeCorrections(rec)
	return report
}

// validateFields runs the required, format, range and enum checks. A field
// failing more than one check keeps only its last failure reason; the check
// order is fixed so results are deterministic.
func (v *Validator) validateFields(rec record.Record) FieldValidation {
	fv := FieldValidation{Errors: map[string]string{}}

	required := make([]string, 0, len(v.catalog.Critical)+len(v.catalog.Important))
	required = append(required, v.catalog.Critical...)
	required = append(required, v.catalog.Important...)
	for _, field := range required {
		if rec.Filled(field) {
			fv.Passed++
		} else {
			fv.Failed++
			fv.Errors[field] = "missing required field"
		}
	}

	for _, kind := range sortedKeys(v.catalog.Formats) {
		pattern := v.catalog.Formats[kind]
		for _, field := range sortedRecordKeys(rec) {
			if !strings.Contains(field, kind) &&
				!(kind == "currency" && strings.Contains(field, "value")) {
				continue
			}
			if !rec.Filled(field) {
				continue
			}
			if !pattern.MatchString(rec.Text(field)) {
				fv.Failed++
				fv.Errors[field] = fmt.Sprintf("invalid %s format", kind)
			}
		}
	}

	for _, field := range sortedKeys(v.catalog.Ranges) {
		if _, ok := rec.Get(field); !ok {
			continue
		}
		bounds := v.catalog.Ranges[field]
		value, ok := rec.Float(field)
		if !ok || value < bounds.Min || value > bounds.Max {
			fv.Failed++
			fv.Errors[field] = fmt.Sprintf("value out of range (%g-%g)", bounds.Min, bounds.Max)
		}
	}

	for _, field := range sortedKeys(v.catalog.Enums) {
		if !rec.Filled(field) {
			continue
		}
		allowed := v.catalog.Enums[field]
		if !slices.Contains(allowed, rec.Text(field)) {
			fv.Failed++
			fv.Errors[field] = "invalid value, expected: " + strings.Join(allowed, ", ")
		}
	}

	return fv
}

func (v *Validator) validateConsistency(rec record.Record) LogicalValidation {
	lv := LogicalValidation{Inconsistencies: map[string]string{}}
	for _, rule := range v.catalog.Consistency {
		if rule.Check(rec) {
			lv.Passed++
		} else {
			lv.Failed++
			lv.Inconsistencies[rule.Name] = rule.Description
		}
	}
	return lv
}

func (v *Validator) analyzeCompleteness(rec record.Record) Completeness {
	c := Completeness{
		Critical:  countTier(rec, v.catalog.Critical),
		Important: countTier(rec, v.catalog.Important),
		Optional:  countTier(rec, v.catalog.Optional),
	}
	total := c.Critical.Total + c.Important.Total + c.Optional.Total
	completed := c.Critical.Completed + c.Important.Completed + c.Optional.Completed
	if total > 0 {
		c.OverallPercentage = int(math.Round(100 * float64(completed) / float64(total)))
	}
	return c
}

func countTier(rec record.Record, fields []string) TierCompleteness {
	tc := TierCompleteness{Total: len(fields)}
	for _, field := range fields {
		if rec.Filled(field) {
			tc.Completed++
		}
	}
	return tc
}

// score combines the three dimensions with fixed weights (0.4 field
// accuracy, 0.3 logical consistency, 0.3 completeness), then applies a
// multiplicative penalty for missing critical fields so no amount of
// optional data can mask an unusable record.
func (v *Validator) score(rec record.Record, report Report) int {
	fieldChecks := report.FieldValidation.Passed + report.FieldValidation.Failed
	fieldAccuracy := 0.0
	if fieldChecks > 0 {
		fieldAccuracy = 100 * float64(report.FieldValidation.Passed) / float64(fieldChecks)
	}

	logicalChecks := report.LogicalValidation.Passed + report.LogicalValidation.Failed
	consistency := 100.0
	if logicalChecks > 0 {
		consistency = 100 * float64(report.LogicalValidation.Passed) / float64(logicalChecks)
	}

	completeness := float64(report.Completeness.OverallPercentage)

	score := 0.4*fieldAccuracy + 0.3*consistency + 0.3*completeness

	if report.Completeness.Critical.Total > 0 {
		criticalRatio := float64(report.Completeness.Critical.Completed) /
			float64(report.Completeness.Critical.Total)
		if criticalRatio < 1 {
			score *= criticalRatio
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return int(math.Round(score))
}

func (v *Validator) qualityLevel(score int) QualityLevel {
	t := v.catalog.Thresholds
	switch {
	case score >= t.HighConfidenceScore:
		return QualityExcellent
	case score >= t.AutoApproveScore:
		return QualityGood
	case score >= t.MinimumScore:
		return QualityAcceptable
	default:
		return QualityPoor
	}
}

// recommend maps the report onto a workflow route. Mid-band records with
// concrete field or logic failures go to correction; mid-band records that
// score low on completeness alone have nothing mechanical to fix and go to
// a human instead.
func (v *Validator) recommend(report Report) Recommendation {
	t := v.catalog.Thresholds
	switch {
	case report.OverallScore >= t.AutoApproveScore:
		return AutoApprove
	case report.OverallScore >= t.MinimumScore:
		if report.FieldValidation.Failed+report.LogicalValidation.Failed > 0 {
			return ReviewAndCorrect
		}
		return ManualReview
	default:
		return RejectAndReprocess
	}
}

// proposeCorrections suggests mechanical cleanups for string fields:
// stripping junk characters from names, standardizing spelled-out states to
// postal codes, and removing non-monetary characters from currency values.
// Suggestions never touch the record itself.
func (v *Validator) proposeCorrections(rec record.Record) map[string]Correction {
	corrections := map[string]Correction{}
	for _, field := range sortedRecordKeys(rec) {
		value, ok := rec.String(field)
		if !ok {
			continue
		}

		switch {
		case strings.Contains(field, "name"):
			cleaned := strings.TrimSpace(nameJunkPattern.ReplaceAllString(value, ""))
			if cleaned != value && cleaned != "" {
				corrections[field] = Correction{
					Original:  value,
					Corrected: cleaned,
					Reason:    "removed invalid characters",
				}
			}

		case field == "state" && len(value) > 2:
			if code, ok := v.catalog.States[strings.ToLower(strings.TrimSpace(value))]; ok {
				corrections[field] = Correction{
					Original:  value,
					Corrected: code,
					Reason:    "standardized state code",
				}
			}

		case strings.Contains(field, "value") || strings.Contains(field, "estate"):
			cleaned := strings.TrimSpace(currencyJunkPattern.ReplaceAllString(value, ""))
			if cleaned != value && cleaned != "" {
				corrections[field] = Correction{
					Original:  value,
					Corrected: cleaned,
					Reason:    "cleaned currency format",
				}
			}
		}
	}
	return corrections
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedRecordKeys(rec record.Record) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
