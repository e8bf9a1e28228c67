package extraction

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/logging"
	"github.com/willowgate/transcriptd/internal/record"
)

// minModelConfidence is the self-reported confidence (1-10) below which a
// model-supplied value is discarded.
const minModelConfidence = 7

// Extractor combines pattern matching with model verification. Patterns run
// first and their results are final; the model is consulted only for fields
// the patterns left empty, and its answers are kept only above a confidence
// floor. A failing model degrades extraction to pattern results, it never
// fails it.
type Extractor struct {
	gen    Generator
	logger *logging.Logger
}

// NewExtractor builds an extractor. gen may be nil to run patterns only.
func NewExtractor(gen Generator, logger *logging.Logger) *Extractor {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Extractor{gen: gen, logger: logger.Named("extraction")}
}

type verificationResult struct {
	VerifiedData map[string]any     `json:"verified_data"`
	Confidence   map[string]float64 `json:"confidence"`
}

// Extract produces a client record from a transcript.
func (e *Extractor) Extract(ctx context.Context, transcript, clientName string) record.Record {
	found := map[string]any{}
	var missing []string

	if state := ExtractState(transcript); state != "" {
		found["state"] = state
	} else {
		missing = append(missing, "state")
	}
	if age := ExtractAge(transcript); age > 0 {
		found["age"] = age
	} else {
		missing = append(missing, "age")
	}
	if status := ExtractMaritalStatus(transcript); status != "" {
		found["marital_status"] = status
	} else {
		missing = append(missing, "marital_status")
	}
	if count := ExtractChildrenCount(transcript); count >= 0 {
		found["children_count"] = count
	} else {
		missing = append(missing, "children_count")
	}
	if value := ExtractEstateValue(transcript); value > 0 {
		found["estate_value"] = value
	} else {
		missing = append(missing, "estate_value")
	}
	if outcome := ExtractMeetingOutcome(transcript); outcome != "" {
		found["meeting_stage"] = outcome
	} else {
		missing = append(missing, "meeting_stage")
	}

	e.logger.Debug(ctx, "pattern pass complete",
		zap.Int("found", len(found)),
		zap.Strings("missing", missing))

	if len(missing) > 0 && e.gen != nil {
		e.verifyWithModel(ctx, transcript, found, missing)
	}

	rec := record.Record{"client_name": clientName}
	for field, value := range found {
		rec[field] = value
	}

	// Structural defaults for downstream routing. Unknown facts stay
	// absent; the validator charges completeness for them instead of us
	// inventing values.
	if _, ok := rec["meeting_stage"]; !ok {
		rec["meeting_stage"] = "Follow Up"
	}
	if _, ok := rec["urgency_score"]; !ok {
		rec["urgency_score"] = 5
	}
	rec["follow_up_required"] = rec["meeting_stage"] == "Follow Up"

	return rec
}

// verifyWithModel asks the model to fill missing fields, merging only
// high-confidence answers into found.
func (e *Extractor) verifyWithModel(ctx context.Context, transcript string, found map[string]any, missing []string) {
	prompt := buildVerificationPrompt(found, missing, transcript)

	completion, err := e.gen.Generate(ctx, prompt)
	if err != nil {
		e.logger.Warn(ctx, "model verification failed, keeping pattern results", zap.Error(err))
		return
	}

	raw, err := ExtractJSON(completion)
	if err != nil {
		e.logger.Warn(ctx, "model returned unusable JSON", zap.Error(err))
		return
	}

	var result verificationResult
	if err := json.Unmarshal(raw, &result); err != nil {
		e.logger.Warn(ctx, "model JSON did not match expected shape", zap.Error(err))
		return
	}

	wanted := make(map[string]bool, len(missing))
	for _, field := range missing {
		wanted[field] = true
	}

	for field, value := range result.VerifiedData {
		if !wanted[field] || value == nil {
			continue
		}
		confidence := result.Confidence[field]
		if confidence < minModelConfidence {
			e.logger.Debug(ctx, "discarding low-confidence model value",
				zap.String("field", field),
				zap.Float64("confidence", confidence))
			continue
		}
		found[field] = value
	}
}
