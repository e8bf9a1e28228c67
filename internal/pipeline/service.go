// Package pipeline orchestrates the transcript-to-CRM flow: hybrid
// extraction, validation, recommendation routing, CRM persistence, recap and
// social content generation, and vector indexing of the processed meeting.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/crm"
	"github.com/willowgate/transcriptd/internal/extraction"
	"github.com/willowgate/transcriptd/internal/logging"
	"github.com/willowgate/transcriptd/internal/recap"
	"github.com/willowgate/transcriptd/internal/record"
	"github.com/willowgate/transcriptd/internal/social"
	"github.com/willowgate/transcriptd/internal/validation"
	"github.com/willowgate/transcriptd/internal/vectorstore"
)

// transcriptExcerptLimit caps how much raw transcript text is indexed.
const transcriptExcerptLimit = 1500

// Result is the outcome of one pipeline run.
type Result struct {
	JobID       string             `json:"job_id"`
	ClientName  string             `json:"client_name"`
	Record      record.Record      `json:"record"`
	Report      validation.Report  `json:"report"`
	Reprocessed bool               `json:"reprocessed"`
	RowID       int                `json:"row_id,omitempty"`
	Recap       *recap.Email       `json:"recap,omitempty"`
	RecapSent   bool               `json:"recap_sent"`
	Posts       []social.Post      `json:"posts,omitempty"`
	ActionItems []string           `json:"action_items,omitempty"`
}

// Deps are the collaborators a Service orchestrates. Rows, Vectors,
// RecapSender, and the generators may be nil; the corresponding stage is
// skipped.
type Deps struct {
	Extractor   *extraction.Extractor
	Validator   *validation.Validator
	Rows        crm.RowStore
	Vectors     vectorstore.Store
	RecapGen    *recap.Generator
	RecapSender recap.Sender
	SocialGen   *social.Generator
	Logger      *logging.Logger
}

// Service runs the full pipeline for one transcript at a time.
type Service struct {
	deps   Deps
	logger *logging.Logger

	clientsTable int
	reviewTable  int
	maxReprocess int
	minimumScore int
}

// NewService wires a pipeline service from config and collaborators.
func NewService(cfg config.Config, deps Deps) (*Service, error) {
	if deps.Extractor == nil {
		return nil, fmt.Errorf("extractor is required")
	}
	if deps.Validator == nil {
		return nil, fmt.Errorf("validator is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	maxReprocess := cfg.Pipeline.MaxReprocess
	if maxReprocess < 0 {
		maxReprocess = 0
	}

	return &Service{
		deps:         deps,
		logger:       logger.Named("pipeline"),
		clientsTable: cfg.CRM.ClientsTable,
		reviewTable:  cfg.CRM.ReviewTable,
		maxReprocess: maxReprocess,
		minimumScore: cfg.Validation.Thresholds.MinimumScore,
	}, nil
}

// Process runs one transcript through the full pipeline.
//
// Extraction and validation never fail; routing follows the report's
// recommendation. Only a CRM save failure aborts the run. Recap, social, and
// vector indexing failures are logged and absorbed so a flaky side channel
// cannot lose a processed meeting.
func (s *Service) Process(ctx context.Context, transcript, clientName string) (*Result, error) {
	start := time.Now()
	jobID := uuid.NewString()
	ctx = logging.WithTranscriptID(ctx, jobID)

	result := &Result{JobID: jobID, ClientName: clientName}

	rec := s.deps.Extractor.Extract(ctx, transcript, clientName)
	report := s.deps.Validator.Validate(rec)

	rec, report = s.route(ctx, transcript, clientName, rec, report, result)
	result.Record = rec
	result.Report = report
	result.ActionItems = report.ActionItems(s.minimumScore)

	if err := s.saveRow(ctx, rec, &report, result); err != nil {
		ProcessingErrors.Inc()
		return result, err
	}

	s.generateRecap(ctx, rec, result)
	s.generateSocial(rec, result)
	s.indexTranscript(ctx, transcript, rec, &report, result)

	TranscriptsProcessed.WithLabelValues(string(report.Recommendation)).Inc()
	QualityScores.Observe(float64(report.OverallScore))
	ProcessingDuration.Observe(time.Since(start).Seconds())

	s.logger.Info(ctx, "transcript processed",
		zap.String("client", clientName),
		zap.Int("score", report.OverallScore),
		zap.String("recommendation", string(report.Recommendation)),
		zap.Bool("reprocessed", result.Reprocessed))

	return result, nil
}

// route applies the recommendation-specific recovery paths: corrected
// records get one re-validation, rejected ones get bounded re-extraction.
func (s *Service) route(ctx context.Context, transcript, clientName string, rec record.Record, report validation.Report, result *Result) (record.Record, validation.Report) {
	switch report.Recommendation {
	case validation.ReviewAndCorrect:
		if len(report.AutoCorrections) == 0 {
			return rec, report
		}
		corrected := validation.ApplyCorrections(rec, report.AutoCorrections)
		revalidated := s.deps.Validator.Validate(corrected)
		if revalidated.OverallScore >= report.OverallScore {
			s.logger.Info(ctx, "auto-corrections applied",
				zap.Int("corrections", len(report.AutoCorrections)),
				zap.Int("score_before", report.OverallScore),
				zap.Int("score_after", revalidated.OverallScore))
			return corrected, revalidated
		}
		return rec, report

	case validation.RejectAndReprocess:
		for attempt := 1; attempt <= s.maxReprocess; attempt++ {
			s.logger.Warn(ctx, "re-extracting rejected transcript",
				zap.Int("attempt", attempt))
			retried := s.deps.Extractor.Extract(ctx, transcript, clientName)
			retriedReport := s.deps.Validator.Validate(retried)
			if retriedReport.Recommendation != validation.RejectAndReprocess {
				result.Reprocessed = true
				return retried, retriedReport
			}
		}
		return rec, report

	default:
		return rec, report
	}
}

// saveRow persists the record. Rows needing human attention go to the
// review table when one is configured.
func (s *Service) saveRow(ctx context.Context, rec record.Record, report *validation.Report, result *Result) error {
	if s.deps.Rows == nil {
		return nil
	}

	tableID := s.clientsTable
	switch report.Recommendation {
	case validation.ManualReview, validation.RejectAndReprocess:
		if s.reviewTable > 0 {
			tableID = s.reviewTable
		}
	}

	row := crm.MapRow(rec, report)
	rowID, err := s.deps.Rows.SaveRow(ctx, tableID, row)
	if err != nil {
		return fmt.Errorf("saving row to table %d: %w", tableID, err)
	}
	result.RowID = rowID
	return nil
}

func (s *Service) generateRecap(ctx context.Context, rec record.Record, result *Result) {
	if s.deps.RecapGen == nil {
		return
	}

	email, err := s.deps.RecapGen.Generate(rec)
	if err != nil {
		// No Show and unknown stages have no recap.
		s.logger.Debug(ctx, "no recap generated", zap.Error(err))
		return
	}
	result.Recap = &email

	to := rec.Text("client_email")
	if s.deps.RecapSender == nil || to == "" {
		return
	}
	if err := s.deps.RecapSender.Send(ctx, to, email); err != nil {
		s.logger.Error(ctx, "failed to send recap", zap.Error(err))
		return
	}
	result.RecapSent = true
}

func (s *Service) generateSocial(rec record.Record, result *Result) {
	if s.deps.SocialGen == nil {
		return
	}
	result.Posts = s.deps.SocialGen.Generate(rec)
}

// indexTranscript upserts a searchable summary of the processed meeting.
func (s *Service) indexTranscript(ctx context.Context, transcript string, rec record.Record, report *validation.Report, result *Result) {
	if s.deps.Vectors == nil {
		return
	}

	excerpt := transcript
	if len(excerpt) > transcriptExcerptLimit {
		// Back up to a rune boundary so the cut never splits a UTF-8 sequence.
		cut := transcriptExcerptLimit
		for cut > 0 && !utf8.RuneStart(excerpt[cut]) {
			cut--
		}
		excerpt = excerpt[:cut]
	}

	var summary strings.Builder
	fmt.Fprintf(&summary, "client: %s. outcome: %s.",
		rec.Text("client_name"), rec.Text("meeting_stage"))
	if v := rec.Text("estate_value"); v != "" {
		fmt.Fprintf(&summary, " estate value: %s.", v)
	}
	if v := rec.Text("state"); v != "" {
		fmt.Fprintf(&summary, " state: %s.", v)
	}
	fmt.Fprintf(&summary, "\n%s", excerpt)

	doc := vectorstore.Document{
		ID:      result.JobID,
		Content: summary.String(),
		Metadata: map[string]any{
			"client_name":    rec.Text("client_name"),
			"meeting_stage":  rec.Text("meeting_stage"),
			"quality_score":  report.OverallScore,
			"recommendation": string(report.Recommendation),
		},
		Collection: vectorstore.TranscriptCollection,
	}

	if _, err := s.deps.Vectors.AddDocuments(ctx, []vectorstore.Document{doc}); err != nil {
		s.logger.Error(ctx, "failed to index transcript", zap.Error(err))
	}
}
