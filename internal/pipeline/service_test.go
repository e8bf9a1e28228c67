package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/crm"
	"github.com/willowgate/transcriptd/internal/extraction"
	"github.com/willowgate/transcriptd/internal/recap"
	"github.com/willowgate/transcriptd/internal/social"
	"github.com/willowgate/transcriptd/internal/validation"
	"github.com/willowgate/transcriptd/internal/vectorstore"
)

const closedWonTranscript = `Advisor: Thanks for joining me today. Where are you located?
Client: We're in South Carolina, just outside Charleston.
Advisor: Tell me about your family.
Client: My wife and I have 2 sons and 1 daughter. The boys are in college.
Advisor: And what would you estimate your total estate is worth?
Client: All in, around $2.5 million including the house.
Advisor: We can structure a revocable living trust for that.
Client: Let's do it. Sign me up.`

type savedRow struct {
	tableID int
	row     crm.Row
}

type stubRows struct {
	mu    sync.Mutex
	saves []savedRow
	err   error
}

func (s *stubRows) SaveRow(ctx context.Context, tableID int, row crm.Row) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return 0, s.err
	}
	s.saves = append(s.saves, savedRow{tableID: tableID, row: row})
	return 42, nil
}

func (s *stubRows) UpdateRow(ctx context.Context, tableID, rowID int, row crm.Row) error {
	return nil
}

func (s *stubRows) Health(ctx context.Context) error { return nil }

func (s *stubRows) saved() []savedRow {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]savedRow(nil), s.saves...)
}

type stubVectors struct {
	mu   sync.Mutex
	docs []vectorstore.Document
	err  error
}

func (s *stubVectors) AddDocuments(ctx context.Context, docs []vectorstore.Document) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.docs = append(s.docs, docs...)
	ids := make([]string, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids, nil
}

func (s *stubVectors) Search(ctx context.Context, collection, query string, k int) ([]vectorstore.SearchResult, error) {
	return nil, nil
}

func (s *stubVectors) CreateCollection(ctx context.Context, collection string, vectorSize int) error {
	return nil
}

func (s *stubVectors) CollectionExists(ctx context.Context, collection string) (bool, error) {
	return true, nil
}

func (s *stubVectors) Close() error { return nil }

func testConfig() config.Config {
	var cfg config.Config
	cfg.CRM.ClientsTable = 100
	cfg.CRM.ReviewTable = 200
	cfg.Pipeline.MaxReprocess = 1
	cfg.Validation.Thresholds = validation.DefaultThresholds()
	return cfg
}

func newTestService(t *testing.T, rows *stubRows, vectors *stubVectors) *Service {
	t.Helper()

	validator, err := validation.NewValidator(nil)
	require.NoError(t, err)

	deps := Deps{
		Extractor: extraction.NewExtractor(nil, nil),
		Validator: validator,
		Rows:      rows,
		RecapGen:  recap.NewGenerator("Testfirm Legal"),
		SocialGen: social.NewGenerator([]string{"linkedin"}, "Testfirm Legal"),
	}
	if vectors != nil {
		deps.Vectors = vectors
	}
	svc, err := NewService(testConfig(), deps)
	require.NoError(t, err)
	return svc
}

func TestService_ProcessClosedWon(t *testing.T) {
	rows := &stubRows{}
	vectors := &stubVectors{}
	svc := newTestService(t, rows, vectors)

	result, err := svc.Process(context.Background(), closedWonTranscript, "Sarah Chen")
	require.NoError(t, err)

	assert.Equal(t, validation.AutoApprove, result.Report.Recommendation)
	assert.Equal(t, "Closed Won", result.Record.Text("meeting_stage"))
	assert.Equal(t, "SC", result.Record.Text("state"))
	assert.Equal(t, 42, result.RowID)

	saves := rows.saved()
	require.Len(t, saves, 1)
	assert.Equal(t, 100, saves[0].tableID, "approved records go to the clients table")
	assert.Equal(t, "Processed", saves[0].row["processing_status"])

	require.NotNil(t, result.Recap)
	assert.Contains(t, result.Recap.Subject, "Welcome aboard")
	assert.False(t, result.RecapSent, "no client email on record")

	require.Len(t, result.Posts, 1, "married with children yields a family post")

	require.Len(t, vectors.docs, 1)
	assert.Equal(t, vectorstore.TranscriptCollection, vectors.docs[0].Collection)
	assert.Contains(t, vectors.docs[0].Content, "Sarah Chen")
}

func TestService_SparseTranscriptIsRejected(t *testing.T) {
	rows := &stubRows{}
	svc := newTestService(t, rows, nil)

	result, err := svc.Process(context.Background(), "Nobody said anything useful.", "Dana Fox")
	require.NoError(t, err)

	assert.Equal(t, validation.RejectAndReprocess, result.Report.Recommendation,
		"scoring below the minimum triggers re-extraction, not review")
	assert.False(t, result.Reprocessed, "deterministic re-extraction yields the same record")

	saves := rows.saved()
	require.Len(t, saves, 1)
	assert.Equal(t, 200, saves[0].tableID, "low-quality records go to the review table")
	assert.Equal(t, "Reprocessing", saves[0].row["processing_status"])
	assert.NotEmpty(t, result.ActionItems)
}

func TestService_MissingClientNameIsRejected(t *testing.T) {
	rows := &stubRows{}
	svc := newTestService(t, rows, nil)

	result, err := svc.Process(context.Background(), closedWonTranscript, "")
	require.NoError(t, err)

	assert.Equal(t, validation.RejectAndReprocess, result.Report.Recommendation)
	assert.False(t, result.Reprocessed, "deterministic re-extraction cannot recover a missing name")

	saves := rows.saved()
	require.Len(t, saves, 1)
	assert.Equal(t, 200, saves[0].tableID)
}

func TestService_SaveFailureAbortsRun(t *testing.T) {
	rows := &stubRows{err: errors.New("baserow down")}
	vectors := &stubVectors{}
	svc := newTestService(t, rows, vectors)

	result, err := svc.Process(context.Background(), closedWonTranscript, "Sarah Chen")
	require.Error(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, vectors.docs, "no indexing after a failed save")
}

func TestService_IndexedExcerptEndsOnRuneBoundary(t *testing.T) {
	rows := &stubRows{}
	vectors := &stubVectors{}
	svc := newTestService(t, rows, vectors)

	// A two-byte rune straddles the excerpt limit.
	transcript := strings.Repeat("a", transcriptExcerptLimit-1) + strings.Repeat("é", 40)
	_, err := svc.Process(context.Background(), transcript, "Grace Lee")
	require.NoError(t, err)

	require.Len(t, vectors.docs, 1)
	assert.True(t, utf8.ValidString(vectors.docs[0].Content),
		"trimming must never split a multi-byte rune")
}

func TestService_SideChannelFailuresAreAbsorbed(t *testing.T) {
	rows := &stubRows{}
	vectors := &stubVectors{err: errors.New("qdrant unreachable")}
	svc := newTestService(t, rows, vectors)

	_, err := svc.Process(context.Background(), closedWonTranscript, "Sarah Chen")
	require.NoError(t, err, "vector indexing failure does not fail the run")
	require.Len(t, rows.saved(), 1)
}

func TestNewService_RequiresCoreDeps(t *testing.T) {
	validator, err := validation.NewValidator(nil)
	require.NoError(t, err)

	_, err = NewService(testConfig(), Deps{Validator: validator})
	assert.Error(t, err)

	_, err = NewService(testConfig(), Deps{Extractor: extraction.NewExtractor(nil, nil)})
	assert.Error(t, err)
}
