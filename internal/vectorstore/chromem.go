package vectorstore

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"sync"

	chromem "github.com/philippgille/chromem-go"
	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/logging"
)

// ChromemStore implements Store with the embedded chromem-go database.
// An empty path keeps everything in memory, which the tests rely on.
type ChromemStore struct {
	db       *chromem.DB
	embedder Embedder
	logger   *logging.Logger

	collections sync.Map
}

// NewChromemStore opens (or creates) the embedded database.
func NewChromemStore(cfg config.ChromemConfig, embedder Embedder, logger *logging.Logger) (*ChromemStore, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder is required", ErrInvalidConfig)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	var db *chromem.DB
	if cfg.Path == "" {
		db = chromem.NewDB()
	} else {
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("creating directory %s: %w", cfg.Path, err)
		}
		persistent, err := chromem.NewPersistentDB(cfg.Path, cfg.Compress)
		if err != nil {
			return nil, fmt.Errorf("opening chromem DB: %w", err)
		}
		db = persistent
	}

	return &ChromemStore{
		db:       db,
		embedder: embedder,
		logger:   logger.Named("chromem"),
	}, nil
}

// Close is a no-op; chromem persists on write.
func (s *ChromemStore) Close() error { return nil }

// embeddingFunc adapts the Embedder interface to chromem's callback.
func (s *ChromemStore) embeddingFunc() chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return s.embedder.EmbedQuery(ctx, text)
	}
}

func (s *ChromemStore) getOrCreateCollection(name string) (*chromem.Collection, error) {
	if err := ValidateCollectionName(name); err != nil {
		return nil, err
	}
	collection, err := s.db.GetOrCreateCollection(name, nil, s.embeddingFunc())
	if err != nil {
		return nil, fmt.Errorf("getting collection %s: %w", name, err)
	}
	s.collections.Store(name, true)
	return collection, nil
}

// AddDocuments embeds and stores documents in their target collection.
func (s *ChromemStore) AddDocuments(ctx context.Context, docs []Document) ([]string, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyDocuments
	}

	collectionName := docs[0].Collection
	if collectionName == "" {
		collectionName = TranscriptCollection
	}
	for i, doc := range docs {
		if doc.Collection != "" && doc.Collection != collectionName {
			return nil, fmt.Errorf("document at index %d targets collection %q but batch targets %q",
				i, doc.Collection, collectionName)
		}
	}

	collection, err := s.getOrCreateCollection(collectionName)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(docs))
	ids := make([]string, len(docs))
	for i, doc := range docs {
		ids[i] = doc.ID
		if ids[i] == "" {
			ids[i] = fmt.Sprintf("doc_%d", i)
		}
		texts[i] = doc.Content
	}

	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}
	if len(embeddings) != len(docs) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d documents", ErrEmbeddingFailed, len(embeddings), len(docs))
	}

	chromemDocs := make([]chromem.Document, len(docs))
	for i, doc := range docs {
		chromemDocs[i] = chromem.Document{
			ID:        ids[i],
			Content:   doc.Content,
			Metadata:  metadataToStrings(doc.Metadata),
			Embedding: embeddings[i],
		}
	}

	// Concurrency of 1: embeddings are already computed.
	if err := collection.AddDocuments(ctx, chromemDocs, 1); err != nil {
		return nil, fmt.Errorf("adding documents: %w", err)
	}

	s.logger.Debug(ctx, "added documents to chromem",
		zap.String("collection", collectionName),
		zap.Int("count", len(ids)))
	return ids, nil
}

// Search performs similarity search in one collection.
func (s *ChromemStore) Search(ctx context.Context, collection, query string, k int) ([]SearchResult, error) {
	if err := ValidateCollectionName(collection); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	col := s.db.GetCollection(collection, s.embeddingFunc())
	if col == nil {
		return nil, ErrCollectionNotFound
	}

	// chromem requires k <= document count.
	count := col.Count()
	if count == 0 {
		return []SearchResult{}, nil
	}
	if k > count {
		k = count
	}

	matches, err := col.Query(ctx, query, k, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("querying collection %s: %w", collection, err)
	}

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			ID:       m.ID,
			Content:  m.Content,
			Score:    m.Similarity,
			Metadata: metadataFromStrings(m.Metadata),
		}
	}
	return results, nil
}

// CreateCollection creates a collection. Vector size is implied by the
// embedder, so the parameter only exists for interface parity.
func (s *ChromemStore) CreateCollection(ctx context.Context, collection string, vectorSize int) error {
	_, err := s.getOrCreateCollection(collection)
	return err
}

// CollectionExists reports whether a collection exists.
func (s *ChromemStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	if err := ValidateCollectionName(collection); err != nil {
		return false, err
	}
	if _, ok := s.collections.Load(collection); ok {
		return true, nil
	}
	return s.db.GetCollection(collection, s.embeddingFunc()) != nil, nil
}

// metadataToStrings flattens metadata for chromem, which stores strings only.
func metadataToStrings(metadata map[string]any) map[string]string {
	if len(metadata) == 0 {
		return nil
	}
	out := make(map[string]string, len(metadata))
	for k, v := range metadata {
		switch val := v.(type) {
		case string:
			out[k] = val
		case int:
			out[k] = strconv.Itoa(val)
		case int64:
			out[k] = strconv.FormatInt(val, 10)
		case float64:
			out[k] = strconv.FormatFloat(val, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(val)
		default:
			out[k] = fmt.Sprintf("%v", val)
		}
	}
	return out
}

func metadataFromStrings(metadata map[string]string) map[string]any {
	if len(metadata) == 0 {
		return nil
	}
	out := make(map[string]any, len(metadata))
	for k, v := range metadata {
		out[k] = v
	}
	return out
}

var _ Store = (*ChromemStore)(nil)
