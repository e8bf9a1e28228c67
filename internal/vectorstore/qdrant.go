package vectorstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/logging"
)

const (
	qdrantMaxRetries   = 3
	qdrantRetryBackoff = 500 * time.Millisecond
	qdrantMaxK         = 1000
)

// QdrantStore implements Store against an external Qdrant server over gRPC.
type QdrantStore struct {
	client     *qdrant.Client
	embedder   Embedder
	vectorSize int
	logger     *logging.Logger

	// collections caches confirmed-existing collection names.
	collections sync.Map
}

// NewQdrantStore connects to Qdrant and verifies the connection.
func NewQdrantStore(cfg config.QdrantConfig, embedder Embedder, logger *logging.Logger) (*QdrantStore, error) {
	if embedder == nil {
		return nil, fmt.Errorf("%w: embedder is required", ErrInvalidConfig)
	}
	if cfg.VectorSize <= 0 {
		return nil, fmt.Errorf("%w: vector size must be positive", ErrInvalidConfig)
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   cfg.Host,
		Port:   cfg.Port,
		UseTLS: cfg.UseTLS,
		APIKey: cfg.APIKey.Value(),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	store := &QdrantStore{
		client:     client,
		embedder:   embedder,
		vectorSize: cfg.VectorSize,
		logger:     logger.Named("qdrant"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.HealthCheck(ctx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: %v", ErrConnectionFailed, err)
	}

	return store, nil
}

// Close closes the gRPC connection.
func (s *QdrantStore) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}

// retryOperation retries transient failures with exponential backoff.
func (s *QdrantStore) retryOperation(ctx context.Context, name string, op func() error) error {
	backoff := qdrantRetryBackoff
	for attempt := 0; attempt <= qdrantMaxRetries; attempt++ {
		err := op()
		if err == nil {
			return nil
		}
		if !IsTransientError(err) {
			return fmt.Errorf("%s failed: %w", name, err)
		}
		if attempt == qdrantMaxRetries {
			return fmt.Errorf("%s failed after %d retries: %w", name, qdrantMaxRetries, err)
		}

		s.logger.Warn(ctx, "retrying qdrant operation",
			zap.String("operation", name),
			zap.Int("attempt", attempt+1),
			zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	return nil
}

// AddDocuments embeds and upserts documents into their target collection.
func (s *QdrantStore) AddDocuments(ctx context.Context, docs []Document) ([]string, error) {
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
	if err := ValidateCollectionName(collectionName); err != nil {
		return nil, err
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Content
	}
	embeddings, err := s.embedder.EmbedDocuments(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	points := make([]*qdrant.PointStruct, len(docs))
	ids := make([]string, len(docs))
	for i, doc := range docs {
		pointID := doc.ID
		if pointID == "" {
			pointID = uuid.New().String()
		}
		ids[i] = pointID

		payload := map[string]*qdrant.Value{
			"content": qdrantValue(doc.Content),
			"id":      qdrantValue(pointID),
		}
		for k, v := range doc.Metadata {
			if val := qdrantValue(v); val != nil {
				payload[k] = val
			}
		}

		// Qdrant point IDs must be UUIDs; the document ID is kept in
		// the payload for retrieval either way.
		qdrantPointID := qdrant.NewIDUUID(pointID)
		if _, err := uuid.Parse(pointID); err != nil {
			qdrantPointID = qdrant.NewIDUUID(uuid.New().String())
		}

		points[i] = &qdrant.PointStruct{
			Id:      qdrantPointID,
			Vectors: qdrant.NewVectors(embeddings[i]...),
			Payload: payload,
		}
	}

	if err := s.ensureCollection(ctx, collectionName); err != nil {
		return nil, err
	}

	err = s.retryOperation(ctx, "upsert", func() error {
		_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
			CollectionName: collectionName,
			Points:         points,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("upserting to collection %s: %w", collectionName, err)
	}

	s.logger.Debug(ctx, "added documents to qdrant",
		zap.String("collection", collectionName),
		zap.Int("count", len(ids)))
	return ids, nil
}

// Search performs similarity search in one collection.
func (s *QdrantStore) Search(ctx context.Context, collection, query string, k int) ([]SearchResult, error) {
	if err := ValidateCollectionName(collection); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, fmt.Errorf("k must be positive, got %d", k)
	}
	if k > qdrantMaxK {
		k = qdrantMaxK
	}
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}

	queryVector, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	var points []*qdrant.ScoredPoint
	err = s.retryOperation(ctx, "search", func() error {
		res, err := s.client.Query(ctx, &qdrant.QueryPoints{
			CollectionName: collection,
			Query:          qdrant.NewQuery(queryVector...),
			Limit:          qdrant.PtrOf(uint64(k)),
			WithPayload:    qdrant.NewWithPayload(true),
		})
		if err != nil {
			return err
		}
		points = res
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("searching collection %s: %w", collection, err)
	}

	results := make([]SearchResult, len(points))
	for i, point := range points {
		result := SearchResult{Score: point.Score}
		if point.Payload != nil {
			result.Metadata = make(map[string]any, len(point.Payload))
			for key, v := range point.Payload {
				val := goValue(v)
				result.Metadata[key] = val
				switch key {
				case "content":
					if sv, ok := val.(string); ok {
						result.Content = sv
					}
				case "id":
					if sv, ok := val.(string); ok {
						result.ID = sv
					}
				}
			}
		}
		results[i] = result
	}
	return results, nil
}

// CreateCollection creates a cosine-distance collection if missing.
func (s *QdrantStore) CreateCollection(ctx context.Context, collection string, vectorSize int) error {
	if err := ValidateCollectionName(collection); err != nil {
		return err
	}
	if vectorSize <= 0 {
		vectorSize = s.vectorSize
	}

	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = s.retryOperation(ctx, "create_collection", func() error {
		return s.client.CreateCollection(ctx, &qdrant.CreateCollection{
			CollectionName: collection,
			VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
				Size:     uint64(vectorSize),
				Distance: qdrant.Distance_Cosine,
			}),
		})
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", collection, err)
	}

	s.collections.Store(collection, true)
	return nil
}

// CollectionExists checks the cache, then the server.
func (s *QdrantStore) CollectionExists(ctx context.Context, collection string) (bool, error) {
	if err := ValidateCollectionName(collection); err != nil {
		return false, err
	}
	if _, ok := s.collections.Load(collection); ok {
		return true, nil
	}

	var exists bool
	err := s.retryOperation(ctx, "collection_exists", func() error {
		ok, err := s.client.CollectionExists(ctx, collection)
		if err != nil {
			return err
		}
		exists = ok
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("checking collection %s: %w", collection, err)
	}
	if exists {
		s.collections.Store(collection, true)
	}
	return exists, nil
}

func (s *QdrantStore) ensureCollection(ctx context.Context, collection string) error {
	exists, err := s.CollectionExists(ctx, collection)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.CreateCollection(ctx, collection, s.vectorSize)
}

// qdrantValue converts a Go value to a Qdrant payload value. Unsupported
// types return nil and are dropped.
func qdrantValue(v any) *qdrant.Value {
	switch val := v.(type) {
	case string:
		return &qdrant.Value{Kind: &qdrant.Value_StringValue{StringValue: val}}
	case int:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: int64(val)}}
	case int64:
		return &qdrant.Value{Kind: &qdrant.Value_IntegerValue{IntegerValue: val}}
	case float64:
		return &qdrant.Value{Kind: &qdrant.Value_DoubleValue{DoubleValue: val}}
	case bool:
		return &qdrant.Value{Kind: &qdrant.Value_BoolValue{BoolValue: val}}
	default:
		return nil
	}
}

func goValue(v *qdrant.Value) any {
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	default:
		return nil
	}
}

var _ Store = (*QdrantStore)(nil)
