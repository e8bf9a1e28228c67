// Package vectorstore stores transcript excerpts and estate planning
// knowledge as vectors for similarity search. Two backends are supported:
// an embedded chromem-go database for single-binary deployments and an
// external Qdrant server for shared ones.
package vectorstore

import (
	"context"
	"errors"
	"regexp"

	grpccodes "google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Sentinel errors for vector store operations.
var (
	// ErrCollectionNotFound is returned when a collection does not exist.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrInvalidConfig indicates invalid configuration.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrEmptyDocuments indicates empty or nil documents.
	ErrEmptyDocuments = errors.New("empty or nil documents")

	// ErrConnectionFailed indicates the backend could not be reached.
	ErrConnectionFailed = errors.New("failed to connect to vector store")

	// ErrEmbeddingFailed indicates embedding generation failure.
	ErrEmbeddingFailed = errors.New("failed to generate embeddings")

	// ErrInvalidCollectionName indicates collection name validation failure.
	ErrInvalidCollectionName = errors.New("invalid collection name")
)

// Collection names used by the pipeline.
const (
	// TranscriptCollection holds processed transcript excerpts so similar
	// past meetings can be surfaced during review.
	TranscriptCollection = "estate_planning_transcripts"

	// KnowledgeCollection holds seeded estate planning concepts used to
	// flag complexity and urgency signals in new transcripts.
	KnowledgeCollection = "estate_knowledge_base"
)

// Document is a unit of text to embed and store.
type Document struct {
	// ID is the unique identifier. Empty IDs get generated ones.
	ID string

	// Content is the text that gets embedded.
	Content string

	// Metadata carries filterable key-value pairs alongside the vector.
	Metadata map[string]any

	// Collection names the target collection.
	Collection string
}

// SearchResult is one similarity match.
type SearchResult struct {
	ID       string
	Content  string
	Score    float32
	Metadata map[string]any
}

// Embedder generates vector embeddings from text.
type Embedder interface {
	// EmbedDocuments generates one embedding per input text.
	EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error)

	// EmbedQuery generates an embedding for a single query.
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

// Store is the interface both backends implement.
type Store interface {
	// AddDocuments embeds and stores documents, returning their IDs.
	// All documents in one call must target the same collection.
	AddDocuments(ctx context.Context, docs []Document) ([]string, error)

	// Search returns up to k documents similar to the query, ordered by
	// similarity score (highest first).
	Search(ctx context.Context, collection, query string, k int) ([]SearchResult, error)

	// CreateCollection creates a collection if it does not already exist.
	CreateCollection(ctx context.Context, collection string, vectorSize int) error

	// CollectionExists reports whether a collection exists.
	CollectionExists(ctx context.Context, collection string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// collectionNamePattern restricts names to lowercase alphanumerics and
// underscores, 1-64 characters.
var collectionNamePattern = regexp.MustCompile(`^[a-z0-9_]{1,64}$`)

// ValidateCollectionName rejects names that could break either backend.
func ValidateCollectionName(name string) error {
	if !collectionNamePattern.MatchString(name) {
		return ErrInvalidCollectionName
	}
	return nil
}

// IsTransientError reports whether a gRPC error is worth retrying.
func IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	st, ok := status.FromError(err)
	if !ok {
		return false
	}
	switch st.Code() {
	case grpccodes.Unavailable, grpccodes.DeadlineExceeded, grpccodes.Aborted, grpccodes.ResourceExhausted:
		return true
	default:
		return false
	}
}
