package embeddings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowgate/transcriptd/internal/config"
)

func TestOllamaEmbedder_EmbedQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/embeddings", r.URL.Path)

		var req embedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "nomic-embed-text", req.Model)
		assert.Equal(t, "estate planning", req.Prompt)

		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{0.1, 0.2, 0.3}})
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder(config.EmbeddingsConfig{BaseURL: srv.URL, Model: "nomic-embed-text"})
	require.NoError(t, err)

	vec, err := e.EmbedQuery(context.Background(), "estate planning")
	require.NoError(t, err)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, vec)
}

func TestOllamaEmbedder_EmbedDocuments(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		_ = json.NewEncoder(w).Encode(embedResponse{Embedding: []float32{float32(calls)}})
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder(config.EmbeddingsConfig{BaseURL: srv.URL, Model: "nomic-embed-text"})
	require.NoError(t, err)

	vecs, err := e.EmbedDocuments(context.Background(), []string{"one", "two"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)
	assert.Equal(t, 2, calls)
}

func TestOllamaEmbedder_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not found", http.StatusNotFound)
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder(config.EmbeddingsConfig{BaseURL: srv.URL, Model: "missing"})
	require.NoError(t, err)

	_, err = e.EmbedQuery(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestOllamaEmbedder_EmptyVector(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(embedResponse{})
	}))
	defer srv.Close()

	e, err := NewOllamaEmbedder(config.EmbeddingsConfig{BaseURL: srv.URL, Model: "nomic-embed-text"})
	require.NoError(t, err)

	_, err = e.EmbedQuery(context.Background(), "text")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no vector")
}

func TestNewOllamaEmbedder_Validation(t *testing.T) {
	_, err := NewOllamaEmbedder(config.EmbeddingsConfig{Model: "m"})
	assert.Error(t, err)

	_, err = NewOllamaEmbedder(config.EmbeddingsConfig{BaseURL: "http://localhost:11434"})
	assert.Error(t, err)
}
