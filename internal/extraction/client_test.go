package extraction

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willowgate/transcriptd/internal/config"
)

func testModelConfig(baseURL string) config.ModelConfig {
	return config.ModelConfig{
		BaseURL:        baseURL,
		Name:           "test-model",
		Timeout:        config.Duration(5 * time.Second),
		MaxRetries:     2,
		RequestsPerMin: 6000,
	}
}

func TestOllamaClient_Generate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)

		var req generateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		assert.False(t, req.Stream)

		json.NewEncoder(w).Encode(generateResponse{Response: `{"state": "Texas"}`, Done: true})
	}))
	defer srv.Close()

	client := NewOllamaClient(testModelConfig(srv.URL))
	got, err := client.Generate(context.Background(), "extract please")
	require.NoError(t, err)
	assert.Equal(t, `{"state": "Texas"}`, got)
}

func TestOllamaClient_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "overloaded", http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	}))
	defer srv.Close()

	client := NewOllamaClient(testModelConfig(srv.URL))
	got, err := client.Generate(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "ok", got)
	assert.Equal(t, int32(2), calls.Load())
}

func TestOllamaClient_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "bad model name", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewOllamaClient(testModelConfig(srv.URL))
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model API error (400)")
	assert.Equal(t, int32(1), calls.Load())
}

func TestOllamaClient_GivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewOllamaClient(testModelConfig(srv.URL))
	_, err := client.Generate(context.Background(), "prompt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max retries exceeded")
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}

func TestOllamaClient_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := NewOllamaClient(testModelConfig(srv.URL))
	_, err := client.Generate(ctx, "prompt")
	assert.Error(t, err)
}
