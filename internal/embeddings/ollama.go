// Package embeddings generates vector embeddings through a local Ollama
// server, the same runtime that backs transcript verification.
package embeddings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/vectorstore"
)

const defaultEmbedTimeout = 30 * time.Second

// OllamaEmbedder calls Ollama's embeddings endpoint.
type OllamaEmbedder struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaEmbedder creates an embedder from config.
func NewOllamaEmbedder(cfg config.EmbeddingsConfig) (*OllamaEmbedder, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("embeddings base URL is required")
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("embeddings model is required")
	}

	timeout := cfg.Timeout.Duration()
	if timeout <= 0 {
		timeout = defaultEmbedTimeout
	}

	return &OllamaEmbedder{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

type embedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type embedResponse struct {
	Embedding []float32 `json:"embedding"`
}

// EmbedDocuments embeds each text in turn. Ollama's embeddings endpoint
// takes one prompt per call.
func (e *OllamaEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, text := range texts {
		vec, err := e.EmbedQuery(ctx, text)
		if err != nil {
			return nil, fmt.Errorf("embedding document %d: %w", i, err)
		}
		out[i] = vec
	}
	return out, nil
}

// EmbedQuery embeds a single text.
func (e *OllamaEmbedder) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	payload, err := json.Marshal(embedRequest{Model: e.model, Prompt: text})
	if err != nil {
		return nil, fmt.Errorf("marshaling embed request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		e.baseURL+"/api/embeddings", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating embed request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("embeddings request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading embeddings response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("embeddings API error (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed embedResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parsing embeddings response: %w", err)
	}
	if len(parsed.Embedding) == 0 {
		return nil, fmt.Errorf("embeddings response contained no vector")
	}
	return parsed.Embedding, nil
}

var _ vectorstore.Embedder = (*OllamaEmbedder)(nil)
