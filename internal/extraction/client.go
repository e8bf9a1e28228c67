package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/willowgate/transcriptd/internal/config"
)

const (
	defaultBaseBackoff = 1 * time.Second
	defaultBurst       = 5
)

// OllamaClient implements Generator against an Ollama-compatible
// /api/generate endpoint.
type OllamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// NewOllamaClient creates a generation client from model config.
func NewOllamaClient(cfg config.ModelConfig) *OllamaClient {
	return &OllamaClient{
		baseURL: cfg.BaseURL,
		model:   cfg.Name,
		httpClient: &http.Client{
			Timeout: cfg.Timeout.Duration(),
		},
		limiter:    rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMin)/60.0), defaultBurst),
		maxRetries: cfg.MaxRetries,
	}
}

type generateRequest struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options,omitempty"`
}

type generateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Generate sends the prompt to the model and returns the raw completion.
// Transient failures (connection errors, 429, 5xx) are retried with
// exponential backoff; everything else fails immediately.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	req := generateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		// Low temperature for consistent extraction
		Options: map[string]any{"temperature": 0.05},
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := defaultBaseBackoff * time.Duration(1<<(attempt-1))
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		response, err := c.doRequest(ctx, req)
		if err == nil {
			return response, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			return "", err
		}
	}

	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (c *OllamaClient) doRequest(ctx context.Context, req generateRequest) (string, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &retryableError{err: fmt.Errorf("model request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests {
		return "", &retryableError{err: fmt.Errorf("rate limited (429)")}
	}
	if resp.StatusCode >= 500 {
		return "", &retryableError{err: fmt.Errorf("server error (%d): %s", resp.StatusCode, string(body))}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("model API error (%d): %s", resp.StatusCode, string(body))
	}

	var genResp generateResponse
	if err := json.Unmarshal(body, &genResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if genResp.Response == "" {
		return "", fmt.Errorf("empty response from model")
	}

	return genResp.Response, nil
}

// retryableError wraps an error to indicate it can be retried.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return e.err.Error()
}

func (e *retryableError) Unwrap() error {
	return e.err
}

// isRetryableError checks if an error should be retried.
func isRetryableError(err error) bool {
	for e := err; e != nil; {
		if _, ok := e.(*retryableError); ok {
			return true
		}
		if unwrapper, ok := e.(interface{ Unwrap() error }); ok {
			e = unwrapper.Unwrap()
		} else {
			break
		}
	}
	return false
}

// Ensure interface is implemented at compile time.
var _ Generator = (*OllamaClient)(nil)
