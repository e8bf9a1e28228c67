// Package config provides configuration loading for transcriptd.
//
// Configuration is loaded from a YAML file and overridden by
// TRANSCRIPTD_-prefixed environment variables, with hardcoded defaults for
// anything left unset.
package config

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/willowgate/transcriptd/internal/validation"
)

// Config holds the complete transcriptd configuration.
type Config struct {
	Logging     LoggingConfig     `koanf:"logging"`
	Server      ServerConfig      `koanf:"server"`
	Model       ModelConfig       `koanf:"model"`
	CRM         CRMConfig         `koanf:"crm"`
	VectorStore VectorStoreConfig `koanf:"vectorstore"`
	Embeddings  EmbeddingsConfig  `koanf:"embeddings"`
	Pipeline    PipelineConfig    `koanf:"pipeline"`
	Validation  ValidationConfig  `koanf:"validation"`
	Recap       RecapConfig       `koanf:"recap"`
	Social      SocialConfig      `koanf:"social"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`  // debug, info, warn, error
	Format string `koanf:"format"` // json or console
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            int      `koanf:"port"`
	ShutdownTimeout Duration `koanf:"shutdown_timeout"`
}

// ModelConfig holds settings for the local text generation backend used
// for transcript extraction.
type ModelConfig struct {
	BaseURL        string   `koanf:"base_url"`
	Name           string   `koanf:"name"`
	Timeout        Duration `koanf:"timeout"`
	MaxRetries     int      `koanf:"max_retries"`
	RequestsPerMin int      `koanf:"requests_per_min"`
}

// CRMConfig holds Baserow connection settings.
type CRMConfig struct {
	BaseURL      string `koanf:"base_url"`
	Token        Secret `koanf:"token"`
	ClientsTable int    `koanf:"clients_table"`
	ReviewTable  int    `koanf:"review_table"`
}

// VectorStoreConfig selects and configures the vector store backend.
type VectorStoreConfig struct {
	Provider string        `koanf:"provider"` // qdrant or chromem
	Qdrant   QdrantConfig  `koanf:"qdrant"`
	Chromem  ChromemConfig `koanf:"chromem"`
}

// QdrantConfig holds Qdrant gRPC connection settings.
type QdrantConfig struct {
	Host       string `koanf:"host"`
	Port       int    `koanf:"port"`
	UseTLS     bool   `koanf:"use_tls"`
	APIKey     Secret `koanf:"api_key"`
	VectorSize int    `koanf:"vector_size"`
}

// ChromemConfig holds the embedded vector store settings.
type ChromemConfig struct {
	Path       string `koanf:"path"`
	Compress   bool   `koanf:"compress"`
	VectorSize int    `koanf:"vector_size"`
}

// EmbeddingsConfig holds the embedding backend settings.
type EmbeddingsConfig struct {
	BaseURL string   `koanf:"base_url"`
	Model   string   `koanf:"model"`
	Timeout Duration `koanf:"timeout"`
}

// PipelineConfig holds transcript processing settings.
type PipelineConfig struct {
	WatchDir     string `koanf:"watch_dir"`
	Concurrency  int    `koanf:"concurrency"`
	MaxReprocess int    `koanf:"max_reprocess"`
}

// ValidationConfig holds the quality score thresholds.
type ValidationConfig struct {
	Thresholds validation.Thresholds `koanf:"thresholds"`
}

// RecapConfig holds meeting recap email settings.
type RecapConfig struct {
	Enabled       bool   `koanf:"enabled"`
	PostmarkToken Secret `koanf:"postmark_token"`
	FromAddress   string `koanf:"from_address"`
	ReplyTo       string `koanf:"reply_to"`
}

// SocialConfig holds social content generation settings.
type SocialConfig struct {
	Enabled   bool     `koanf:"enabled"`
	Platforms []string `koanf:"platforms"`
	FirmName  string   `koanf:"firm_name"`
}

// Validate checks the configuration and returns every problem found, not
// just the first one.
func (c *Config) Validate() error {
	var errs error

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("invalid logging level: %q", c.Logging.Level))
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		errs = multierr.Append(errs, fmt.Errorf("invalid logging format: %q", c.Logging.Format))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = multierr.Append(errs, fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port))
	}
	if c.Server.ShutdownTimeout.Duration() <= 0 {
		errs = multierr.Append(errs, fmt.Errorf("shutdown timeout must be positive"))
	}

	if c.Model.BaseURL == "" {
		errs = multierr.Append(errs, fmt.Errorf("model base_url is required"))
	}
	if c.Model.Name == "" {
		errs = multierr.Append(errs, fmt.Errorf("model name is required"))
	}
	if c.Model.MaxRetries < 0 {
		errs = multierr.Append(errs, fmt.Errorf("model max_retries cannot be negative"))
	}

	if c.CRM.BaseURL != "" && !c.CRM.Token.IsSet() {
		errs = multierr.Append(errs, fmt.Errorf("crm token is required when crm base_url is set"))
	}

	switch c.VectorStore.Provider {
	case "qdrant", "chromem":
	default:
		errs = multierr.Append(errs, fmt.Errorf("invalid vectorstore provider: %q (must be qdrant or chromem)", c.VectorStore.Provider))
	}

	if c.Pipeline.Concurrency < 1 {
		errs = multierr.Append(errs, fmt.Errorf("pipeline concurrency must be at least 1"))
	}
	if c.Pipeline.MaxReprocess < 0 {
		errs = multierr.Append(errs, fmt.Errorf("pipeline max_reprocess cannot be negative"))
	}

	if err := c.Validation.Thresholds.Validate(); err != nil {
		errs = multierr.Append(errs, err)
	}

	if c.Recap.Enabled {
		if !c.Recap.PostmarkToken.IsSet() {
			errs = multierr.Append(errs, fmt.Errorf("recap postmark_token is required when recap is enabled"))
		}
		if c.Recap.FromAddress == "" {
			errs = multierr.Append(errs, fmt.Errorf("recap from_address is required when recap is enabled"))
		}
	}

	return errs
}
