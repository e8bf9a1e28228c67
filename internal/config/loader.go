package config

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/willowgate/transcriptd/internal/validation"
)

const (
	envPrefix         = "TRANSCRIPTD_"
	maxConfigFileSize = 1024 * 1024 // 1MB
)

// Load loads configuration from an optional YAML file, then overrides with
// environment variables.
//
// Configuration precedence (highest to lowest):
//  1. TRANSCRIPTD_-prefixed environment variables
//  2. YAML config file (path given by the caller, usually a --config flag)
//  3. Hardcoded defaults
//
// Environment variables map to config keys by stripping the prefix,
// lowercasing, and splitting on the first underscore:
//
//	TRANSCRIPTD_SERVER_PORT          -> server.port
//	TRANSCRIPTD_MODEL_BASE_URL       -> model.base_url
//	TRANSCRIPTD_CRM_TOKEN            -> crm.token
//	TRANSCRIPTD_PIPELINE_WATCH_DIR   -> pipeline.watch_dir
//
// A missing config file is not an error; defaults and environment apply.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if configPath != "" {
		content, err := readConfigFile(configPath)
		if err != nil {
			return nil, err
		}
		if content != nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		// TRANSCRIPTD_SERVER_PORT -> server.port: section is the first
		// underscore-delimited token, the rest keeps its underscores.
		lower := strings.ToLower(strings.TrimPrefix(s, envPrefix))
		parts := strings.SplitN(lower, "_", 2)
		if len(parts) == 1 {
			return lower
		}
		return parts[0] + "." + parts[1]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// readConfigFile opens and reads the config file, enforcing the size limit
// on the already-opened descriptor. A missing file yields (nil, nil).
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

// applyDefaults sets default values for missing configuration fields.
func applyDefaults(cfg *Config) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8085
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = Duration(10 * time.Second)
	}

	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = "http://localhost:11434"
	}
	if cfg.Model.Name == "" {
		cfg.Model.Name = "llama3.1:8b"
	}
	if cfg.Model.Timeout == 0 {
		cfg.Model.Timeout = Duration(2 * time.Minute)
	}
	if cfg.Model.MaxRetries == 0 {
		cfg.Model.MaxRetries = 3
	}
	if cfg.Model.RequestsPerMin == 0 {
		cfg.Model.RequestsPerMin = 30
	}

	// VectorStore defaults (chromem is default - embedded, no external deps)
	if cfg.VectorStore.Provider == "" {
		cfg.VectorStore.Provider = "chromem"
	}
	if cfg.VectorStore.Qdrant.Host == "" {
		cfg.VectorStore.Qdrant.Host = "localhost"
	}
	if cfg.VectorStore.Qdrant.Port == 0 {
		cfg.VectorStore.Qdrant.Port = 6334
	}
	if cfg.VectorStore.Qdrant.VectorSize == 0 {
		cfg.VectorStore.Qdrant.VectorSize = 768 // nomic-embed-text dimensions
	}
	if cfg.VectorStore.Chromem.Path == "" {
		cfg.VectorStore.Chromem.Path = "./data/vectorstore"
	}
	if cfg.VectorStore.Chromem.VectorSize == 0 {
		cfg.VectorStore.Chromem.VectorSize = 768
	}

	if cfg.Embeddings.BaseURL == "" {
		cfg.Embeddings.BaseURL = cfg.Model.BaseURL
	}
	if cfg.Embeddings.Model == "" {
		cfg.Embeddings.Model = "nomic-embed-text"
	}
	if cfg.Embeddings.Timeout == 0 {
		cfg.Embeddings.Timeout = Duration(30 * time.Second)
	}

	if cfg.Pipeline.Concurrency == 0 {
		cfg.Pipeline.Concurrency = 4
	}
	if cfg.Pipeline.MaxReprocess == 0 {
		cfg.Pipeline.MaxReprocess = 1
	}

	if cfg.Validation.Thresholds == (validation.Thresholds{}) {
		cfg.Validation.Thresholds = validation.DefaultThresholds()
	}

	if len(cfg.Social.Platforms) == 0 {
		cfg.Social.Platforms = []string{"linkedin", "twitter", "instagram", "facebook"}
	}
}
