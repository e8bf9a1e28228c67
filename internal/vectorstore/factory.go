package vectorstore

import (
	"fmt"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/logging"
)

// New builds the configured store backend.
func New(cfg config.VectorStoreConfig, embedder Embedder, logger *logging.Logger) (Store, error) {
	switch cfg.Provider {
	case "qdrant":
		return NewQdrantStore(cfg.Qdrant, embedder, logger)
	case "chromem", "":
		return NewChromemStore(cfg.Chromem, embedder, logger)
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrInvalidConfig, cfg.Provider)
	}
}
