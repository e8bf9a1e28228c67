package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/config"
	"github.com/willowgate/transcriptd/internal/crm"
	"github.com/willowgate/transcriptd/internal/embeddings"
	"github.com/willowgate/transcriptd/internal/extraction"
	"github.com/willowgate/transcriptd/internal/logging"
	"github.com/willowgate/transcriptd/internal/pipeline"
	"github.com/willowgate/transcriptd/internal/recap"
	"github.com/willowgate/transcriptd/internal/social"
	"github.com/willowgate/transcriptd/internal/validation"
	"github.com/willowgate/transcriptd/internal/vectorstore"
)

// app bundles the wired components commands operate on.
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	validator *validation.Validator
	rows      crm.RowStore
	vectors   vectorstore.Store
	service   *pipeline.Service
}

// buildApp loads config and wires the pipeline. The vector store is
// optional: a connection failure degrades indexing, it does not prevent
// transcripts from being processed.
func buildApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	catalog := validation.DefaultCatalog()
	catalog.Thresholds = cfg.Validation.Thresholds
	validator, err := validation.NewValidator(catalog)
	if err != nil {
		return nil, fmt.Errorf("building validator: %w", err)
	}

	var rows crm.RowStore
	if cfg.CRM.BaseURL != "" {
		rows = crm.NewClient(cfg.CRM)
	} else {
		logger.Warn(ctx, "no CRM configured, processed records will not be saved")
	}

	vectors := connectVectors(ctx, cfg, logger)

	var recapSender recap.Sender
	if cfg.Recap.Enabled {
		recapSender, err = recap.NewPostmarkSender(cfg.Recap)
		if err != nil {
			return nil, fmt.Errorf("building recap sender: %w", err)
		}
	} else {
		recapSender = recap.NewLogSender(logger)
	}

	var socialGen *social.Generator
	if cfg.Social.Enabled {
		socialGen = social.NewGenerator(cfg.Social.Platforms, cfg.Social.FirmName)
	}

	service, err := pipeline.NewService(*cfg, pipeline.Deps{
		Extractor:   extraction.NewExtractor(extraction.NewOllamaClient(cfg.Model), logger),
		Validator:   validator,
		Rows:        rows,
		Vectors:     vectors,
		RecapGen:    recap.NewGenerator(cfg.Social.FirmName),
		RecapSender: recapSender,
		SocialGen:   socialGen,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("building pipeline: %w", err)
	}

	return &app{
		cfg:       cfg,
		logger:    logger,
		validator: validator,
		rows:      rows,
		vectors:   vectors,
		service:   service,
	}, nil
}

func connectVectors(ctx context.Context, cfg *config.Config, logger *logging.Logger) vectorstore.Store {
	embedder, err := embeddings.NewOllamaEmbedder(cfg.Embeddings)
	if err != nil {
		logger.Warn(ctx, "embeddings unavailable, transcript indexing disabled", zap.Error(err))
		return nil
	}

	store, err := vectorstore.New(cfg.VectorStore, embedder, logger)
	if err != nil {
		logger.Warn(ctx, "vector store unavailable, transcript indexing disabled", zap.Error(err))
		return nil
	}
	return store
}

func (a *app) close() {
	if a.vectors != nil {
		_ = a.vectors.Close()
	}
	_ = a.logger.Sync()
}
