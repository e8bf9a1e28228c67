package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/willowgate/transcriptd/internal/vectorstore"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create vector collections and load the knowledge base",
	Long: `Create the transcript and knowledge-base collections in the configured
vector store and seed the estate planning concept entries. Safe to run
repeatedly; existing entries are overwritten in place.`,
	RunE: runSeed,
}

func runSeed(cmd *cobra.Command, args []string) error {
	a, err := buildApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.close()

	if a.vectors == nil {
		return fmt.Errorf("vector store is not available; check vectorstore and embeddings configuration")
	}

	vectorSize := a.cfg.VectorStore.Qdrant.VectorSize
	if a.cfg.VectorStore.Provider == "chromem" {
		vectorSize = a.cfg.VectorStore.Chromem.VectorSize
	}

	if err := vectorstore.Seed(cmd.Context(), a.vectors, vectorSize); err != nil {
		return err
	}

	a.logger.Info(cmd.Context(), "knowledge base seeded",
		zap.Int("concepts", len(vectorstore.KnowledgeEntries)),
		zap.String("provider", a.cfg.VectorStore.Provider))
	return nil
}
