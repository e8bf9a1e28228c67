// Package main implements the transcriptd CLI: a daemon and one-shot
// commands for turning estate planning meeting transcripts into validated
// CRM records.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath is the optional YAML config file; env vars override it.
	configPath string

	// version information (set via ldflags during build)
	version = "dev"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "transcriptd",
	Short: "Estate planning transcript processing pipeline",
	Long: `transcriptd extracts structured client data from estate planning meeting
transcripts, scores it for quality, and routes it into the firm's CRM.

Configuration comes from an optional YAML file plus TRANSCRIPTD_* environment
variables (e.g. TRANSCRIPTD_SERVER_PORT, TRANSCRIPTD_CRM_TOKEN).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(seedCmd)
}
