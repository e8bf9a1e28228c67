// Package extraction turns raw meeting transcripts into structured client
// records. It combines deterministic pattern matching with a local text
// generation backend: patterns run first and win on conflict, the model only
// fills fields the patterns could not find.
package extraction

import "context"

// Generator produces a completion for a prompt. Implementations handle
// their own rate limiting and retries.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
