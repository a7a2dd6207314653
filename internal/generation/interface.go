// Package generation abstracts the text-generation backend consumed by the
// translation engine and the chat answer pipeline.
package generation

import (
	"context"
	"errors"
)

//go:generate mockgen -source=interface.go -destination=../mocks/generation/mock_client.go -package=mock_generation

// Client is the single low-level primitive for calling the generation
// backend: text in, text out. Implementations own rate limiting and the
// model-fallback chain.
type Client interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// ErrModelNotFound marks a backend rejection of a specific model identifier.
// It is the only error class that advances the model-fallback chain.
var ErrModelNotFound = errors.New("generation model not found")

// ErrNoAPIKey is returned when no backend credential is configured; callers
// degrade to their local fallbacks instead of surfacing it to users.
var ErrNoAPIKey = errors.New("generation API key is not configured")
