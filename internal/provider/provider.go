// Package provider implements language-model backends for reply generation.
package provider

import (
	"context"
	"time"
)

// DefaultTimeout is the default timeout for generation calls. A timeout is
// mandatory: callers rely on generation failing fast enough to fall back.
const DefaultTimeout = 60 * time.Second

// HealthCheckTimeout bounds the health probe.
const HealthCheckTimeout = 5 * time.Second

// GenerateRequest carries one generation call.
type GenerateRequest struct {
	Prompt       string
	SystemPrompt string  // optional; prepended when the backend supports it
	MaxTokens    int     // 0 = backend default
	Temperature  float64 // 0 = backend default
}

// LanguageModel is the interface to a generative text backend. Generate may
// fail on connection errors or timeouts; callers must treat failure as a
// signal to use the deterministic fallback, never as a user-facing error.
type LanguageModel interface {
	// Name returns the backend name (e.g. "ollama").
	Name() string

	// Generate executes a prompt and returns the raw generated text.
	Generate(ctx context.Context, req *GenerateRequest) (string, error)

	// HealthCheck reports whether the backend is reachable and responsive.
	HealthCheck(ctx context.Context) bool
}
