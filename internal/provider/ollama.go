package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// Ollama implements LanguageModel against a local Ollama instance.
type Ollama struct {
	host        string
	model       string
	timeout     time.Duration
	temperature float64
	maxTokens   int
	client      *http.Client
	logger      *slog.Logger
}

// OllamaOption configures an Ollama provider.
type OllamaOption func(*Ollama)

// WithTimeout overrides the default request timeout.
func WithTimeout(d time.Duration) OllamaOption {
	return func(o *Ollama) { o.timeout = d }
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) OllamaOption {
	return func(o *Ollama) { o.temperature = t }
}

// WithMaxTokens sets the default cap on generated tokens.
func WithMaxTokens(n int) OllamaOption {
	return func(o *Ollama) { o.maxTokens = n }
}

// WithLogger sets the logger used for latency reporting.
func WithLogger(l *slog.Logger) OllamaOption {
	return func(o *Ollama) { o.logger = l }
}

// WithHTTPClient overrides the HTTP client. Tests inject a stub transport.
func WithHTTPClient(c *http.Client) OllamaOption {
	return func(o *Ollama) { o.client = c }
}

// NewOllama creates an Ollama provider for the given host and model.
func NewOllama(host, model string, opts ...OllamaOption) *Ollama {
	o := &Ollama{
		host:        strings.TrimRight(host, "/"),
		model:       model,
		timeout:     DefaultTimeout,
		temperature: 0.8,
		maxTokens:   300,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.client == nil {
		o.client = &http.Client{}
	}
	return o
}

// Name returns the backend name.
func (o *Ollama) Name() string {
	return "ollama"
}

// generateBody is the request payload for /api/generate.
type generateBody struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	System  string          `json:"system,omitempty"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

// generateResponse is the non-streaming response payload.
type generateResponse struct {
	Response string `json:"response"`
}

// Generate executes a prompt against /api/generate with the provider's
// timeout applied. The context deadline maps connection failures and
// timeouts to errors for the caller's fallback path.
func (o *Ollama) Generate(ctx context.Context, req *GenerateRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	temperature := req.Temperature
	if temperature == 0 {
		temperature = o.temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = o.maxTokens
	}

	body := generateBody{
		Model:  o.model,
		Prompt: req.Prompt,
		System: req.SystemPrompt,
		Stream: false,
		Options: generateOptions{
			Temperature: temperature,
			NumPredict:  maxTokens,
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, o.host+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := o.client.Do(httpReq)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("timeout: generation took longer than %v", o.timeout)
		}
		return "", fmt.Errorf("cannot reach ollama at %s: %w", o.host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("ollama API error %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	o.logger.Debug("ollama response received",
		"latency_ms", time.Since(start).Milliseconds(),
		"chars", len(out.Response),
	)

	return out.Response, nil
}

// HealthCheck probes the Ollama root endpoint.
func (o *Ollama) HealthCheck(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, HealthCheckTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.host+"/", nil)
	if err != nil {
		return false
	}

	resp, err := o.client.Do(req)
	if err != nil {
		o.logger.Warn("ollama health check failed", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}
