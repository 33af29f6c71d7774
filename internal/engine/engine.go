// Package engine turns a party size into a single casual game suggestion.
//
// The pipeline: filter the library by capacity and cooldown, drop games
// suggested minutes ago, ask the language model for a reply, sanitize it,
// and fall back to a deterministic template when the model is down or too
// formal. Suggest never fails: every path ends in a sendable string.
package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/runger/gamenight/internal/config"
	"github.com/runger/gamenight/internal/provider"
	"github.com/runger/gamenight/internal/sanitize"
	"github.com/runger/gamenight/internal/store"
)

// emptyLibraryMessage is returned before any filtering when the library has
// no games at all.
const emptyLibraryMessage = "library's empty! add some games first and I'll have ideas"

// Engine produces suggestions and casual replies.
type Engine struct {
	store   store.Store
	model   provider.LanguageModel
	san     *sanitize.Sanitizer
	guard   *RecentGuard
	limiter *RateLimiter
	logger  *slog.Logger
	cfg     config.SuggestionsConfig
	gen     config.OllamaConfig

	rng *rand.Rand
	now func() time.Time

	rateLimitMessage string
}

// Option configures an Engine.
type Option func(*Engine)

// WithRateLimit enables per-user throttling.
func WithRateLimit(cooldown time.Duration, message string) Option {
	return func(e *Engine) {
		e.limiter = NewRateLimiter(cooldown)
		e.rateLimitMessage = message
	}
}

// WithRand sets the random source for candidate shuffling. Tests inject a
// seeded source.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithClock sets the time source. Tests inject a fixed clock.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine. The store, model, and sanitizer are required; the
// guard is created from the configured cap.
func New(st store.Store, model provider.LanguageModel, san *sanitize.Sanitizer, cfg *config.Config, logger *slog.Logger, opts ...Option) *Engine {
	e := &Engine{
		store:  st,
		model:  model,
		san:    san,
		guard:  NewRecentGuard(cfg.Suggestions.MaxRemembered),
		logger: logger,
		cfg:    cfg.Suggestions,
		gen:    cfg.Ollama,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// suggestionContext is the serialized metadata stored with each suggestion.
type suggestionContext struct {
	ID        string `json:"id"`
	PartySize int    `json:"party_size"`
	Requester string `json:"requester,omitempty"`
	Source    string `json:"source"` // "model" or "fallback"
	Relaxed   bool   `json:"relaxed,omitempty"`
	Reason    string `json:"reason,omitempty"` // formality gate reason, if any
}

// Suggest returns one casual suggestion for a party of count. It always
// returns a sendable string: store and model failures degrade to fallback
// phrasing, never to an error.
func (e *Engine) Suggest(ctx context.Context, count int, requester string) string {
	now := e.now()

	if e.limiter != nil && !e.limiter.Allow(requester, now) {
		return e.rateLimitMessage
	}

	all, err := e.store.ListGames(ctx)
	if err != nil {
		e.logger.Error("failed to list games", "error", err)
		return e.san.Fallback(nil)
	}
	if len(all) == 0 {
		return emptyLibraryMessage
	}

	relaxed := false
	candidates, err := e.Filter(ctx, count, now)
	if err != nil {
		e.logger.Error("candidate filter failed", "error", err)
		return e.san.Fallback(nil)
	}

	names := gameNames(candidates)
	names = e.guard.FilterRecent(names, time.Duration(e.cfg.DedupWindowMins)*time.Minute, now)
	candidates = keepNamed(candidates, names)

	// Nothing survived the cooldown and dedup: relax to the least recently
	// played list, with a shorter dedup window so a retry can still differ.
	if len(candidates) == 0 {
		relaxed = true
		candidates, err = e.LeastRecent(ctx, count)
		if err != nil {
			e.logger.Error("relaxed candidate query failed", "error", err)
			return e.san.Fallback(nil)
		}
		names = gameNames(candidates)
		names = e.guard.FilterRecent(names, time.Duration(e.cfg.DedupRetryWindowMins)*time.Minute, now)
		candidates = keepNamed(candidates, names)
	}

	if len(candidates) == 0 {
		return NoMatchMessage(all, count)
	}

	plays, err := e.store.RecentPlays(ctx, e.cfg.RecentPlaysWindow)
	if err != nil {
		e.logger.Warn("failed to load play history for prompt", "error", err)
		plays = nil
	}

	pc := buildPromptContext(candidates, plays, count, now, e.rng)
	reply, source, reason := e.generate(ctx, pc, gameNames(candidates))

	e.record(ctx, candidates, reply, suggestionContext{
		ID:        uuid.NewString(),
		PartySize: count,
		Requester: requester,
		Source:    source,
		Relaxed:   relaxed,
		Reason:    reason,
	}, now)

	return reply
}

// generate asks the model for a suggestion and sanitizes it. A model
// failure or a reply that still reads too formal after cleaning falls back
// to a deterministic template.
func (e *Engine) generate(ctx context.Context, pc *promptContext, candidateNames []string) (reply, source, reason string) {
	raw, err := e.model.Generate(ctx, &provider.GenerateRequest{
		Prompt:       suggestionPrompt(pc),
		SystemPrompt: systemPrompt,
		Temperature:  e.gen.Temperature,
		MaxTokens:    e.gen.MaxTokens,
	})
	if err != nil {
		e.logger.Warn("generation failed, using fallback", "backend", e.model.Name(), "error", err)
		return e.san.Fallback(candidateNames), "fallback", ""
	}

	cleaned := e.san.Clean(raw, true)
	if formal, why := sanitize.TooFormal(cleaned); formal {
		e.logger.Debug("reply rejected by formality gate", "reason", why, "reply", cleaned)
		return e.san.Fallback(candidateNames), "fallback", why
	}

	return cleaned, "model", ""
}

// record logs which candidates the reply actually names. Matching is a
// case-insensitive substring check against the reply. Recording failures
// are logged and swallowed: persistence never blocks a reply.
func (e *Engine) record(ctx context.Context, candidates []store.Game, reply string, meta suggestionContext, now time.Time) {
	payload, err := json.Marshal(meta)
	if err != nil {
		e.logger.Warn("failed to encode suggestion context", "error", err)
		payload = nil
	}

	lower := strings.ToLower(reply)
	matched := false
	for i := range candidates {
		g := candidates[i]
		if !strings.Contains(lower, strings.ToLower(g.Name)) {
			continue
		}
		matched = true
		if _, err := e.store.RecordSuggestion(ctx, &g.ID, string(payload)); err != nil {
			e.logger.Warn("failed to record suggestion", "game", g.Name, "error", err)
		}
		e.guard.Remember(g.Name, now)
	}

	if !matched {
		if _, err := e.store.RecordSuggestion(ctx, nil, string(payload)); err != nil {
			e.logger.Warn("failed to record suggestion", "error", err)
		}
	}
}

// CasualReply answers a non-suggestion message in the same voice. Like
// Suggest it always returns a sendable string.
func (e *Engine) CasualReply(ctx context.Context, message string, history []string, requester string) string {
	if e.limiter != nil && !e.limiter.Allow(requester, e.now()) {
		return e.rateLimitMessage
	}

	raw, err := e.model.Generate(ctx, &provider.GenerateRequest{
		Prompt:       casualPrompt(message, history),
		SystemPrompt: casualSystemPrompt,
		Temperature:  e.gen.Temperature,
		MaxTokens:    e.gen.MaxTokens,
	})
	if err != nil {
		e.logger.Warn("casual generation failed", "backend", e.model.Name(), "error", err)
		return e.san.Clean("", false) // yields a casual fallback phrase
	}

	return e.san.Clean(raw, false)
}

func gameNames(games []store.Game) []string {
	names := make([]string, len(games))
	for i, g := range games {
		names[i] = g.Name
	}
	return names
}

// keepNamed filters games to those whose name survived the guard, keeping
// order.
func keepNamed(games []store.Game, names []string) []store.Game {
	allowed := make(map[string]bool, len(names))
	for _, n := range names {
		allowed[strings.ToLower(n)] = true
	}
	out := make([]store.Game, 0, len(names))
	for _, g := range games {
		if allowed[strings.ToLower(g.Name)] {
			out = append(out, g)
		}
	}
	return out
}
