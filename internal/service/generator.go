package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/metrics"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/parser"
)

// backendAliases maps the single-letter identifiers used by older clients.
var backendAliases = map[string]string{
	"A": "groq",
	"B": "gemini",
	"C": "openai",
}

// GenerationResult carries either a recipe or the reason there is none.
type GenerationResult struct {
	Recipe *model.Recipe `json:"recipe,omitempty"`
	Error  string        `json:"error,omitempty"`

	err error
}

// Err returns the typed cause behind Error: a *ConfigurationError or a
// *parser.ParseError.
func (r GenerationResult) Err() error {
	return r.err
}

// OK reports whether the result carries a usable recipe.
func (r GenerationResult) OK() bool {
	return r.Error == "" && r.Recipe != nil
}

// Generator dispatches a prompt to exactly one backend. Transport failures
// are answered by that backend's mock; parse failures and configuration
// mistakes come back as an error result. Generate never returns a Go error.
type Generator struct {
	backends       map[string]Backend
	defaultBackend string
	// requireCredentials turns a missing API key into a configuration
	// error instead of a mock recipe.
	requireCredentials bool

	logger  *zap.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// NewGenerator registers the three built-in backends from cfg.
func NewGenerator(cfg config.AIConfig, logger *zap.Logger, m *metrics.Metrics) *Generator {
	return NewGeneratorWithBackends(cfg.DefaultBackend, cfg.RequireCredentials, logger, m,
		NewGroqBackend(cfg.Groq, cfg.Timeout),
		NewGeminiBackend(cfg.Gemini, cfg.Timeout),
		NewOpenAIBackend(cfg.OpenAI, cfg.Timeout),
	)
}

func NewGeneratorWithBackends(defaultBackend string, requireCredentials bool, logger *zap.Logger, m *metrics.Metrics, backends ...Backend) *Generator {
	g := &Generator{
		backends:           make(map[string]Backend, len(backends)),
		requireCredentials: requireCredentials,
		logger:             logger,
		metrics:            m,
		now:                time.Now,
		newID:              func() string { return "recipe-" + uuid.NewString() },
	}
	for _, b := range backends {
		g.backends[b.Name()] = b
	}
	g.defaultBackend = g.resolve(defaultBackend)
	if g.defaultBackend == "" && len(backends) > 0 {
		g.defaultBackend = backends[0].Name()
	}
	return g
}

// Backends lists the registered backend names.
func (g *Generator) Backends() []string {
	names := make([]string, 0, len(g.backends))
	for name := range g.backends {
		names = append(names, name)
	}
	return names
}

func (g *Generator) resolve(id string) string {
	id = strings.TrimSpace(id)
	if alias, ok := backendAliases[id]; ok {
		id = alias
	}
	id = strings.ToLower(id)
	if _, ok := g.backends[id]; ok {
		return id
	}
	return ""
}

// Generate produces a recipe for prompt using opts.Backend, or the default
// backend when none is given.
func (g *Generator) Generate(ctx context.Context, prompt string, opts model.GenerateOptions) GenerationResult {
	requested := opts.Backend
	if strings.TrimSpace(requested) == "" {
		requested = g.defaultBackend
	}
	name := g.resolve(requested)
	if name == "" {
		err := &ConfigurationError{Backend: requested, Reason: "unsupported backend"}
		g.metrics.ObserveGeneration(metrics.BackendUnknown, metrics.OutcomeError, 0)
		g.logger.Warn("Rejected generation request", zap.String("backend", requested), zap.Error(err))
		return GenerationResult{Error: err.Error(), err: err}
	}
	backend := g.backends[name]

	start := g.now()
	text, err := backend.Complete(ctx, BuildPrompt(prompt, opts))
	elapsed := g.now().Sub(start)
	if err != nil {
		if errors.Is(err, ErrMissingCredential) && g.requireCredentials {
			cerr := &ConfigurationError{Backend: name, Reason: err.Error()}
			g.metrics.ObserveGeneration(name, metrics.OutcomeError, elapsed)
			g.logger.Error("Generation backend is not configured", zap.Error(cerr))
			return GenerationResult{Error: cerr.Error(), err: cerr}
		}
		g.logger.Warn("Generation backend unavailable, using mock recipe",
			zap.String("backend", name),
			zap.Duration("latency", elapsed),
			zap.Error(err),
		)
		g.metrics.ObserveGeneration(name, metrics.OutcomeMock, elapsed)
		return GenerationResult{Recipe: g.stamp(backend.Mock(prompt), "")}
	}

	recipe, perr := decodeReply(text)
	if perr != nil {
		g.logger.Warn("Could not parse generation reply",
			zap.String("backend", name),
			zap.String("stage", perr.Stage),
			zap.Error(perr),
		)
		g.metrics.ObserveGeneration(name, metrics.OutcomeError, elapsed)
		return GenerationResult{Error: "Failed to parse recipe: " + perr.Error(), err: perr}
	}

	g.logger.Info("Generated recipe",
		zap.String("backend", name),
		zap.String("title", recipe.Title),
		zap.Duration("latency", elapsed),
	)
	g.metrics.ObserveGeneration(name, metrics.OutcomeSuccess, elapsed)
	return GenerationResult{Recipe: g.stamp(recipe, name)}
}

// decodeReply prefers the JSON path. A reply without JSON is still accepted
// when the labeled-text parser finds a title and ingredients in it.
func decodeReply(text string) (*model.Recipe, *parser.ParseError) {
	res := parser.DecodeRecipe(text)
	if res.OK() {
		return res.Recipe, nil
	}
	if p := parser.ParseRecipeText(text); p.Title != "" && len(p.Ingredients) > 0 {
		return p.ToRecipe(), nil
	}
	return nil, res.Err
}

// stamp gives a generated recipe its identity. An empty provenance keeps the
// one set by the mock.
func (g *Generator) stamp(r *model.Recipe, provenance string) *model.Recipe {
	now := g.now().UTC()
	r.ID = g.newID()
	if provenance != "" {
		r.GeneratedBy = provenance
	}
	r.Difficulty = r.Difficulty.OrDefault()
	r.CreatedAt = now
	r.UpdatedAt = now
	if r.Comments == nil {
		r.Comments = []model.Comment{}
	}
	return r
}
