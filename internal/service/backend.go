package service

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/model"
)

// Backend is one generation provider. Complete returns the raw completion
// text; Mock answers without touching the network.
type Backend interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
	Mock(prompt string) *model.Recipe
}

func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")
}

// chatMessage is the OpenAI-compatible message shape. Content is either a
// string or a list of content parts.
type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatBackend talks to any OpenAI-compatible /chat/completions endpoint.
// Groq and OpenAI both use it.
type ChatBackend struct {
	name        string
	client      *resty.Client
	apiKey      string
	model       string
	temperature float64
	maxTokens   int
	mock        mockGenerator
}

// NewGroqBackend builds the default backend.
func NewGroqBackend(cfg config.BackendConfig, timeout time.Duration) *ChatBackend {
	return &ChatBackend{
		name:        "groq",
		client:      newRestyClient(cfg.BaseURL, timeout),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: 0.7,
		maxTokens:   1500,
		mock:        groqMock,
	}
}

func NewOpenAIBackend(cfg config.BackendConfig, timeout time.Duration) *ChatBackend {
	return &ChatBackend{
		name:        "openai",
		client:      newRestyClient(cfg.BaseURL, timeout),
		apiKey:      cfg.APIKey,
		model:       cfg.Model,
		temperature: 0.7,
		maxTokens:   1500,
		mock:        openAIMock,
	}
}

func (b *ChatBackend) Name() string { return b.name }

func (b *ChatBackend) Mock(prompt string) *model.Recipe { return b.mock.Generate(prompt) }

func (b *ChatBackend) Complete(ctx context.Context, prompt string) (string, error) {
	if b.apiKey == "" {
		return "", ErrMissingCredential
	}

	var out chatResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetAuthToken(b.apiKey).
		SetBody(chatRequest{
			Model:       b.model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			Temperature: b.temperature,
			MaxTokens:   b.maxTokens,
		}).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/chat/completions")
	if err != nil {
		return "", &TransportError{Backend: b.name, Err: err}
	}
	if resp.IsError() {
		return "", &TransportError{Backend: b.name, Status: resp.StatusCode()}
	}
	if len(out.Choices) == 0 {
		return "", &TransportError{Backend: b.name, Err: errEmptyCompletion}
	}
	return out.Choices[0].Message.Content, nil
}
