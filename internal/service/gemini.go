package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/model"
)

var errEmptyCompletion = errors.New("reply contained no completion")

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		TopK            int     `json:"topK"`
		TopP            float64 `json:"topP"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

// GeminiBackend calls the generateContent endpoint. The key travels as a
// query parameter.
type GeminiBackend struct {
	client *resty.Client
	apiKey string
	model  string
}

func NewGeminiBackend(cfg config.BackendConfig, timeout time.Duration) *GeminiBackend {
	return &GeminiBackend{
		client: newRestyClient(cfg.BaseURL, timeout),
		apiKey: cfg.APIKey,
		model:  cfg.Model,
	}
}

func (b *GeminiBackend) Name() string { return "gemini" }

func (b *GeminiBackend) Mock(prompt string) *model.Recipe { return geminiMock.Generate(prompt) }

func (b *GeminiBackend) Complete(ctx context.Context, prompt string) (string, error) {
	if b.apiKey == "" {
		return "", ErrMissingCredential
	}

	req := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}}
	req.GenerationConfig.Temperature = 0.7
	req.GenerationConfig.TopK = 40
	req.GenerationConfig.TopP = 0.95
	req.GenerationConfig.MaxOutputTokens = 8192

	var out geminiResponse
	resp, err := b.client.R().
		SetContext(ctx).
		SetPathParam("model", b.model).
		SetQueryParam("key", b.apiKey).
		SetBody(req).
		SetResult(&out).
		ForceContentType("application/json").
		Post("/v1beta/models/{model}:generateContent")
	if err != nil {
		return "", &TransportError{Backend: b.Name(), Err: err}
	}
	if resp.IsError() {
		return "", &TransportError{Backend: b.Name(), Status: resp.StatusCode()}
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", &TransportError{Backend: b.Name(), Err: errEmptyCompletion}
	}
	return out.Candidates[0].Content.Parts[0].Text, nil
}
