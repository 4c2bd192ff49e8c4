package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
)

func newTestAnalyzer(baseURL, apiKey string) *ImageAnalyzer {
	return NewImageAnalyzer(config.AIConfig{
		OpenAI:      config.BackendConfig{APIKey: apiKey, BaseURL: baseURL},
		VisionModel: "gpt-4o-mini",
		Timeout:     5 * time.Second,
	}, zap.NewNop(), nil)
}

func TestImageAnalyzer_Analyze(t *testing.T) {
	ctx := context.Background()

	t.Run("parses the vision reply", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var req struct {
				Model     string `json:"model"`
				MaxTokens int    `json:"max_tokens"`
				Messages  []struct {
					Content []contentPart `json:"content"`
				} `json:"messages"`
			}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "gpt-4o-mini", req.Model)
			assert.Equal(t, 800, req.MaxTokens)
			if assert.Len(t, req.Messages, 1) && assert.Len(t, req.Messages[0].Content, 2) {
				assert.Equal(t, visionInstruction, req.Messages[0].Content[0].Text)
				assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", req.Messages[0].Content[1].ImageURL.URL)
			}

			reply := "```json\n{\"title\": \"Margherita Pizza\", \"description\": \"Classic pizza\", " +
				"\"ingredients\": [\"- dough\", \"- tomato\"], \"instructions\": \"Stretch, top, bake\"}\n```"
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{
				"choices": []map[string]any{{"message": map[string]string{"content": reply}}},
			})
		}))
		defer srv.Close()

		got := newTestAnalyzer(srv.URL, "test-key").Analyze(ctx, ImageInput{Data: "aGVsbG8=", Identifier: "pizza.jpg"})

		assert.Equal(t, "Margherita Pizza", got.Title)
		assert.Equal(t, []string{"dough", "tomato"}, got.Ingredients)
		assert.Equal(t, []string{"Stretch", "top", "bake"}, got.Instructions)
		assert.Equal(t, "General", got.Cuisine)
		assert.Equal(t, "vision", got.Source)
	})

	t.Run("falls back to a mock on failure", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer srv.Close()

		got := newTestAnalyzer(srv.URL, "test-key").Analyze(ctx, ImageInput{Data: "aGVsbG8=", Identifier: "my-pasta.png"})

		assert.Equal(t, "Spaghetti Bolognese", got.Title)
		assert.Equal(t, "mock", got.Source)
	})

	t.Run("falls back to a mock on an unparseable reply", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"I can't tell what this is."}}]}`))
		}))
		defer srv.Close()

		got := newTestAnalyzer(srv.URL, "test-key").Analyze(ctx, ImageInput{Data: "aGVsbG8=", Identifier: "dinner.png"})
		assert.Equal(t, "Chocolate Chip Cookies", got.Title)
	})
}

func TestImageInput_ImageURL(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,xyz", ImageInput{Data: "data:image/png;base64,xyz"}.imageURL())
	assert.Equal(t, "https://example.com/a.jpg", ImageInput{Data: "https://example.com/a.jpg"}.imageURL())
	assert.Equal(t, "data:image/jpeg;base64,xyz", ImageInput{Data: " xyz "}.imageURL())
}

func TestMockAnalysis(t *testing.T) {
	tests := []struct {
		identifier string
		title      string
		cuisine    string
	}{
		{"PASTA-night.jpg", "Spaghetti Bolognese", "Italian"},
		{"greek_salad.png", "Fresh Garden Salad", "Mediterranean"},
		{"", "Chocolate Chip Cookies", "American"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			got := MockAnalysis(tt.identifier)
			assert.Equal(t, tt.title, got.Title)
			assert.Equal(t, tt.cuisine, got.Cuisine)
			assert.NotEmpty(t, got.Ingredients)
		})
	}
}
