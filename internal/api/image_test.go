package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
)

func TestImageHandler_Analyze(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.register(t, "Alice", "alice@example.com")

	t.Run("requires an image", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/images/analyze", token, gin.H{"identifier": "dinner.jpg"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns the analysis", func(t *testing.T) {
		in := service.ImageInput{Data: "aGVsbG8=", Identifier: "pasta.jpg"}
		env.analyzer.On("Analyze", mock.Anything, in).Return(model.RecipeAnalysis{
			Title:   "Spaghetti Bolognese",
			Cuisine: "Italian",
			Source:  "mock",
		}).Once()

		w := env.do(t, http.MethodPost, "/api/v1/images/analyze", token, gin.H{"image": "aGVsbG8=", "identifier": "pasta.jpg"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Analysis model.RecipeAnalysis `json:"analysis"`
		}
		decode(t, w, &resp)
		assert.Equal(t, "Spaghetti Bolognese", resp.Analysis.Title)
		assert.Equal(t, "Italian", resp.Analysis.Cuisine)
	})
}

func TestImageHandler_Generate(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.register(t, "Alice", "alice@example.com")

	tests := []struct {
		name        string
		prompt      string
		url         string
		placeholder bool
	}{
		{"provider image", "lemon tart", "https://cdn.example.com/tart.png", false},
		{"placeholder fallback", "apple pie", service.PlaceholderImageURL("apple pie"), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env.images.On("Generate", mock.Anything, tt.prompt).Return(tt.url).Once()

			w := env.do(t, http.MethodPost, "/api/v1/images/generate", token, gin.H{"prompt": tt.prompt})
			require.Equal(t, http.StatusOK, w.Code)

			var resp GenerateImageResponse
			decode(t, w, &resp)
			assert.Equal(t, tt.url, resp.ImageURL)
			assert.Equal(t, tt.placeholder, resp.Placeholder)
		})
	}
}

func TestSuggestionHandler(t *testing.T) {
	env := setupTestRouter(t)

	w := env.do(t, http.MethodGet, "/api/v1/suggestions?q=chicken", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	decode(t, w, &resp)
	assert.Equal(t, []string{"Chicken Alfredo", "Chicken Parmesan", "Roast Chicken", "Chicken Curry", "Chicken Soup"}, resp.Suggestions)

	w = env.do(t, http.MethodGet, "/api/v1/suggestions?q=c", "", nil)
	assert.JSONEq(t, `{"suggestions":[]}`, w.Body.String())
}
