package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/storage"
)

func generatedRecipe() *model.Recipe {
	return &model.Recipe{
		ID:           "recipe-generated",
		Title:        "Lemon Herb Salmon",
		Description:  "Flaky salmon with a bright lemon butter.",
		PrepTime:     "10",
		CookTime:     "15",
		Servings:     "2",
		Difficulty:   model.DifficultyEasy,
		Ingredients:  []string{"2 salmon fillets", "1 lemon"},
		Instructions: []string{"Season the salmon.", "Roast for 15 minutes."},
		GeneratedBy:  "groq",
	}
}

func TestGenerateHandler(t *testing.T) {
	env := setupTestRouter(t)
	_, token := env.register(t, "Alice", "alice@example.com")

	opts := model.GenerateOptions{Backend: "groq", Cuisine: "Nordic"}
	env.generator.On("Generate", mock.Anything, "salmon dinner", opts).
		Return(service.GenerationResult{Recipe: generatedRecipe()}).Once()

	t.Run("requires authentication", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/generate", "", gin.H{"prompt": "salmon dinner"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a blank prompt", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/generate", token, gin.H{"prompt": "  "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns the recipe and keeps it as a draft", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/generate", token, gin.H{
			"prompt":  "salmon dinner",
			"backend": "groq",
			"cuisine": "Nordic",
		})
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var res service.GenerationResult
		decode(t, w, &res)
		require.NotNil(t, res.Recipe)
		assert.Equal(t, "Lemon Herb Salmon", res.Recipe.Title)

		w = env.do(t, http.MethodGet, "/api/v1/generate/draft", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Lemon Herb Salmon")
	})

	t.Run("saving the draft publishes it", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/generate/draft/save", token, nil)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		w = env.do(t, http.MethodGet, "/api/v1/recipes", "", nil)
		var resp recipeList
		decode(t, w, &resp)
		require.Len(t, resp.Recipes, 1)
		assert.Equal(t, "Lemon Herb Salmon", resp.Recipes[0].Title)

		w = env.do(t, http.MethodGet, "/api/v1/generate/draft", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("saving without a draft", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/generate/draft/save", token, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("discarding is idempotent", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/v1/generate/draft", token, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestGenerateHandler_ErrorResults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	tokens := service.NewTokenService("test-secret")
	users := service.NewUserService(store, tokens, logger)
	_, token, err := users.Register(context.Background(), service.Registration{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)

	// A generator with no backends rejects every identifier.
	generator := service.NewGeneratorWithBackends("groq", false, logger, nil)
	r := gin.New()
	NewGenerateHandler(generator, service.NewCatalogService(store, nil, 0, logger), users, tokens, nil, logger).
		RegisterRoutes(r.Group("/api/v1"))
	env := &testEnv{router: r}

	w := env.do(t, http.MethodPost, "/api/v1/generate", token, gin.H{"prompt": "soup", "backend": "unknown-service"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown-service")
}
