package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/api"
	"github.com/pageza/recipeshare/backend/internal/app"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/router"
	"github.com/pageza/recipeshare/backend/internal/service"
)

const groqReply = "Sure! Here you go:\n```json\n" + `{
  "title": "Crispy Chickpea Tacos",
  "description": "Smoky roasted chickpeas in warm tortillas.",
  "prepTime": "10 minutes",
  "cookTime": "20",
  "servings": 4,
  "difficulty": "easy",
  "ingredients": ["1 can chickpeas", "8 corn tortillas", "1 lime"],
  "instructions": ["Roast the chickpeas until crisp.", "Warm the tortillas and fill."],
  "tags": ["vegetarian", "mexican"],
  "nutrition": {"calories": 420, "protein": "14g", "carbs": "60g", "fat": "12g"}
}` + "\n```"

// fakeGroq answers chat completions with groqReply, or 503 while down is set.
func fakeGroq(t *testing.T, down *atomic.Bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": groqReply}}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

type client struct {
	t      *testing.T
	router *gin.Engine
	token  string
}

func (c client) do(method, path string, body any) *httptest.ResponseRecorder {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	return w
}

func setup(t *testing.T, groqURL string) (*gin.Engine, *app.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Env:      config.Test,
		Storage:  config.StorageConfig{Driver: "sql", DraftTTL: time.Hour},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "recipeshare.db")},
		AI: config.AIConfig{
			DefaultBackend: "groq",
			Timeout:        5 * time.Second,
			Groq:           config.BackendConfig{APIKey: "test-key", BaseURL: groqURL, Model: "llama3-70b-8192"},
		},
		JWTSecret: "integration-secret",
	}

	logger := zap.NewNop()
	a, err := app.New(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	r := router.SetupRouter(router.Options{Metrics: a.Metrics, Store: a.Backends.Store, Logger: logger}, a.APIServices(logger))
	return r, a
}

func register(t *testing.T, r *gin.Engine, name, email string) client {
	t.Helper()
	w := client{t: t, router: r}.do(http.MethodPost, "/api/v1/auth/register", gin.H{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp api.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return client{t: t, router: r, token: resp.Token}
}

func TestGenerateReviewPublishFlow(t *testing.T) {
	var down atomic.Bool
	r, _ := setup(t, fakeGroq(t, &down).URL)

	alice := register(t, r, "Alice", "alice@example.com")
	bob := register(t, r, "Bob", "bob@example.com")

	w := alice.do(http.MethodPost, "/api/v1/generate", gin.H{"prompt": "vegetarian tacos", "dietary": []string{"vegetarian"}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var gen service.GenerationResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &gen))
	require.NotNil(t, gen.Recipe)
	assert.Equal(t, "Crispy Chickpea Tacos", gen.Recipe.Title)
	assert.Equal(t, "10", gen.Recipe.PrepTime)
	assert.Equal(t, "4", gen.Recipe.Servings)
	assert.Equal(t, model.DifficultyEasy, gen.Recipe.Difficulty)
	assert.Equal(t, "groq", gen.Recipe.GeneratedBy)

	w = alice.do(http.MethodPost, "/api/v1/generate/draft/save", nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var saved struct {
		Recipe model.Recipe `json:"recipe"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))

	w = bob.do(http.MethodPost, "/api/v1/recipes/"+saved.Recipe.ID+"/like", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = bob.do(http.MethodGet, "/api/v1/recipes?tags=vegetarian&sort=popular", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Recipes []model.Recipe `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Recipes, 1)
	assert.Equal(t, 1, list.Recipes[0].Likes)
	assert.True(t, list.Recipes[0].Liked)
	assert.Equal(t, "Alice", list.Recipes[0].Author.Name)

	w = alice.do(http.MethodGet, "/api/v1/notifications/unread", nil)
	assert.JSONEq(t, `{"unread":1}`, w.Body.String())

	t.Run("backend outage falls back to the mock", func(t *testing.T) {
		down.Store(true)
		defer down.Store(false)

		w := alice.do(http.MethodPost, "/api/v1/generate", gin.H{"prompt": "chicken dinner"})
		require.Equal(t, http.StatusOK, w.Code)
		var res service.GenerationResult
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.NotNil(t, res.Recipe)
		assert.Equal(t, "mock", res.Recipe.GeneratedBy)
	})

	t.Run("outcomes are counted per backend", func(t *testing.T) {
		w := client{t: t, router: r}.do(http.MethodGet, "/metrics", nil)
		assert.Contains(t, w.Body.String(), `recipe_generations_total{backend="groq",outcome="success"} 1`)
		assert.Contains(t, w.Body.String(), `recipe_generations_total{backend="groq",outcome="mock"} 1`)
	})
}

func TestCatalogSurvivesRestart(t *testing.T) {
	var down atomic.Bool
	groq := fakeGroq(t, &down)
	dir := t.TempDir()

	cfg := func() *config.Config {
		return &config.Config{
			Storage:   config.StorageConfig{Driver: "sql"},
			Database:  config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(dir, "recipeshare.db")},
			AI:        config.AIConfig{DefaultBackend: "groq", Timeout: time.Second, Groq: config.BackendConfig{APIKey: "test-key", BaseURL: groq.URL}},
			JWTSecret: "integration-secret",
		}
	}
	ctx := context.Background()

	first, err := app.New(ctx, cfg(), zap.NewNop())
	require.NoError(t, err)
	user, _, err := first.Users.Register(ctx, service.Registration{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	res := first.Generator.Generate(ctx, "tacos", model.GenerateOptions{})
	require.True(t, res.OK(), res.Error)
	_, err = first.Recipes.SaveGenerated(ctx, *user, res.Recipe)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := app.New(ctx, cfg(), zap.NewNop())
	require.NoError(t, err)
	defer second.Close()

	recipes, err := second.Recipes.ByAuthor(ctx, "", user.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Crispy Chickpea Tacos", recipes[0].Title)
}
