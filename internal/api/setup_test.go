package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/internal/mocks"
	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
	"github.com/pageza/recipeshare/backend/internal/storage"
)

type testEnv struct {
	router    *gin.Engine
	store     storage.Store
	generator *mocks.MockGenerator
	analyzer  *mocks.MockImageAnalyzer
	images    *mocks.MockImageService
}

func setupTestRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	store := storage.NewMemoryStore()
	tokens := service.NewTokenService("test-secret")
	notifications := service.NewNotificationService(store, logger)

	env := &testEnv{
		router:    gin.New(),
		store:     store,
		generator: &mocks.MockGenerator{},
		analyzer:  &mocks.MockImageAnalyzer{},
		images:    &mocks.MockImageService{},
	}
	env.router.GET("/health", NewHealthHandler(store).HealthCheck)
	RegisterRoutes(env.router.Group("/api/v1"), Services{
		Generator:     env.generator,
		Analyzer:      env.analyzer,
		Images:        env.images,
		Recipes:       service.NewCatalogService(store, notifications, 0, logger),
		Users:         service.NewUserService(store, tokens, logger),
		Notifications: notifications,
		Tokens:        tokens,
	}, logger)

	t.Cleanup(func() {
		env.generator.AssertExpectations(t)
		env.analyzer.AssertExpectations(t)
		env.images.AssertExpectations(t)
	})
	return env
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// register creates a user through the API and returns it with its token.
func (e *testEnv) register(t *testing.T, name, email string) (model.User, string) {
	t.Helper()
	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": name, "email": email})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp AuthResponse
	decode(t, w, &resp)
	return resp.User, resp.Token
}

// createRecipe publishes a valid manual recipe and returns its id.
func (e *testEnv) createRecipe(t *testing.T, token, title string) string {
	t.Helper()
	form := validRecipeForm()
	form["title"] = title
	w := e.do(t, http.MethodPost, "/api/v1/recipes", token, form)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Recipe model.Recipe `json:"recipe"`
	}
	decode(t, w, &resp)
	return resp.Recipe.ID
}

func validRecipeForm() gin.H {
	return gin.H{
		"title":        "Tomato Soup",
		"description":  "A smooth and comforting soup.",
		"prepTime":     "10",
		"cookTime":     "30",
		"servings":     "4",
		"difficulty":   "Easy",
		"ingredients":  []string{"6 tomatoes", "1 onion"},
		"instructions": []string{"Chop the vegetables.", "Simmer and blend."},
		"tags":         []string{"soup", "vegetarian"},
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst), w.Body.String())
}
