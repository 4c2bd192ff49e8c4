package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/model"
)

func TestUserHandler(t *testing.T) {
	env := setupTestRouter(t)
	alice, aliceToken := env.register(t, "Alice", "alice@example.com")
	bob, bobToken := env.register(t, "Bob", "bob@example.com")
	env.createRecipe(t, aliceToken, "Tomato Soup")

	t.Run("lists users", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/users", "", nil)
		var resp struct {
			Users []model.User `json:"users"`
		}
		decode(t, w, &resp)
		assert.Len(t, resp.Users, 2)
	})

	t.Run("follow updates the counts", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/users/"+alice.ID+"/follow", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"following":true,"stats":{"followers":1,"following":0}}`, w.Body.String())

		w = env.do(t, http.MethodGet, "/api/v1/users/"+bob.ID+"/stats", "", nil)
		assert.JSONEq(t, `{"followers":0,"following":1}`, w.Body.String())
	})

	t.Run("profile shows recipes and follow state", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/users/"+alice.ID, bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var resp ProfileResponse
		decode(t, w, &resp)
		assert.Equal(t, "Alice", resp.User.Name)
		assert.True(t, resp.Following)
		assert.Equal(t, 1, resp.Stats.Followers)
		require.Len(t, resp.Recipes, 1)
		assert.Equal(t, "Tomato Soup", resp.Recipes[0].Title)
	})

	t.Run("unfollow", func(t *testing.T) {
		w := env.do(t, http.MethodDelete, "/api/v1/users/"+alice.ID+"/follow", bobToken, nil)
		assert.JSONEq(t, `{"following":false,"stats":{"followers":0,"following":0}}`, w.Body.String())
	})

	t.Run("users cannot follow themselves", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/users/"+alice.ID+"/follow", aliceToken, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown profile", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/users/user-nobody", "", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("update own profile", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/users/me", aliceToken, gin.H{"bio": "Soup enthusiast", "website": "https://alice.example.com"})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			User model.User `json:"user"`
		}
		decode(t, w, &resp)
		assert.Equal(t, "Soup enthusiast", resp.User.Bio)
		assert.Equal(t, "Alice", resp.User.Name)
	})

	t.Run("invalid website", func(t *testing.T) {
		w := env.do(t, http.MethodPut, "/api/v1/users/me", aliceToken, gin.H{"website": "not a url"})
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("liked recipes start empty", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/users/me/liked", bobToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"recipes":[]}`, w.Body.String())
	})
}
