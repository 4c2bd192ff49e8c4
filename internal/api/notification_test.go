package api

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipeshare/backend/internal/model"
)

func TestNotificationHandler(t *testing.T) {
	env := setupTestRouter(t)
	_, aliceToken := env.register(t, "Alice", "alice@example.com")
	_, bobToken := env.register(t, "Bob", "bob@example.com")
	id := env.createRecipe(t, aliceToken, "Tomato Soup")

	env.do(t, http.MethodPost, "/api/v1/recipes/"+id+"/like", bobToken, nil)
	env.do(t, http.MethodPost, "/api/v1/recipes/"+id+"/comments", bobToken, gin.H{"content": "Great soup"})

	w := env.do(t, http.MethodGet, "/api/v1/notifications", aliceToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Notifications []model.Notification `json:"notifications"`
	}
	decode(t, w, &resp)
	require.Len(t, resp.Notifications, 2)

	t.Run("requires authentication", func(t *testing.T) {
		w := env.do(t, http.MethodGet, "/api/v1/notifications", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("another user's notification is not found", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/notifications/"+resp.Notifications[0].ID+"/read", bobToken, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("mark one as read", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/notifications/"+resp.Notifications[0].ID+"/read", aliceToken, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)

		w = env.do(t, http.MethodGet, "/api/v1/notifications/unread", aliceToken, nil)
		assert.JSONEq(t, `{"unread":1}`, w.Body.String())
	})

	t.Run("mark all as read", func(t *testing.T) {
		w := env.do(t, http.MethodPost, "/api/v1/notifications/read-all", aliceToken, nil)
		assert.JSONEq(t, `{"updated":1}`, w.Body.String())

		w = env.do(t, http.MethodGet, "/api/v1/notifications/unread", aliceToken, nil)
		assert.JSONEq(t, `{"unread":0}`, w.Body.String())
	})
}
