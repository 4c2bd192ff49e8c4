package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipeshare/backend/config"
	"github.com/pageza/recipeshare/backend/internal/model"
)

func TestNew_MemoryStorage(t *testing.T) {
	cfg := &config.Config{
		Storage:   config.StorageConfig{Driver: "memory"},
		AI:        config.AIConfig{DefaultBackend: "groq", Timeout: time.Second},
		RateLimit: config.RateLimitConfig{Enabled: true, Limit: 5, Window: time.Minute},
		JWTSecret: "test-secret",
	}

	a, err := New(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer a.Close()

	t.Run("generation without keys falls back to a mock", func(t *testing.T) {
		res := a.Generator.Generate(context.Background(), "chicken dinner", model.GenerateOptions{})
		require.True(t, res.OK(), res.Error)
		assert.Contains(t, res.Recipe.GeneratedBy, "mock")
	})

	t.Run("api services are complete", func(t *testing.T) {
		s := a.APIServices(zap.NewNop())
		assert.NotNil(t, s.RateLimit)
		assert.NotNil(t, s.Tokens)
		assert.NotNil(t, s.Images)
	})
}

func TestNew_UnknownStorage(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "tape"}}, zap.NewNop())
	assert.ErrorContains(t, err, "failed to open storage")
}
