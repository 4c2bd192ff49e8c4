package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// MockGenerator is a mock implementation of service.IGenerator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) Generate(ctx context.Context, prompt string, opts model.GenerateOptions) service.GenerationResult {
	args := m.Called(ctx, prompt, opts)
	return args.Get(0).(service.GenerationResult)
}
