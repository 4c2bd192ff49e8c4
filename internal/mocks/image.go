package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipeshare/backend/internal/model"
	"github.com/pageza/recipeshare/backend/internal/service"
)

// MockImageAnalyzer is a mock implementation of service.IImageAnalyzer
type MockImageAnalyzer struct {
	mock.Mock
}

func (m *MockImageAnalyzer) Analyze(ctx context.Context, in service.ImageInput) model.RecipeAnalysis {
	args := m.Called(ctx, in)
	return args.Get(0).(model.RecipeAnalysis)
}

// MockImageService is a mock implementation of service.IImageService
type MockImageService struct {
	mock.Mock
}

func (m *MockImageService) Generate(ctx context.Context, prompt string) string {
	args := m.Called(ctx, prompt)
	return args.String(0)
}

var (
	_ service.IGenerator     = (*MockGenerator)(nil)
	_ service.IImageAnalyzer = (*MockImageAnalyzer)(nil)
	_ service.IImageService  = (*MockImageService)(nil)
	_ service.ITokenService  = (*MockTokenService)(nil)
)
