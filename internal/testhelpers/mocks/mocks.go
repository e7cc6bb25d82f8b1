package mocks

import (
	"context"
	"io"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/pageza/recipegen/backend/internal/model"
	"github.com/pageza/recipegen/backend/internal/models"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/types"
)

// MockTextGenerator is a mock implementation of service.TextGenerator
type MockTextGenerator struct {
	mock.Mock
}

func (m *MockTextGenerator) Complete(ctx context.Context, system, prompt string) (string, error) {
	args := m.Called(ctx, system, prompt)
	return args.String(0), args.Error(1)
}

// MockDraftStore is a mock implementation of service.DraftStore
type MockDraftStore struct {
	mock.Mock
}

func (m *MockDraftStore) SaveDraft(ctx context.Context, draft *service.RecipeDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftStore) GetDraft(ctx context.Context, id string) (*service.RecipeDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipeDraft), args.Error(1)
}

func (m *MockDraftStore) UpdateDraft(ctx context.Context, draft *service.RecipeDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockDraftStore) DeleteDraft(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockImageValidator is a mock implementation of service.ImageValidator
type MockImageValidator struct {
	mock.Mock
}

func (m *MockImageValidator) ValidateImageURL(ctx context.Context, rawURL string) error {
	args := m.Called(ctx, rawURL)
	return args.Error(0)
}

// MockRecipeService is a mock implementation of service.IRecipeService
type MockRecipeService struct {
	mock.Mock
}

// CreateRecipe also accepts a func(context.Context, *model.Recipe) *model.Recipe
// return value, which is called with the arguments.
func (m *MockRecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	args := m.Called(ctx, recipe)
	if fn, ok := args.Get(0).(func(context.Context, *model.Recipe) *model.Recipe); ok {
		return fn(ctx, recipe), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}

func (m *MockRecipeService) ListRecipes(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]*model.Recipe, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

func (m *MockRecipeService) SearchRecipes(ctx context.Context, query string, limit int) ([]*model.Recipe, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]*model.Recipe), args.Error(1)
}

// MockGenerationService is a mock implementation of service.IGenerationService
type MockGenerationService struct {
	mock.Mock
}

func (m *MockGenerationService) Generate(ctx context.Context, req service.GenerateRequest) (*service.GenerateResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

func (m *MockGenerationService) Modify(ctx context.Context, draftID string, instruction string, userID *uuid.UUID) (*service.GenerateResult, error) {
	args := m.Called(ctx, draftID, instruction, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.GenerateResult), args.Error(1)
}

func (m *MockGenerationService) GetDraft(ctx context.Context, id string) (*service.RecipeDraft, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.RecipeDraft), args.Error(1)
}

func (m *MockGenerationService) DeleteDraft(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockFeedbackService is a mock implementation of service.IFeedbackService
type MockFeedbackService struct {
	mock.Mock
}

func (m *MockFeedbackService) CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, userID *uuid.UUID) (*models.Feedback, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) ListFeedback(ctx context.Context, filters *models.FeedbackFilters) ([]*models.Feedback, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Feedback), args.Error(1)
}

func (m *MockFeedbackService) UpdateFeedbackStatus(ctx context.Context, id uuid.UUID, status string, adminNotes string) error {
	args := m.Called(ctx, id, status, adminNotes)
	return args.Error(0)
}

// MockTokenValidator is a mock implementation of service.TokenValidator
type MockTokenValidator struct {
	mock.Mock
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.TokenClaims), args.Error(1)
}

// MockAvatarService is a mock implementation of service.IAvatarService
type MockAvatarService struct {
	mock.Mock
}

func (m *MockAvatarService) UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, body io.Reader) (string, error) {
	args := m.Called(ctx, userID, contentType, size, body)
	return args.String(0), args.Error(1)
}
