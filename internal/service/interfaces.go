package service

import (
	"context"
	"io"

	"github.com/google/uuid"

	"github.com/pageza/recipegen/backend/internal/model"
	"github.com/pageza/recipegen/backend/internal/models"
	"github.com/pageza/recipegen/backend/internal/types"
)

// TextGenerator produces raw model output for a system and user prompt.
type TextGenerator interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// DraftStore keeps generated recipes around for follow-up requests.
type DraftStore interface {
	SaveDraft(ctx context.Context, draft *RecipeDraft) error
	GetDraft(ctx context.Context, id string) (*RecipeDraft, error)
	UpdateDraft(ctx context.Context, draft *RecipeDraft) error
	DeleteDraft(ctx context.Context, id string) error
}

// ImageValidator decides whether a URL may be shown as a recipe image.
type ImageValidator interface {
	ValidateImageURL(ctx context.Context, rawURL string) error
}

// IRecipeService defines the interface for recipe operations
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	DeleteRecipe(ctx context.Context, id uuid.UUID, userID uuid.UUID) error
	ListRecipes(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]*model.Recipe, error)
	SearchRecipes(ctx context.Context, query string, limit int) ([]*model.Recipe, error)
}

// IGenerationService defines the interface for recipe generation
type IGenerationService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	Modify(ctx context.Context, draftID string, instruction string, userID *uuid.UUID) (*GenerateResult, error)
	GetDraft(ctx context.Context, id string) (*RecipeDraft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// IFeedbackService defines the interface for feedback operations
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, userID *uuid.UUID) (*models.Feedback, error)
	GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error)
	ListFeedback(ctx context.Context, filters *models.FeedbackFilters) ([]*models.Feedback, error)
	UpdateFeedbackStatus(ctx context.Context, id uuid.UUID, status string, adminNotes string) error
}

// TokenValidator checks bearer tokens issued by the identity provider.
type TokenValidator interface {
	ValidateToken(token string) (*types.TokenClaims, error)
}

// IAvatarService stores profile pictures.
type IAvatarService interface {
	UploadAvatar(ctx context.Context, userID uuid.UUID, contentType string, size int64, body io.Reader) (string, error)
}
