package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/logger"
	"github.com/pageza/recipegen/backend/internal/model"
)

// Result messages returned to API clients.
const (
	MessageSaved    = "Recipe generated and saved"
	MessageNotSaved = "Recipe generated but not saved"
	MessageModified = "Recipe draft updated"
)

// GenerateRequest is one recipe generation call.
type GenerateRequest struct {
	Prompt    string
	Dietary   []string
	Allergens []string
	UserID    *uuid.UUID
}

// GenerateResult carries the extracted recipe and what happened to it.
type GenerateResult struct {
	Recipe  extract.Recipe
	Source  extract.Source
	Saved   bool
	Message string
	DraftID string
}

// GenerationService runs prompt -> model -> extraction -> persistence.
type GenerationService struct {
	llm     TextGenerator
	drafts  DraftStore
	images  ImageValidator
	recipes IRecipeService
	log     *zap.Logger
}

// NewGenerationService wires the generation pipeline. drafts and images
// may be nil; drafts are then not kept and image URLs are not checked.
func NewGenerationService(llm TextGenerator, drafts DraftStore, images ImageValidator, recipes IRecipeService, log *zap.Logger) *GenerationService {
	return &GenerationService{
		llm:     llm,
		drafts:  drafts,
		images:  images,
		recipes: recipes,
		log:     logger.OrNop(log),
	}
}

// Generate asks the model for a recipe and persists it. A persistence
// failure does not fail the call: the recipe is returned with Saved=false.
func (s *GenerationService) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	raw, err := s.llm.Complete(ctx, RecipeSystemPrompt, BuildUserPrompt(req.Prompt, req.Dietary, req.Allergens))
	if err != nil {
		s.log.Error("llm generation failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	recipe, source := s.extract(ctx, raw)
	s.log.Info("recipe extracted",
		zap.String("source", string(source)),
		zap.String("title", recipe.Title),
		zap.Int("ingredients", len(recipe.Ingredients)),
		zap.Int("instructions", len(recipe.Instructions)))

	result := &GenerateResult{Recipe: recipe, Source: source}
	result.DraftID = s.keepDraft(ctx, &RecipeDraft{
		UserID: req.UserID,
		Prompt: req.Prompt,
		Recipe: recipe,
		Source: source,
		Raw:    raw,
	})

	saved, err := s.recipes.CreateRecipe(ctx, model.NewRecipe(recipe, req.UserID, source))
	if err != nil {
		s.log.Warn("failed to persist generated recipe", zap.Error(err))
		result.Message = MessageNotSaved
		return result, nil
	}

	result.Recipe = saved.Extracted()
	result.Saved = true
	result.Message = MessageSaved
	return result, nil
}

// Modify regenerates a stored draft with a change request and overwrites
// the draft. The modified recipe is not persisted.
func (s *GenerationService) Modify(ctx context.Context, draftID string, instruction string, userID *uuid.UUID) (*GenerateResult, error) {
	if strings.TrimSpace(instruction) == "" {
		return nil, ErrEmptyPrompt
	}
	draft, err := s.GetDraft(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if draft.UserID != nil && (userID == nil || *draft.UserID != *userID) {
		return nil, ErrForbidden
	}

	raw, err := s.llm.Complete(ctx, RecipeSystemPrompt, BuildModifyPrompt(draft.Recipe, instruction))
	if err != nil {
		s.log.Error("llm modification failed", zap.String("draft_id", draftID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	recipe, source := s.extract(ctx, raw)
	draft.Recipe = recipe
	draft.Source = source
	draft.Raw = raw
	if err := s.drafts.UpdateDraft(ctx, draft); err != nil {
		return nil, err
	}

	return &GenerateResult{
		Recipe:  recipe,
		Source:  source,
		Message: MessageModified,
		DraftID: draft.ID,
	}, nil
}

func (s *GenerationService) GetDraft(ctx context.Context, id string) (*RecipeDraft, error) {
	if s.drafts == nil {
		return nil, ErrDraftNotFound
	}
	return s.drafts.GetDraft(ctx, id)
}

func (s *GenerationService) DeleteDraft(ctx context.Context, id string) error {
	if s.drafts == nil {
		return ErrDraftNotFound
	}
	return s.drafts.DeleteDraft(ctx, id)
}

func (s *GenerationService) extract(ctx context.Context, raw string) (extract.Recipe, extract.Source) {
	draft := extract.Interpret(raw)
	recipe := draft.Finalize()

	if recipe.Image != "" && s.images != nil {
		if err := s.images.ValidateImageURL(ctx, recipe.Image); err != nil {
			s.log.Warn("dropping recipe image", zap.String("url", recipe.Image), zap.Error(err))
			recipe.Image = ""
		}
	}
	return recipe, draft.Source
}

func (s *GenerationService) keepDraft(ctx context.Context, draft *RecipeDraft) string {
	if s.drafts == nil {
		return ""
	}
	if err := s.drafts.SaveDraft(ctx, draft); err != nil {
		s.log.Warn("failed to save recipe draft", zap.Error(err))
		return ""
	}
	return draft.ID
}
