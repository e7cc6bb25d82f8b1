package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pageza/recipegen/backend/internal/model"
)

// DefaultRecipeLimit applies when a list or search call passes no limit.
const DefaultRecipeLimit = 20

// RecipeService handles recipe operations
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe stores the recipe together with its search embedding.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Embedding = Embed(recipe.SearchText())
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe owned by userID.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID, userID uuid.UUID) error {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID == nil || *recipe.UserID != userID {
		return ErrForbidden
	}
	if err := s.db.WithContext(ctx).Delete(&model.Recipe{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	return nil
}

// ListRecipes lists recipes for a user or all users if userID is nil,
// newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID *uuid.UUID, limit, offset int) ([]*model.Recipe, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC").Limit(clampLimit(limit))
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	var recipes []*model.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// SearchRecipes matches the query against title, description and
// ingredients. On postgres matches are ranked by embedding distance.
func (s *RecipeService) SearchRecipes(ctx context.Context, query string, limit int) ([]*model.Recipe, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListRecipes(ctx, nil, limit, 0)
	}

	like := "%" + strings.ToLower(query) + "%"
	dbQuery := s.db.WithContext(ctx).Limit(clampLimit(limit))

	if s.db.Dialector.Name() == "postgres" {
		dbQuery = dbQuery.
			Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients::text) LIKE ?", like, like, like).
			Clauses(clause.OrderBy{Expression: clause.Expr{SQL: "embedding <-> ?", Vars: []interface{}{Embed(query)}}})
	} else {
		dbQuery = dbQuery.
			Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ? OR LOWER(ingredients) LIKE ?", like, like, like).
			Order("created_at DESC")
	}

	var recipes []*model.Recipe
	if err := dbQuery.Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to search recipes: %w", err)
	}
	return recipes, nil
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultRecipeLimit
	}
	if limit > 100 {
		return 100
	}
	return limit
}
