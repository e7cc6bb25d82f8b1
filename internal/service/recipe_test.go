package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/model"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/testhelpers"
)

func seedRecipe(t *testing.T, svc *service.RecipeService, title string, ingredients []string, owner *uuid.UUID) *model.Recipe {
	t.Helper()
	rec, err := svc.CreateRecipe(context.Background(), model.NewRecipe(extract.Recipe{
		Title:        title,
		Description:  title + " description",
		Ingredients:  ingredients,
		Instructions: []string{"Cook it."},
		Tags:         []string{},
	}, owner, extract.SourceJSON))
	require.NoError(t, err)
	return rec
}

func runRecipeServiceTests(t *testing.T, db *gorm.DB) {
	ctx := context.Background()
	svc := service.NewRecipeService(db)
	owner := uuid.New()

	soup := seedRecipe(t, svc, "Tomato Soup", []string{"4 tomatoes", "1 onion"}, &owner)
	seedRecipe(t, svc, "Garlic Bread", []string{"1 baguette", "3 cloves garlic"}, nil)
	seedRecipe(t, svc, "Onion Tart", []string{"2 onions", "1 sheet pastry"}, &owner)

	t.Run("should set id and embedding on create", func(t *testing.T) {
		assert.NotEqual(t, uuid.Nil, soup.ID)
		assert.Len(t, soup.Embedding.Slice(), model.EmbeddingDims)
	})

	t.Run("should get a recipe by id", func(t *testing.T) {
		got, err := svc.GetRecipe(ctx, soup.ID)
		require.NoError(t, err)
		assert.Equal(t, "Tomato Soup", got.Title)
		assert.Equal(t, model.JSONBStringArray{"4 tomatoes", "1 onion"}, got.Ingredients)
	})

	t.Run("should report a missing recipe", func(t *testing.T) {
		_, err := svc.GetRecipe(ctx, uuid.New())
		assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	})

	t.Run("should list by owner", func(t *testing.T) {
		all, err := svc.ListRecipes(ctx, nil, 0, 0)
		require.NoError(t, err)
		assert.Len(t, all, 3)

		mine, err := svc.ListRecipes(ctx, &owner, 0, 0)
		require.NoError(t, err)
		assert.Len(t, mine, 2)

		page, err := svc.ListRecipes(ctx, nil, 1, 1)
		require.NoError(t, err)
		assert.Len(t, page, 1)
	})

	t.Run("should search title, description and ingredients", func(t *testing.T) {
		byTitle, err := svc.SearchRecipes(ctx, "garlic", 10)
		require.NoError(t, err)
		require.Len(t, byTitle, 1)
		assert.Equal(t, "Garlic Bread", byTitle[0].Title)

		byIngredient, err := svc.SearchRecipes(ctx, "ONION", 10)
		require.NoError(t, err)
		assert.Len(t, byIngredient, 2)

		none, err := svc.SearchRecipes(ctx, "chocolate", 10)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("should only let the owner delete", func(t *testing.T) {
		err := svc.DeleteRecipe(ctx, soup.ID, uuid.New())
		assert.ErrorIs(t, err, service.ErrForbidden)

		require.NoError(t, svc.DeleteRecipe(ctx, soup.ID, owner))

		_, err = svc.GetRecipe(ctx, soup.ID)
		assert.ErrorIs(t, err, service.ErrRecipeNotFound)
	})
}

func TestRecipeService_SQLite(t *testing.T) {
	runRecipeServiceTests(t, testhelpers.SetupSQLite(t))
}

func TestRecipeService_Postgres(t *testing.T) {
	runRecipeServiceTests(t, testhelpers.SetupPostgres(t))
}
