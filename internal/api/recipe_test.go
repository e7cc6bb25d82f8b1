package api_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/model"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/types"
)

func TestRecipeHandler_List(t *testing.T) {
	soup := &model.Recipe{ID: uuid.New(), Title: "Soup", Ingredients: model.JSONBStringArray{"water"}}

	t.Run("should list without a query", func(t *testing.T) {
		env := newTestEnv(t)
		env.recipes.On("ListRecipes", mock.Anything, (*uuid.UUID)(nil), 5, 10).Return([]*model.Recipe{soup}, nil)

		w := env.do(http.MethodGet, "/api/v1/recipes?limit=5&offset=10", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp types.RecipeListResponse
		decode(t, w, &resp)
		assert.Equal(t, 1, resp.Count)
		assert.Equal(t, "Soup", resp.Recipes[0].Title)
		assert.Equal(t, soup.ID.String(), resp.Recipes[0].ID)
		assert.Equal(t, []string{}, resp.Recipes[0].Instructions)
	})

	t.Run("should search with q", func(t *testing.T) {
		env := newTestEnv(t)
		env.recipes.On("SearchRecipes", mock.Anything, "soup", 0).Return([]*model.Recipe{soup}, nil)

		w := env.do(http.MethodGet, "/api/v1/recipes?q=soup", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		env.recipes.AssertExpectations(t)
	})

	t.Run("should reject a bad user filter", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodGet, "/api/v1/recipes?user_id=nope", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestRecipeHandler_Get(t *testing.T) {
	env := newTestEnv(t)
	id := uuid.New()
	env.recipes.On("GetRecipe", mock.Anything, id).Return(&model.Recipe{ID: id, Title: "Soup"}, nil)
	env.recipes.On("GetRecipe", mock.Anything, mock.Anything).Return(nil, service.ErrRecipeNotFound)

	w := env.do(http.MethodGet, "/api/v1/recipes/"+id.String(), nil, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(http.MethodGet, "/api/v1/recipes/"+uuid.NewString(), nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = env.do(http.MethodGet, "/api/v1/recipes/not-a-uuid", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeHandler_Create(t *testing.T) {
	t.Run("should sanitize the body before saving", func(t *testing.T) {
		env := newTestEnv(t)
		env.recipes.On("CreateRecipe", mock.Anything, mock.AnythingOfType("*model.Recipe")).
			Return(func(_ context.Context, r *model.Recipe) *model.Recipe {
				r.ID = uuid.New()
				return r
			}, nil)

		body := map[string]any{
			"title":        "**Tomato Soup**",
			"ingredients":  []string{"- 4 tomatoes", "", "2 cups water"},
			"instructions": []string{"1. Simmer", "Step 2: Serve"},
			"difficulty":   "quite advanced",
		}
		w := env.do(http.MethodPost, "/api/v1/recipes", body, userToken)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var resp extract.Recipe
		decode(t, w, &resp)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "Tomato Soup", resp.Title)

		require.Len(t, env.recipes.Calls, 1)
		saved := env.recipes.Calls[0].Arguments.Get(1).(*model.Recipe)
		assert.Equal(t, "Tomato Soup", saved.Title)
		assert.Equal(t, model.JSONBStringArray{"4 tomatoes", "2 cups water"}, saved.Ingredients)
		assert.Equal(t, model.JSONBStringArray{"Simmer", "Serve"}, saved.Instructions)
		require.NotNil(t, saved.Difficulty)
		assert.Equal(t, extract.DifficultyHard, *saved.Difficulty)
		assert.Equal(t, &env.userID, saved.UserID)
		assert.Equal(t, "manual", saved.Source)
	})

	t.Run("should require authentication", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodPost, "/api/v1/recipes", map[string]any{"title": "Soup"}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("should reject a title that sanitizes away", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(http.MethodPost, "/api/v1/recipes", map[string]any{"title": "***"}, userToken)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		env.recipes.AssertNotCalled(t, "CreateRecipe", mock.Anything, mock.Anything)
	})
}

func TestRecipeHandler_Delete(t *testing.T) {
	env := newTestEnv(t)
	mine, theirs := uuid.New(), uuid.New()
	env.recipes.On("DeleteRecipe", mock.Anything, mine, env.userID).Return(nil)
	env.recipes.On("DeleteRecipe", mock.Anything, theirs, env.userID).Return(service.ErrForbidden)

	w := env.do(http.MethodDelete, "/api/v1/recipes/"+mine.String(), nil, userToken)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/recipes/"+theirs.String(), nil, userToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(http.MethodDelete, "/api/v1/recipes/"+mine.String(), nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
