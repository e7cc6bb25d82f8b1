package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/model"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/types"
)

// sourceManual marks recipes submitted directly through the API.
const sourceManual extract.Source = "manual"

// RecipeHandler handles recipe-related HTTP requests
type RecipeHandler struct {
	recipes service.IRecipeService
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipes service.IRecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// ListRecipes lists recipes, or searches them when q is set.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	var (
		recipes []*model.Recipe
		err     error
	)
	if q := c.Query("q"); q != "" {
		recipes, err = h.recipes.SearchRecipes(c.Request.Context(), q, limit)
	} else {
		var owner *uuid.UUID
		if raw := c.Query("user_id"); raw != "" {
			id, parseErr := uuid.Parse(raw)
			if parseErr != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user_id"})
				return
			}
			owner = &id
		}
		recipes, err = h.recipes.ListRecipes(c.Request.Context(), owner, limit, offset)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]extract.Recipe, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, r.Extracted())
	}
	c.JSON(http.StatusOK, types.RecipeListResponse{Recipes: out, Count: len(out)})
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return
	}

	recipe, err := h.recipes.GetRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe.Extracted())
}

// CreateRecipe stores a caller supplied recipe after sanitizing it.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := req.Recipe()
	if recipe.Title == extract.DefaultTitle && req.Title != extract.DefaultTitle {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title is empty after sanitization"})
		return
	}

	created, err := h.recipes.CreateRecipe(c.Request.Context(), model.NewRecipe(recipe, currentUser(c), sourceManual))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created.Extracted())
}

// DeleteRecipe handles DELETE /recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe ID"})
		return
	}
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.recipes.DeleteRecipe(c.Request.Context(), id, *user); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
