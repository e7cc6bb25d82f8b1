package types

import (
	"github.com/pageza/recipegen/backend/internal/extract"
)

// LLM API types
type GenerateRecipeRequest struct {
	Prompt    string   `json:"prompt" binding:"required,max=2000"`
	Dietary   []string `json:"dietary"`
	Allergens []string `json:"allergens"`
}

type GenerateRecipeResponse struct {
	Recipe  extract.Recipe `json:"recipe"`
	Source  extract.Source `json:"source"`
	Saved   bool           `json:"saved"`
	Message string         `json:"message"`
	DraftID string         `json:"draft_id,omitempty"`
}

type ModifyDraftRequest struct {
	Instruction string `json:"instruction" binding:"required,max=2000"`
}

type ParseRecipeRequest struct {
	Text string `json:"text"`
}

type ParseRecipeResponse struct {
	Recipe extract.Recipe `json:"recipe"`
	Source extract.Source `json:"source"`
}

// Recipe API types
type CreateRecipeRequest struct {
	Title        string   `json:"title" binding:"required,max=255"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
	PrepTime     *string  `json:"prep_time"`
	CookTime     *string  `json:"cook_time"`
	Servings     *string  `json:"servings"`
	Cuisine      *string  `json:"cuisine"`
	Difficulty   *string  `json:"difficulty"`
	Tags         []string `json:"tags"`
}

// Recipe sanitizes the request into an extract.Recipe.
func (r *CreateRecipeRequest) Recipe() extract.Recipe {
	rec := extract.SanitizeRecipe(extract.Recipe{
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.Image,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Cuisine:      r.Cuisine,
		Difficulty:   r.Difficulty,
		Tags:         r.Tags,
	})
	if rec.Difficulty != nil {
		level := extract.NormalizeDifficulty(*rec.Difficulty)
		rec.Difficulty = &level
	}
	return rec
}

type RecipeListResponse struct {
	Recipes []extract.Recipe `json:"recipes"`
	Count   int              `json:"count"`
}

// Feedback API types
type CreateFeedbackRequest struct {
	Type        string `json:"type" binding:"required,oneof=bug feature general recipe"`
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required,max=2000"`
	Priority    string `json:"priority" binding:"omitempty,oneof=low medium high critical"`
	RecipeID    string `json:"recipe_id" binding:"omitempty,uuid"`
	UserAgent   string `json:"user_agent"`
	URL         string `json:"url"`
}

type UpdateFeedbackStatusRequest struct {
	Status     string `json:"status" binding:"required,oneof=open in_progress resolved closed"`
	AdminNotes string `json:"admin_notes"`
}

type AvatarResponse struct {
	URL string `json:"url"`
}
