package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/middleware"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/types"
)

// LLMHandler handles LLM-related requests
type LLMHandler struct {
	generator service.IGenerationService
}

// NewLLMHandler creates a new LLMHandler instance
func NewLLMHandler(generator service.IGenerationService) *LLMHandler {
	return &LLMHandler{generator: generator}
}

// Generate asks the model for a recipe and returns the extracted result.
func (h *LLMHandler) Generate(c *gin.Context) {
	var req types.GenerateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.generator.Generate(c.Request.Context(), service.GenerateRequest{
		Prompt:    req.Prompt,
		Dietary:   req.Dietary,
		Allergens: req.Allergens,
		UserID:    currentUser(c),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generateResponse(res))
}

// Modify applies a change request to a stored draft.
func (h *LLMHandler) Modify(c *gin.Context) {
	var req types.ModifyDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.generator.Modify(c.Request.Context(), c.Param("id"), req.Instruction, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, generateResponse(res))
}

// Parse runs extraction on caller supplied text. Nothing is stored.
func (h *LLMHandler) Parse(c *gin.Context) {
	var req types.ParseRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	draft := extract.Interpret(req.Text)
	c.JSON(http.StatusOK, types.ParseRecipeResponse{
		Recipe: draft.Finalize(),
		Source: draft.Source,
	})
}

func (h *LLMHandler) GetDraft(c *gin.Context) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, draft)
}

func (h *LLMHandler) DeleteDraft(c *gin.Context) {
	draft, ok := h.ownedDraft(c)
	if !ok {
		return
	}
	if err := h.generator.DeleteDraft(c.Request.Context(), draft.ID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *LLMHandler) ownedDraft(c *gin.Context) (*service.RecipeDraft, bool) {
	draft, err := h.generator.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if draft.UserID != nil {
		if user := currentUser(c); user == nil || *user != *draft.UserID {
			respondError(c, service.ErrForbidden)
			return nil, false
		}
	}
	return draft, true
}

func generateResponse(res *service.GenerateResult) types.GenerateRecipeResponse {
	return types.GenerateRecipeResponse{
		Recipe:  res.Recipe,
		Source:  res.Source,
		Saved:   res.Saved,
		Message: res.Message,
		DraftID: res.DraftID,
	}
}

func currentUser(c *gin.Context) *uuid.UUID {
	if id, ok := middleware.UserID(c); ok {
		return &id
	}
	return nil
}
