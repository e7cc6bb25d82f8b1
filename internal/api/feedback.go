package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pageza/recipegen/backend/internal/models"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
}

func NewFeedbackHandler(feedbackService service.IFeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// CreateFeedback accepts anonymous and authenticated submissions.
func (h *FeedbackHandler) CreateFeedback(c *gin.Context) {
	var req types.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserAgent == "" {
		req.UserAgent = c.Request.UserAgent()
	}

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), &req, currentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

// ListFeedback lists all feedback (admin only)
func (h *FeedbackHandler) ListFeedback(c *gin.Context) {
	var filters models.FeedbackFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.feedbackService.ListFeedback(c.Request.Context(), &filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": feedback, "count": len(feedback)})
}

// GetFeedback gets a specific feedback by ID (admin only)
func (h *FeedbackHandler) GetFeedback(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback ID"})
		return
	}

	feedback, err := h.feedbackService.GetFeedback(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, feedback)
}

// UpdateStatus updates the status of a feedback (admin only)
func (h *FeedbackHandler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid feedback ID"})
		return
	}

	var req types.UpdateFeedbackStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.feedbackService.UpdateFeedbackStatus(c.Request.Context(), id, req.Status, req.AdminNotes); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Feedback status updated successfully"})
}
