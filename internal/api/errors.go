package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipegen/backend/internal/service"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is
// a 500 with a generic message; the cause goes to the request log.
func respondError(c *gin.Context, err error) {
	status, message := http.StatusInternalServerError, "internal server error"
	switch {
	case errors.Is(err, service.ErrEmptyPrompt),
		errors.Is(err, service.ErrInvalidFeedback),
		errors.Is(err, service.ErrUnsupportedAvatar):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrDraftNotFound),
		errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrFeedbackNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrForbidden):
		status, message = http.StatusForbidden, err.Error()
	case errors.Is(err, service.ErrGenerationFailed):
		status, message = http.StatusBadGateway, service.ErrGenerationFailed.Error()
	}
	c.Error(err)
	c.JSON(status, gin.H{"error": message})
}
