package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/types"
)

// AvatarHandler handles profile picture uploads.
type AvatarHandler struct {
	avatars service.IAvatarService
}

func NewAvatarHandler(avatars service.IAvatarService) *AvatarHandler {
	return &AvatarHandler{avatars: avatars}
}

// UploadAvatar expects a multipart form with an "avatar" file.
func (h *AvatarHandler) UploadAvatar(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	header, err := c.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "avatar file is required"})
		return
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read avatar file"})
		return
	}
	defer file.Close()

	url, err := h.avatars.UploadAvatar(c.Request.Context(), *user, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.AvatarResponse{URL: url})
}
