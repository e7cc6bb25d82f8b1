package service

import "errors"

var (
	ErrEmptyPrompt       = errors.New("prompt is required")
	ErrGenerationFailed  = errors.New("recipe generation failed")
	ErrDraftNotFound     = errors.New("draft not found")
	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrFeedbackNotFound  = errors.New("feedback not found")
	ErrForbidden         = errors.New("not allowed to modify this resource")
	ErrInvalidImageURL   = errors.New("invalid image url")
	ErrUnsupportedAvatar = errors.New("unsupported avatar image")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidFeedback   = errors.New("invalid feedback")
)
