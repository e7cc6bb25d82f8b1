package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/pageza/recipegen/backend/internal/logger"
	"github.com/pageza/recipegen/backend/internal/models"
	"github.com/pageza/recipegen/backend/internal/types"
)

type FeedbackService struct {
	db  *gorm.DB
	log *zap.Logger
}

func NewFeedbackService(db *gorm.DB, log *zap.Logger) *FeedbackService {
	return &FeedbackService{db: db, log: logger.OrNop(log)}
}

func (s *FeedbackService) CreateFeedback(ctx context.Context, req *types.CreateFeedbackRequest, userID *uuid.UUID) (*models.Feedback, error) {
	if !models.Valid(req.Type, models.FeedbackTypes) {
		return nil, fmt.Errorf("%w: type %q", ErrInvalidFeedback, req.Type)
	}
	if req.Priority != "" && !models.Valid(req.Priority, models.FeedbackPriorities) {
		return nil, fmt.Errorf("%w: priority %q", ErrInvalidFeedback, req.Priority)
	}

	feedback := &models.Feedback{
		UserID:      userID,
		Type:        req.Type,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		UserAgent:   req.UserAgent,
		URL:         req.URL,
	}
	if req.RecipeID != "" {
		recipeID, err := uuid.Parse(req.RecipeID)
		if err != nil {
			return nil, fmt.Errorf("%w: recipe_id %q", ErrInvalidFeedback, req.RecipeID)
		}
		feedback.RecipeID = &recipeID
	}

	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	s.log.Info("feedback received",
		zap.String("id", feedback.ID.String()),
		zap.String("type", feedback.Type),
		zap.String("priority", feedback.Priority))
	return feedback, nil
}

func (s *FeedbackService) GetFeedback(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	var feedback models.Feedback
	if err := s.db.WithContext(ctx).First(&feedback, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &feedback, nil
}

func (s *FeedbackService) ListFeedback(ctx context.Context, filters *models.FeedbackFilters) ([]*models.Feedback, error) {
	query := s.db.WithContext(ctx)
	limit := 50

	if filters != nil {
		if filters.Type != "" {
			query = query.Where("type = ?", filters.Type)
		}
		if filters.Status != "" {
			query = query.Where("status = ?", filters.Status)
		}
		if filters.Priority != "" {
			query = query.Where("priority = ?", filters.Priority)
		}
		if filters.UserID != "" {
			if userUUID, err := uuid.Parse(filters.UserID); err == nil {
				query = query.Where("user_id = ?", userUUID)
			}
		}
		if filters.Limit > 0 {
			limit = filters.Limit
		}
		if filters.Offset > 0 {
			query = query.Offset(filters.Offset)
		}
	}

	var feedback []*models.Feedback
	if err := query.Limit(limit).Order("created_at DESC").Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}

func (s *FeedbackService) UpdateFeedbackStatus(ctx context.Context, id uuid.UUID, status string, adminNotes string) error {
	if !models.Valid(status, models.FeedbackStatuses) {
		return fmt.Errorf("%w: status %q", ErrInvalidFeedback, status)
	}
	updates := map[string]interface{}{
		"status": status,
	}
	if adminNotes != "" {
		updates["admin_notes"] = adminNotes
	}

	result := s.db.WithContext(ctx).Model(&models.Feedback{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update feedback status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrFeedbackNotFound
	}
	return nil
}
