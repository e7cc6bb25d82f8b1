package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeedbackSchemaVersion is written into every row. Bump it together with a
// migration whenever the feedback columns change.
const FeedbackSchemaVersion = 2

// Feedback types, priorities and statuses accepted by the API.
var (
	FeedbackTypes      = []string{"bug", "feature", "general", "recipe"}
	FeedbackPriorities = []string{"low", "medium", "high", "critical"}
	FeedbackStatuses   = []string{"open", "in_progress", "resolved", "closed"}
)

type Feedback struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
	SchemaVersion int            `gorm:"not null;default:2" json:"schema_version"`
	UserID        *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	RecipeID      *uuid.UUID     `gorm:"type:uuid;index" json:"recipe_id,omitempty"`
	Type          string         `gorm:"size:20;not null" json:"type"`
	Title         string         `gorm:"size:255;not null" json:"title"`
	Description   string         `gorm:"type:text;not null" json:"description"`
	Priority      string         `gorm:"size:20;not null;default:'medium'" json:"priority"`
	Status        string         `gorm:"size:20;not null;default:'open'" json:"status"`
	UserAgent     string         `gorm:"size:512" json:"user_agent"`
	URL           string         `gorm:"size:1024" json:"url"`
	AdminNotes    string         `gorm:"type:text" json:"admin_notes"`
}

// TableName returns the table name for the Feedback model
func (Feedback) TableName() string {
	return "feedback"
}

// BeforeCreate fills the key and schema defaults.
func (f *Feedback) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	f.SchemaVersion = FeedbackSchemaVersion
	if f.Priority == "" {
		f.Priority = "medium"
	}
	if f.Status == "" {
		f.Status = "open"
	}
	return nil
}

// FeedbackFilters represents filters for listing feedback
type FeedbackFilters struct {
	Type     string `form:"type" json:"type,omitempty"`
	Status   string `form:"status" json:"status,omitempty"`
	Priority string `form:"priority" json:"priority,omitempty"`
	UserID   string `form:"user_id" json:"user_id,omitempty"`
	Limit    int    `form:"limit" json:"limit,omitempty"`
	Offset   int    `form:"offset" json:"offset,omitempty"`
}

// Valid reports whether value is one of allowed.
func Valid(value string, allowed []string) bool {
	for _, a := range allowed {
		if value == a {
			return true
		}
	}
	return false
}
