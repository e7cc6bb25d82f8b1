package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/recipegen/backend/internal/extract"
)

// EmbeddingDims is the width of the recipe embedding column.
const EmbeddingDims = 3

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(a))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*a = JSONBStringArray{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for JSONBStringArray: %T", value)
	}

	var items []string
	if err := json.Unmarshal(raw, &items); err != nil {
		return err
	}
	if items == nil {
		items = []string{}
	}
	*a = items
	return nil
}

// Recipe is the persisted form of an extracted recipe.
type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	UserID       *uuid.UUID       `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	Description  string           `gorm:"type:text" json:"description"`
	ImageURL     string           `gorm:"size:1024" json:"image"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	PrepTime     *string          `gorm:"size:64" json:"prep_time"`
	CookTime     *string          `gorm:"size:64" json:"cook_time"`
	Servings     *string          `gorm:"size:64" json:"servings"`
	Cuisine      *string          `gorm:"size:100" json:"cuisine"`
	Difficulty   *string          `gorm:"size:16" json:"difficulty"`
	Source       string           `gorm:"size:32" json:"source,omitempty"`
	Embedding    pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
}

// BeforeCreate assigns the primary key so inserts behave the same on
// postgres and sqlite.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewRecipe converts an extracted recipe into its persisted form.
func NewRecipe(r extract.Recipe, userID *uuid.UUID, source extract.Source) *Recipe {
	rec := &Recipe{
		UserID:       userID,
		Title:        r.Title,
		Description:  r.Description,
		ImageURL:     r.Image,
		Ingredients:  JSONBStringArray(r.Ingredients),
		Instructions: JSONBStringArray(r.Instructions),
		Tags:         JSONBStringArray(r.Tags),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Cuisine:      r.Cuisine,
		Difficulty:   r.Difficulty,
		Source:       string(source),
	}
	if id, err := uuid.Parse(r.ID); err == nil {
		rec.ID = id
	}
	return rec
}

// Extracted returns the API view of the recipe.
func (r *Recipe) Extracted() extract.Recipe {
	out := extract.Recipe{
		Title:        r.Title,
		Description:  r.Description,
		Image:        r.ImageURL,
		Ingredients:  nonNil(r.Ingredients),
		Instructions: nonNil(r.Instructions),
		Tags:         nonNil(r.Tags),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Cuisine:      r.Cuisine,
		Difficulty:   r.Difficulty,
	}
	if r.ID != uuid.Nil {
		out.ID = r.ID.String()
	}
	return out
}

// SearchText is the text the embedding is computed from.
func (r *Recipe) SearchText() string {
	text := r.Title + " " + r.Description
	for _, i := range r.Ingredients {
		text += " " + i
	}
	return text
}

func nonNil(a JSONBStringArray) []string {
	if a == nil {
		return []string{}
	}
	return []string(a)
}
