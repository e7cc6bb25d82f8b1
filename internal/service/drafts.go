package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipegen/backend/internal/extract"
)

// DraftTTL is how long a generated recipe can be fetched or modified.
const DraftTTL = 24 * time.Hour

// RecipeDraft is a generated recipe kept in redis between requests.
type RecipeDraft struct {
	ID        string         `json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	UserID    *uuid.UUID     `json:"user_id,omitempty"`
	Prompt    string         `json:"prompt"`
	Recipe    extract.Recipe `json:"recipe"`
	Source    extract.Source `json:"source"`
	Raw       string         `json:"raw,omitempty"`
}

// RedisDraftStore stores drafts as JSON under recipe:draft:<id>.
type RedisDraftStore struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisDraftStore(client *redis.Client) *RedisDraftStore {
	return &RedisDraftStore{redis: client, ttl: DraftTTL}
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}

// SaveDraft assigns an id when missing and stores the draft.
func (s *RedisDraftStore) SaveDraft(ctx context.Context, draft *RecipeDraft) error {
	if draft.ID == "" {
		draft.ID = uuid.New().String()
	}
	now := time.Now()
	if draft.CreatedAt.IsZero() {
		draft.CreatedAt = now
	}
	draft.UpdatedAt = now

	data, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.redis.Set(ctx, draftKey(draft.ID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) GetDraft(ctx context.Context, id string) (*RecipeDraft, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrDraftNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get draft: %w", err)
	}

	var draft RecipeDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return &draft, nil
}

// UpdateDraft overwrites an existing draft and refreshes its expiry.
func (s *RedisDraftStore) UpdateDraft(ctx context.Context, draft *RecipeDraft) error {
	exists, err := s.redis.Exists(ctx, draftKey(draft.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check draft: %w", err)
	}
	if exists == 0 {
		return ErrDraftNotFound
	}
	return s.SaveDraft(ctx, draft)
}

func (s *RedisDraftStore) DeleteDraft(ctx context.Context, id string) error {
	n, err := s.redis.Del(ctx, draftKey(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	if n == 0 {
		return ErrDraftNotFound
	}
	return nil
}
