package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/testhelpers"
)

func TestRedisDraftStore(t *testing.T) {
	ctx := context.Background()
	client := testhelpers.SetupRedis(t)
	store := service.NewRedisDraftStore(client)
	userID := uuid.New()

	draft := &service.RecipeDraft{
		UserID: &userID,
		Prompt: "soup",
		Recipe: extract.Recipe{Title: "Soup", Ingredients: []string{"water"}, Instructions: []string{}, Tags: []string{}},
		Source: extract.SourceJSON,
	}

	t.Run("should assign an id and expire after a day", func(t *testing.T) {
		require.NoError(t, store.SaveDraft(ctx, draft))
		assert.NotEmpty(t, draft.ID)
		assert.False(t, draft.CreatedAt.IsZero())

		ttl, err := client.TTL(ctx, "recipe:draft:"+draft.ID).Result()
		require.NoError(t, err)
		assert.InDelta(t, service.DraftTTL.Seconds(), ttl.Seconds(), 5)
	})

	t.Run("should read the draft back", func(t *testing.T) {
		got, err := store.GetDraft(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "Soup", got.Recipe.Title)
		assert.Equal(t, &userID, got.UserID)
		assert.Equal(t, extract.SourceJSON, got.Source)
	})

	t.Run("should update an existing draft only", func(t *testing.T) {
		draft.Recipe.Title = "Better Soup"
		require.NoError(t, store.UpdateDraft(ctx, draft))

		got, err := store.GetDraft(ctx, draft.ID)
		require.NoError(t, err)
		assert.Equal(t, "Better Soup", got.Recipe.Title)

		err = store.UpdateDraft(ctx, &service.RecipeDraft{ID: "missing"})
		assert.ErrorIs(t, err, service.ErrDraftNotFound)
	})

	t.Run("should delete the draft", func(t *testing.T) {
		require.NoError(t, store.DeleteDraft(ctx, draft.ID))

		_, err := store.GetDraft(ctx, draft.ID)
		assert.ErrorIs(t, err, service.ErrDraftNotFound)
		assert.ErrorIs(t, store.DeleteDraft(ctx, draft.ID), service.ErrDraftNotFound)
	})
}
