package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/service"
	"github.com/pageza/recipegen/backend/internal/testhelpers/mocks"
	"github.com/pageza/recipegen/backend/internal/types"
)

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newCLIApp(strings.NewReader(stdin), &out)
	err := app.Run(append([]string{"recipectl"}, args...))
	return out.String(), err
}

func TestExtractCmd(t *testing.T) {
	t.Run("should read stdin", func(t *testing.T) {
		out, err := run(t, "```json\n{\"title\":\"Soup\",\"ingredients\":\"water, salt\"}\n```", "extract")
		require.NoError(t, err)

		var got extractOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "Soup", got.Recipe.Title)
		assert.Equal(t, []string{"water", "salt"}, got.Recipe.Ingredients)
		assert.Equal(t, extract.SourceJSONSubstring, got.Source)
	})

	t.Run("should read a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bread.txt")
		require.NoError(t, os.WriteFile(path, []byte("Bread\n\nIngredients:\n- flour\n\nInstructions:\n1. Bake."), 0o600))

		out, err := run(t, "", "extract", path)
		require.NoError(t, err)

		var got extractOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, "Bread", got.Recipe.Title)
		assert.Equal(t, extract.SourceHeuristic, got.Source)
	})

	t.Run("should fail on a missing file", func(t *testing.T) {
		_, err := run(t, "", "extract", filepath.Join(t.TempDir(), "nope.txt"))
		assert.Error(t, err)
	})
}

func TestTokenCmd(t *testing.T) {
	t.Run("should mint a token the service accepts", func(t *testing.T) {
		user := "7f1c2c1e-6a52-4bd8-9a52-3d1f0f4c7a11"
		out, err := run(t, "", "token", "--secret", "s3cret", "--user", user, "--role", types.RoleAdmin)
		require.NoError(t, err)

		claims, err := service.NewTokenService("s3cret").ValidateToken(strings.TrimSpace(out))
		require.NoError(t, err)
		assert.Equal(t, user, claims.UserID.String())
		assert.True(t, claims.IsAdmin())
	})

	t.Run("should reject an unknown role", func(t *testing.T) {
		_, err := run(t, "", "token", "--secret", "s3cret", "--role", "chef")
		assert.Error(t, err)
	})

	t.Run("should reject a bad user ID", func(t *testing.T) {
		_, err := run(t, "", "token", "--secret", "s3cret", "--user", "bob")
		assert.Error(t, err)
	})
}

func TestSeed(t *testing.T) {
	t.Run("should cycle prompts and count saved recipes", func(t *testing.T) {
		gen := new(mocks.MockGenerationService)
		gen.On("Generate", mock.Anything, service.GenerateRequest{Prompt: "soup"}).
			Return(&service.GenerateResult{Recipe: extract.Recipe{Title: "Soup"}, Saved: true}, nil)
		gen.On("Generate", mock.Anything, service.GenerateRequest{Prompt: "stew"}).
			Return(nil, errors.New("upstream timeout"))

		saved, err := seed(context.Background(), gen, []string{"soup", "stew"}, 5, 2, zap.NewNop())
		require.NoError(t, err)
		assert.Equal(t, int64(3), saved)
		gen.AssertNumberOfCalls(t, "Generate", 5)
	})

	t.Run("should stop when cancelled", func(t *testing.T) {
		gen := new(mocks.MockGenerationService)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		saved, err := seed(ctx, gen, []string{"soup"}, 3, 1, zap.NewNop())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, saved)
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})

	t.Run("should reject an empty prompt list", func(t *testing.T) {
		gen := new(mocks.MockGenerationService)

		for _, prompts := range [][]string{nil, {}} {
			var saved int64
			var err error
			require.NotPanics(t, func() {
				saved, err = seed(context.Background(), gen, prompts, 3, 2, zap.NewNop())
			})
			assert.ErrorIs(t, err, errNoPrompts)
			assert.Zero(t, saved)
		}
		gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
	})
}
