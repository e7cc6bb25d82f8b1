package service_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pageza/recipegen/backend/config"
	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/service"
)

func newLLM(t *testing.T, handler http.HandlerFunc) *service.LLMService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	llm, err := service.NewLLMService(config.LLMConfig{
		APIKey:  "test-key",
		APIURL:  srv.URL,
		Model:   "deepseek-chat",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	return llm
}

func TestNewLLMService(t *testing.T) {
	t.Run("should fail without API key", func(t *testing.T) {
		llm, err := service.NewLLMService(config.LLMConfig{APIURL: "http://localhost"}, zap.NewNop())
		assert.Error(t, err)
		assert.Nil(t, llm)
	})
}

func TestLLMService_Complete(t *testing.T) {
	t.Run("should return the first choice", func(t *testing.T) {
		var got service.Request
		llm := newLLM(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
			require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[{"message":{"content":"{\"title\":\"Soup\"}"}}]}`))
		})

		out, err := llm.Complete(context.Background(), "system text", "user text")
		require.NoError(t, err)
		assert.Equal(t, `{"title":"Soup"}`, out)

		assert.Equal(t, "deepseek-chat", got.Model)
		require.Len(t, got.Messages, 2)
		assert.Equal(t, "system", got.Messages[0].Role)
		assert.Equal(t, "system text", got.Messages[0].Content)
		assert.Equal(t, "user", got.Messages[1].Role)
		assert.Equal(t, "user text", got.Messages[1].Content)
		assert.Equal(t, "json_object", got.ResponseFormat["type"])
	})

	t.Run("should fail on error status", func(t *testing.T) {
		llm := newLLM(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			w.Write([]byte(`{"error":{"message":"rate limited"}}`))
		})

		_, err := llm.Complete(context.Background(), "s", "p")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "429")
		assert.Contains(t, err.Error(), "rate limited")
	})

	t.Run("should fail without choices", func(t *testing.T) {
		llm := newLLM(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"choices":[]}`))
		})

		_, err := llm.Complete(context.Background(), "s", "p")
		assert.Error(t, err)
	})

	t.Run("should honour context cancellation", func(t *testing.T) {
		llm := newLLM(t, func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := llm.Complete(ctx, "s", "p")
		assert.Error(t, err)
	})
}

func TestBuildUserPrompt(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		dietary   []string
		allergens []string
		expected  string
	}{
		{"plain", " pasta ", nil, nil, "Generate a recipe for: pasta"},
		{"dietary", "pasta", []string{"vegan", "gluten-free"}, nil,
			"Generate a recipe for: pasta. The recipe should be suitable for: vegan, gluten-free"},
		{"allergens", "pasta", nil, []string{"nuts"},
			"Generate a recipe for: pasta. Avoid using: nuts"},
		{"both", "pasta", []string{"vegan"}, []string{"soy"},
			"Generate a recipe for: pasta. The recipe should be suitable for: vegan. Avoid using: soy"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, service.BuildUserPrompt(tt.query, tt.dietary, tt.allergens))
		})
	}
}

func TestBuildModifyPrompt(t *testing.T) {
	prompt := service.BuildModifyPrompt(extract.Recipe{
		Title:        "Soup",
		Description:  "Warm",
		Ingredients:  []string{"water", "salt"},
		Instructions: []string{"Boil"},
	}, "make it spicy")

	assert.Contains(t, prompt, "Modify this recipe: Soup")
	assert.Contains(t, prompt, "water\nsalt")
	assert.Contains(t, prompt, "Modification request: make it spicy")
}
