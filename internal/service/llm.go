package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/pageza/recipegen/backend/config"
	"github.com/pageza/recipegen/backend/internal/extract"
	"github.com/pageza/recipegen/backend/internal/logger"
)

// RecipeSystemPrompt asks the model for the JSON layout the extractor reads
// first. Models ignore it often enough that every other layout is still
// accepted downstream.
const RecipeSystemPrompt = `You are a professional chef. Please provide your response in JSON format with the following structure:
{
    "title": "Recipe name",
    "description": "Brief description of the recipe",
    "cuisine": "Cuisine of origin",
    "ingredients": [
        "2 cups flour",
        "1 cup sugar",
        "3 eggs"
    ],
    "instructions": [
        "Mix the dry ingredients",
        "Add the wet ingredients",
        "Bake at 350°F for 30 minutes"
    ],
    "prep_time": 15,
    "cook_time": 30,
    "servings": 4,
    "difficulty": "Easy/Medium/Hard",
    "tags": ["dinner"]
}

prep_time and cook_time are whole minutes. Write every value in English.`

// Message represents a message in the chat
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request represents a chat completion request
type Request struct {
	Model            string            `json:"model"`
	Messages         []Message         `json:"messages"`
	ResponseFormat   map[string]string `json:"response_format,omitempty"`
	Temperature      float64           `json:"temperature"`
	TopP             float64           `json:"top_p"`
	FrequencyPenalty float64           `json:"frequency_penalty"`
	PresencePenalty  float64           `json:"presence_penalty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type completionError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// LLMService talks to an OpenAI compatible chat completion endpoint.
type LLMService struct {
	client *resty.Client
	apiURL string
	model  string
	log    *zap.Logger
}

// NewLLMService creates a new LLMService instance
func NewLLMService(cfg config.LLMConfig, log *zap.Logger) (*LLMService, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("LLM API key is not configured")
	}
	client := resty.New().
		SetTimeout(cfg.Timeout).
		SetAuthToken(cfg.APIKey).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &LLMService{
		client: client,
		apiURL: cfg.APIURL,
		model:  cfg.Model,
		log:    logger.OrNop(log),
	}, nil
}

// Complete sends one system and one user message and returns the text of
// the first choice.
func (s *LLMService) Complete(ctx context.Context, system, prompt string) (string, error) {
	reqBody := Request{
		Model: s.model,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
		ResponseFormat: map[string]string{
			"type": "json_object",
		},
		Temperature:      0.9,
		TopP:             0.9,
		FrequencyPenalty: 0.5,
		PresencePenalty:  0.5,
	}

	var out completionResponse
	var apiErr completionError
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(reqBody).
		SetResult(&out).
		SetError(&apiErr).
		Post(s.apiURL)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	if resp.IsError() {
		s.log.Warn("llm request failed",
			zap.Int("status", resp.StatusCode()),
			zap.String("error", apiErr.Error.Message))
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode(), apiErr.Error.Message)
	}
	if len(out.Choices) == 0 {
		return "", errors.New("no response from API")
	}

	s.log.Debug("llm response received", zap.Int("bytes", len(out.Choices[0].Message.Content)))
	return out.Choices[0].Message.Content, nil
}

// BuildUserPrompt turns a generation request into the user message.
func BuildUserPrompt(query string, dietary, allergens []string) string {
	prompt := fmt.Sprintf("Generate a recipe for: %s", strings.TrimSpace(query))
	if len(dietary) > 0 {
		prompt += ". The recipe should be suitable for: " + strings.Join(dietary, ", ")
	}
	if len(allergens) > 0 {
		prompt += ". Avoid using: " + strings.Join(allergens, ", ")
	}
	return prompt
}

// BuildModifyPrompt asks for a change to an existing recipe.
func BuildModifyPrompt(original extract.Recipe, instruction string) string {
	return fmt.Sprintf("Modify this recipe: %s\n\nOriginal recipe:\nTitle: %s\nDescription: %s\nIngredients:\n%s\nInstructions:\n%s\n\nModification request: %s",
		original.Title,
		original.Title,
		original.Description,
		strings.Join(original.Ingredients, "\n"),
		strings.Join(original.Instructions, "\n"),
		strings.TrimSpace(instruction))
}
