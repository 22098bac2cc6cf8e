package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	DefaultCompletionEndpoint = "https://openrouter.ai/api/v1/chat/completions"
	DefaultCompletionModel    = "openai/gpt-4o"
	DefaultSystemMessage      = "You are a helpful assistant."
	RecipeSystemMessage       = "You are a professional chef and nutritionist. You create clear, practical recipes and always respond with valid JSON."
)

// Doer sends an HTTP request. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// RecipeGenerator produces a recipe from a generation request.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, req GenerationRequest) (*GeneratedRecipe, error)
}

// Chat message roles.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// PromptMessage is one chat message sent to the model.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelParameters are the sampling parameters of a completion request.
type ModelParameters struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	TopP        float64 `json:"top_p"`
}

// DefaultModelParameters are used when CompletionConfig.Params is nil.
func DefaultModelParameters() ModelParameters {
	return ModelParameters{Temperature: 0.7, MaxTokens: 800, TopP: 1.0}
}

// RecipeModelParameters leave room for long ingredient and instruction lists.
func RecipeModelParameters() ModelParameters {
	return ModelParameters{Temperature: 0.7, MaxTokens: 2000, TopP: 0.9}
}

// CompletionConfig configures a CompletionClient. Zero values fall back to defaults,
// except APIKey which is required.
type CompletionConfig struct {
	APIKey         string
	Endpoint       string
	Model          string
	SystemMessage  string
	Params         *ModelParameters
	ResponseSchema *ResponseSchema
	SiteURL        string
	AppTitle       string
	HTTPClient     Doer
}

// CompletionClient sends single-turn chat completion requests to an OpenRouter compatible
// endpoint. It holds only immutable configuration and is safe for concurrent use.
type CompletionClient struct {
	apiKey        string
	endpoint      string
	model         string
	systemMessage string
	params        ModelParameters
	schema        *ResponseSchema
	siteURL       string
	appTitle      string
	httpClient    Doer
}

// completionRequest is the body posted to the chat completions endpoint.
type completionRequest struct {
	Model          string          `json:"model"`
	Messages       []PromptMessage `json:"messages"`
	Temperature    float64         `json:"temperature"`
	MaxTokens      int             `json:"max_tokens"`
	TopP           float64         `json:"top_p"`
	ResponseFormat map[string]any  `json:"response_format,omitempty"`
}

// NewCompletionClient creates a CompletionClient from cfg.
func NewCompletionClient(cfg CompletionConfig) (*CompletionClient, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("completion client: API key must be set")
	}

	c := &CompletionClient{
		apiKey:        cfg.APIKey,
		endpoint:      cfg.Endpoint,
		model:         cfg.Model,
		systemMessage: cfg.SystemMessage,
		params:        DefaultModelParameters(),
		schema:        cfg.ResponseSchema,
		siteURL:       cfg.SiteURL,
		appTitle:      cfg.AppTitle,
		httpClient:    cfg.HTTPClient,
	}
	if c.endpoint == "" {
		c.endpoint = DefaultCompletionEndpoint
	}
	if c.model == "" {
		c.model = DefaultCompletionModel
	}
	if c.systemMessage == "" {
		c.systemMessage = DefaultSystemMessage
	}
	if cfg.Params != nil {
		c.params = *cfg.Params
	}
	if c.httpClient == nil {
		c.httpClient = http.DefaultClient
	}
	return c, nil
}

// Model returns the model identifier sent with every request.
func (c *CompletionClient) Model() string {
	return c.model
}

// NewRecipeClient creates a CompletionClient configured for recipe generation.
func NewRecipeClient(apiKey, endpoint, model, siteURL, appTitle string, httpClient Doer) (*CompletionClient, error) {
	params := RecipeModelParameters()
	return NewCompletionClient(CompletionConfig{
		APIKey:         apiKey,
		Endpoint:       endpoint,
		Model:          model,
		SystemMessage:  RecipeSystemMessage,
		Params:         &params,
		ResponseSchema: RecipeSchema(),
		SiteURL:        siteURL,
		AppTitle:       appTitle,
		HTTPClient:     httpClient,
	})
}

// Complete sends userMessage with the configured system message and returns the parsed
// and validated JSON object from the first choice. No retries are attempted.
func (c *CompletionClient) Complete(ctx context.Context, userMessage string) (map[string]any, error) {
	body, err := c.buildRequestBody(userMessage)
	if err != nil {
		return nil, newValidationError(fmt.Sprintf("failed to build request: %v", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, newNetworkError(0, "failed to create request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}
	if c.appTitle != "" {
		req.Header.Set("X-Title", c.appTitle)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, newTimeoutError(0, err)
		}
		return nil, newNetworkError(0, "failed to send request", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, newTimeoutError(resp.StatusCode, err)
		}
		return nil, newNetworkError(resp.StatusCode, "failed to read response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Printf("Completion request failed with status %d: %s", resp.StatusCode, truncateBody(respBody))
		return nil, classifyStatus(resp.StatusCode, respBody)
	}

	return ParseCompletion(respBody, c.schema)
}

// Send is Complete followed by recipe normalization.
func (c *CompletionClient) Send(ctx context.Context, userMessage string) (*GeneratedRecipe, error) {
	payload, err := c.Complete(ctx, userMessage)
	if err != nil {
		return nil, err
	}
	return NormalizeRecipe(payload)
}

// GenerateRecipe validates req, builds the prompt and returns the generated recipe.
func (c *CompletionClient) GenerateRecipe(ctx context.Context, req GenerationRequest) (*GeneratedRecipe, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return c.Send(ctx, BuildRecipePrompt(req.Description, req.Preferences))
}

func (c *CompletionClient) buildRequestBody(userMessage string) ([]byte, error) {
	payload := completionRequest{
		Model: c.model,
		Messages: []PromptMessage{
			{Role: RoleSystem, Content: c.systemMessage},
			{Role: RoleUser, Content: userMessage},
		},
		Temperature: c.params.Temperature,
		MaxTokens:   c.params.MaxTokens,
		TopP:        c.params.TopP,
	}
	if c.schema != nil {
		payload.ResponseFormat = c.schema.ResponseFormat()
	}
	return json.Marshal(payload)
}

// classifyStatus maps a non-2xx upstream response to an *AIError.
func classifyStatus(status int, body []byte) error {
	upstream := gjson.GetBytes(body, "error.message")
	hasMessage := gjson.ValidBytes(body) && upstream.Exists() && upstream.String() != ""

	switch status {
	case http.StatusUnauthorized:
		msg := "invalid API key"
		if hasMessage {
			msg = upstream.String()
		}
		return newAuthenticationError(msg)
	case http.StatusGatewayTimeout:
		return newTimeoutError(status, nil)
	}

	if hasMessage {
		return newNetworkError(status, fmt.Sprintf("API request failed with status %d: %s", status, upstream.String()), nil)
	}
	return newNetworkError(status, fmt.Sprintf("API request failed with status %d: %s", status, truncateBody(body)), nil)
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
