package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Prompt and sampling parameters are fixed for every call.
const (
	SystemPrompt     = "You are an AI wizard that helps people create product descriptions."
	MaxTokens        = 800
	Temperature      = 0.7
	TopP             = 0.95
	FrequencyPenalty = 0
	PresencePenalty  = 0
)

// Defaults used when Config leaves a field empty.
const (
	DefaultEndpoint   = "https://clever-dev-openai.openai.azure.com/openai/deployments/chat/chat/completions"
	DefaultAPIVersion = "2024-02-15-preview"
	DefaultTimeout    = 30 * time.Second
)

// Authentication header styles.
const (
	AuthAPIKey = "api-key" // Azure OpenAI
	AuthBearer = "bearer"  // api.openai.com
)

// ErrGenerationFailed wraps every failure of a completion call.
var ErrGenerationFailed = errors.New("openai: generation failed")

// Config holds the chat-completions endpoint details.
type Config struct {
	Endpoint   string
	APIKey     string
	APIVersion string
	Auth       string
	Model      string // sent only when set; Azure deployments imply the model
	Timeout    time.Duration
}

// Client generates product descriptions through a chat-completions endpoint.
type Client struct {
	cfg Config
}

// NewClient creates a new chat-completions client.
func NewClient(cfg Config) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = DefaultAPIVersion
	}
	if cfg.Auth == "" {
		cfg.Auth = AuthAPIKey
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{cfg: cfg}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model            string        `json:"model,omitempty"`
	Messages         []chatMessage `json:"messages"`
	MaxTokens        int           `json:"max_tokens"`
	Temperature      float64       `json:"temperature"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
	TopP             float64       `json:"top_p"`
	Stop             []string      `json:"stop"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func newChatRequest(model, productName string) chatRequest {
	return chatRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: SystemPrompt},
			{Role: "user", Content: productName},
		},
		MaxTokens:        MaxTokens,
		Temperature:      Temperature,
		FrequencyPenalty: FrequencyPenalty,
		PresencePenalty:  PresencePenalty,
		TopP:             TopP,
		Stop:             nil,
	}
}

// GenerateDescription asks the model to describe the named product.
func (c *Client) GenerateDescription(ctx context.Context, productName string) (string, error) {
	timeout := c.cfg.Timeout
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", fmt.Errorf("%w: %v", ErrGenerationFailed, context.DeadlineExceeded)
		}
		if remaining < timeout {
			timeout = remaining
		}
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	agent := fiber.Post(c.cfg.Endpoint)
	agent.QueryString(url.Values{"api-version": {c.cfg.APIVersion}}.Encode())
	if c.cfg.Auth == AuthBearer {
		agent.Set(fiber.HeaderAuthorization, "Bearer "+c.cfg.APIKey)
	} else {
		agent.Set("api-key", c.cfg.APIKey)
	}
	agent.JSON(newChatRequest(c.cfg.Model, productName))
	agent.Timeout(timeout)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, errors.Join(errs...))
	}
	if code < fiber.StatusOK || code >= fiber.StatusMultipleChoices {
		return "", fmt.Errorf("%w: unexpected status %d", ErrGenerationFailed, code)
	}

	var resp chatResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("%w: decode response: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: response has no choices", ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
