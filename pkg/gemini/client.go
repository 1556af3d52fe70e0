package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Prompt and sampling parameters match the chat-completions generator.
const (
	SystemPrompt    = "You are an AI wizard that helps people create product descriptions."
	MaxOutputTokens = 800
	Temperature     = 0.7
	TopP            = 0.95

	DefaultModel   = "gemini-1.5-flash"
	DefaultTimeout = 30 * time.Second
)

// ErrGenerationFailed wraps every failure of a generation call.
var ErrGenerationFailed = errors.New("gemini: generation failed")

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

// Client generates product descriptions with a Gemini model.
type Client struct {
	client  *genai.Client
	model   *genai.GenerativeModel
	timeout time.Duration
}

// NewClient creates a Gemini-backed description generator.
func NewClient(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(Temperature)
	model.SetTopP(TopP)
	model.SetMaxOutputTokens(MaxOutputTokens)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(SystemPrompt)},
	}

	return &Client{client: client, model: model, timeout: cfg.Timeout}, nil
}

// GenerateDescription asks the model to describe the named product.
func (c *Client) GenerateDescription(ctx context.Context, productName string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.model.GenerateContent(ctx, genai.Text(productName))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	text := extractText(resp)
	if text == "" {
		return "", fmt.Errorf("%w: response has no text", ErrGenerationFailed)
	}
	return text, nil
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}
