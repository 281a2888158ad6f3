// Package llm abstracts the chat-completion collaborator. The core assumes
// nothing about the provider beyond: send role-tagged messages with a model
// identifier and temperature, receive a text completion.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// Message is one role-tagged chat turn.
type Message struct {
	Role    string
	Content string
}

// Request describes a single completion call.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
}

// Client is the chat-completion abstraction consumed by the workflows.
type Client interface {
	// Complete sends the messages and returns the text completion.
	Complete(ctx context.Context, req Request) (string, error)
	// Close releases any resources held by the client.
	Close() error
}

// GeminiClient implements Client for Google Gemini.
type GeminiClient struct {
	client       *genai.Client
	defaultModel string
}

// NewGeminiClient creates a Gemini-backed client. defaultModel is used when
// a request does not name one.
func NewGeminiClient(ctx context.Context, apiKey, defaultModel string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{client: client, defaultModel: defaultModel}, nil
}

// Complete maps the message list onto Gemini's shape: system messages become
// the system instruction, the remaining turns are concatenated user content.
func (c *GeminiClient) Complete(ctx context.Context, req Request) (string, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = c.defaultModel
	}
	if modelName == "" {
		return "", fmt.Errorf("no model configured")
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(req.Temperature)

	var userParts []genai.Part
	var systemParts []genai.Part
	for _, msg := range req.Messages {
		switch msg.Role {
		case RoleSystem:
			systemParts = append(systemParts, genai.Text(msg.Content))
		default:
			userParts = append(userParts, genai.Text(msg.Content))
		}
	}
	if len(systemParts) > 0 {
		model.SystemInstruction = &genai.Content{Parts: systemParts}
	}
	if len(userParts) == 0 {
		return "", fmt.Errorf("no user content in request")
	}

	resp, err := model.GenerateContent(ctx, userParts...)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return extractText(resp)
}

// Close releases the underlying connection.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractText pulls the text parts out of a Gemini response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}
	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return strings.Join(parts, ""), nil
}
