// Package ai provides the assistant proxy client for Google's Gemini API.
// It is a stateless pass-through: a fixed study-assistant persona is
// prepended, the caller's history is forwarded verbatim, and the provider's
// text reply is relayed. No retries, no streaming.
package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/studyhive/studyhive/config"
)

const systemPersona = "You are a helpful AI study assistant. Provide concise, accurate, and helpful responses to student questions. When answering, try to encourage critical thinking rather than just giving direct answers. If you don't know something, say so rather than making up information."

const personaAck = "I understand my role as a study assistant. I'll provide helpful, concise answers while encouraging critical thinking. I'll be honest when I don't know something."

// ErrNotConfigured is returned when no API key is present.
var ErrNotConfigured = errors.New("gemini api key is not configured")

// Message is one turn of the conversation as the client sends it.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	apiKey   string
	endpoint string
	model    string
	http     *http.Client
}

// NewClient builds a client from loaded configuration.
func NewClient(cfg config.AppConfig) *Client {
	return &Client{
		apiKey:   cfg.GeminiAPIKey,
		endpoint: strings.TrimRight(cfg.GeminiEndpoint, "/"),
		model:    cfg.GeminiModel,
		http:     &http.Client{Timeout: 60 * time.Second},
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents         []geminiContent  `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Chat sends the message with its history and optional subject context and
// returns the assistant's reply text.
func (c *Client) Chat(ctx context.Context, message string, history []Message, subject string) (string, error) {
	if c.apiKey == "" {
		return "", ErrNotConfigured
	}

	prompt := message
	if subject != "" {
		prompt = fmt.Sprintf("Context: The user is studying %s.\n\n%s", subject, message)
	}

	contents := []geminiContent{
		{Role: "user", Parts: []geminiPart{{Text: systemPersona}}},
		{Role: "model", Parts: []geminiPart{{Text: personaAck}}},
	}
	for _, item := range history {
		role := item.Role
		if role == "assistant" {
			role = "model"
		}
		contents = append(contents, geminiContent{Role: role, Parts: []geminiPart{{Text: item.Content}}})
	}
	contents = append(contents, geminiContent{Role: "user", Parts: []geminiPart{{Text: prompt}}})

	body, err := json.Marshal(geminiRequest{
		Contents: contents,
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.endpoint, c.model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("gemini api: %s", parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("gemini api: unexpected status %d", resp.StatusCode)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini api: empty response")
	}

	return strings.TrimSpace(parsed.Candidates[0].Content.Parts[0].Text), nil
}
