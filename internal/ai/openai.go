package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAuthFailed marks a rejected API credential. It is surfaced to the user
// distinctly from transport failures and is never retried.
var ErrAuthFailed = errors.New("ai: authentication failed")

// Generator defines the text-generation interface used by the flow controller
// and commands. The API key travels per call so the web flow can use a
// session-scoped credential without the client holding one.
type Generator interface {
	// Generate sends the prompt as a single user message and returns the raw
	// model output.
	Generate(ctx context.Context, apiKey, prompt string) (string, error)
}

// OpenAIClient implements Generator using an OpenAI-compatible Chat
// Completions API.
type OpenAIClient struct {
	model     string
	baseURL   string
	maxTokens int
	timeout   time.Duration
}

type Config struct {
	Model     string
	BaseURL   string // optional
	MaxTokens int
	Timeout   time.Duration
}

func NewOpenAI(cfg Config) *OpenAIClient {
	if cfg.Model == "" {
		panic("OpenAI model must be specified")
	}
	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &OpenAIClient{
		model:     cfg.Model,
		baseURL:   cfg.BaseURL,
		maxTokens: maxTokens,
		timeout:   timeout,
	}
}

// Generate calls the chat completion endpoint once, with a single bounded
// retry on transport errors. Auth failures return ErrAuthFailed immediately.
func (o *OpenAIClient) Generate(ctx context.Context, apiKey, prompt string) (string, error) {
	out, err := o.create(ctx, apiKey, prompt)
	if err == nil {
		return out, nil
	}
	if errors.Is(err, ErrAuthFailed) || ctx.Err() != nil {
		return "", err
	}
	slog.Warn("openai: generate failed, retrying once", "err", err)
	return o.create(ctx, apiKey, prompt)
}

func (o *OpenAIClient) create(ctx context.Context, apiKey, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	client := o.newClient(apiKey)
	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   o.maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			if apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden {
				return "", fmt.Errorf("%w: %v", ErrAuthFailed, apiErr.Message)
			}
		}
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (o *OpenAIClient) newClient(apiKey string) *openai.Client {
	if o.baseURL != "" {
		cc := openai.DefaultConfig(apiKey)
		cc.BaseURL = o.baseURL
		return openai.NewClientWithConfig(cc)
	}
	return openai.NewClient(apiKey)
}
