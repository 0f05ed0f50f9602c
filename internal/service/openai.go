package service

import (
	"context"
	"errors"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/smartcity/gateway/internal/domain"
)

// OpenAIEngine calls any OpenAI-compatible chat completions API, including
// Ollama's own /v1 endpoint.
type OpenAIEngine struct {
	client openai.Client
	model  string
}

// NewOpenAIEngine creates an engine. Retries are disabled: the delegate owns
// the deadline and falls back on the first failure.
func NewOpenAIEngine(baseURL, apiKey, model string, opts ...option.RequestOption) *OpenAIEngine {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	all := []option.RequestOption{
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	all = append(all, opts...)

	return &OpenAIEngine{
		client: openai.NewClient(all...),
		model:  model,
	}
}

// Generate sends prompt as a single user message
func (e *OpenAIEngine) Generate(ctx context.Context, prompt string) (Completion, error) {
	resp, err := e.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(e.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindUnreachable, err)
	}

	if len(resp.Choices) == 0 {
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindProtocolFault,
			errors.New("openai: empty choices"))
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return Refused(choice.Message.Refusal), nil
	}
	if choice.FinishReason == "content_filter" {
		return Refused("content_filter"), nil
	}
	if strings.TrimSpace(choice.Message.Content) == "" {
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindProtocolFault,
			errors.New("openai: empty answer"))
	}
	return Answered(choice.Message.Content), nil
}
