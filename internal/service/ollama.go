package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/pkg/utils"
)

// OllamaEngine calls Ollama's /api/generate endpoint
type OllamaEngine struct {
	url        string
	model      string
	httpClient *http.Client
}

// NewOllamaEngine creates an engine for the generate endpoint at url.
// The call deadline comes from the caller's context.
func NewOllamaEngine(url, model string) *OllamaEngine {
	return &OllamaEngine{
		url:        url,
		model:      model,
		httpClient: &http.Client{},
	}
}

type ollamaRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Generate sends prompt without streaming. Ollama reports model-side
// problems as {"error": "..."}, sometimes with a 200 status; that is a
// refusal, not a transport failure.
func (e *OllamaEngine) Generate(ctx context.Context, prompt string) (Completion, error) {
	body, err := json.Marshal(ollamaRequest{Model: e.model, Prompt: prompt, Stream: false})
	if err != nil {
		return Completion{}, fmt.Errorf("ollama: failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.url, bytes.NewReader(body))
	if err != nil {
		return Completion{}, fmt.Errorf("ollama: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindUnreachable, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindUnreachable,
			fmt.Errorf("status %d: %s", resp.StatusCode, utils.Truncate(string(bytes.TrimSpace(payload)), 200)))
	}

	if !gjson.ValidBytes(payload) {
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindProtocolFault,
			fmt.Errorf("invalid json response"))
	}

	if reason := gjson.GetBytes(payload, "error"); reason.Type != gjson.Null && reason.String() != "" {
		return Refused(reason.String()), nil
	}

	answer := gjson.GetBytes(payload, "response")
	if answer.Type != gjson.String {
		return Completion{}, domain.NewBackendError(domain.BackendEngine, domain.KindProtocolFault,
			fmt.Errorf("missing response field"))
	}
	return Answered(answer.String()), nil
}
