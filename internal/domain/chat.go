package domain

import (
	"bytes"
	"encoding/json"
	"sort"
)

// ChatRequest is the body of the chat endpoint
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is always returned by the chat endpoint, even when degraded
type ChatResponse struct {
	Response string `json:"response"`
}

// AggregatedContext is the evidence bundle handed to the completion engine.
// It only holds strings and never references live backend state.
type AggregatedContext struct {
	Facts map[string]string `json:"facts,omitempty"`
	Hint  string            `json:"hint,omitempty"`
}

// NewAggregatedContext returns an empty context ready for facts
func NewAggregatedContext() AggregatedContext {
	return AggregatedContext{Facts: make(map[string]string)}
}

// EmptyContext is the sentinel form used when no area was detected or nothing could be fetched
func EmptyContext(hint string) AggregatedContext {
	return AggregatedContext{Hint: hint}
}

// IsEmpty reports whether the context carries no facts
func (c AggregatedContext) IsEmpty() bool {
	return len(c.Facts) == 0
}

// Topics returns the fact labels in sorted order
func (c AggregatedContext) Topics() []string {
	topics := make([]string, 0, len(c.Facts))
	for topic := range c.Facts {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// String renders the facts as a JSON object with sorted keys, or the hint for the sentinel form
func (c AggregatedContext) String() string {
	if c.IsEmpty() {
		return c.Hint
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// encoding/json sorts map keys
	if err := enc.Encode(c.Facts); err != nil {
		return c.Hint
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n"))
}
