package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/metrics"
)

// ErrEmptyQuestion is returned for blank chat questions
var ErrEmptyQuestion = errors.New("question must not be empty")

// ChatResult is the outcome of one chat round
type ChatResult struct {
	Response string
	Areas    []domain.AreaOfInterest
	Context  domain.AggregatedContext
	Outcome  Outcome
}

// ChatService runs the resolve, aggregate, infer pipeline
type ChatService struct {
	resolver   *IntentResolver
	aggregator *Aggregator
	delegate   *Delegate
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewChatService creates a new chat service
func NewChatService(resolver *IntentResolver, aggregator *Aggregator, delegate *Delegate, logger *slog.Logger, m *metrics.Metrics) *ChatService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		resolver:   resolver,
		aggregator: aggregator,
		delegate:   delegate,
		logger:     logger,
		metrics:    m,
	}
}

// Ask answers a free-text question. Backend and engine faults degrade the
// answer instead of failing it; only a blank question is an error.
func (s *ChatService) Ask(ctx context.Context, question string) (ChatResult, error) {
	if strings.TrimSpace(question) == "" {
		return ChatResult{}, ErrEmptyQuestion
	}

	areas := s.resolver.Resolve(question)
	s.metrics.ObserveAreas(len(areas))
	s.logger.Info("chat question received", "areas", areaKeywords(areas))

	actx := s.aggregator.Aggregate(ctx, areas)
	response, outcome := s.delegate.Answer(ctx, actx, question)

	return ChatResult{
		Response: response,
		Areas:    areas,
		Context:  actx,
		Outcome:  outcome,
	}, nil
}

func areaKeywords(areas []domain.AreaOfInterest) []string {
	out := make([]string, len(areas))
	for i, a := range areas {
		out[i] = a.Keyword
	}
	return out
}
