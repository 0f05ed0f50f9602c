package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/metrics"
)

// Completion is what a reachable engine produced: either an answer or an
// application-level refusal carried inside a successful response.
type Completion struct {
	Text    string
	Refused bool
	Reason  string
}

// Answered wraps a successful engine answer
func Answered(text string) Completion {
	return Completion{Text: text}
}

// Refused wraps an engine-side refusal
func Refused(reason string) Completion {
	return Completion{Refused: true, Reason: reason}
}

// Engine generates text from a prompt. A returned error means the engine
// could not be used at all (unreachable, timeout, non-200, garbage payload).
type Engine interface {
	Generate(ctx context.Context, prompt string) (Completion, error)
}

// Outcome classifies how an inference round ended
type Outcome string

const (
	OutcomeAnswered    Outcome = "answered"
	OutcomeRefused     Outcome = "refused"
	OutcomeUnreachable Outcome = "unreachable"
)

// Fallback texts returned when the engine cannot answer
const (
	RefusedPrefix     = "Erreur du cerveau : "
	UnreachablePrefix = "Je n'arrive pas à joindre mon cerveau IA, mais voici les données brutes : "
)

// Delegate turns an aggregated context and a question into an answer
type Delegate struct {
	engine  Engine
	timeout time.Duration
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewDelegate creates a delegate bounding each engine call by timeout
func NewDelegate(engine Engine, timeout time.Duration, logger *slog.Logger, m *metrics.Metrics) *Delegate {
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Delegate{engine: engine, timeout: timeout, logger: logger, metrics: m}
}

// Answer never fails: engine faults are turned into fallback text, and the
// unreachable fallback embeds the serialized context.
func (d *Delegate) Answer(ctx context.Context, actx domain.AggregatedContext, question string) (string, Outcome) {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	prompt := BuildPrompt(actx, question)

	start := time.Now()
	completion, err := d.engine.Generate(ctx, prompt)
	elapsed := time.Since(start)

	if err == nil && !completion.Refused && strings.TrimSpace(completion.Text) == "" {
		err = domain.NewBackendError(domain.BackendEngine, domain.KindProtocolFault, errors.New("empty answer"))
	}

	switch {
	case err != nil:
		d.logger.Error("completion engine unavailable", "error", err, "elapsed", elapsed)
		d.metrics.ObserveInference(string(OutcomeUnreachable))
		return UnreachablePrefix + actx.String(), OutcomeUnreachable

	case completion.Refused:
		d.logger.Warn("completion engine refused", "reason", completion.Reason, "elapsed", elapsed)
		d.metrics.ObserveInference(string(OutcomeRefused))
		return RefusedPrefix + completion.Reason, OutcomeRefused

	default:
		d.logger.Info("completion engine answered", "elapsed", elapsed, "chars", len(completion.Text))
		d.metrics.ObserveInference(string(OutcomeAnswered))
		return completion.Text, OutcomeAnswered
	}
}

// BuildPrompt embeds the facts as a labeled list together with the question
// and the answering instructions.
func BuildPrompt(actx domain.AggregatedContext, question string) string {
	var b strings.Builder

	b.WriteString("Tu es l'assistant intelligent de Tunis (Smart City).\n")
	b.WriteString("Voici les données techniques actuelles :\n")
	if actx.IsEmpty() {
		b.WriteString(actx.Hint)
		b.WriteString("\n")
	} else {
		for _, topic := range actx.Topics() {
			fmt.Fprintf(&b, "- %s : %s\n", topic, actx.Facts[topic])
		}
	}

	fmt.Fprintf(&b, "\nL'utilisateur demande : %q\n\n", question)

	b.WriteString("Réponds-lui de manière naturelle, utile et brève (en français).\n")
	b.WriteString("Si les données indiquent un problème (bouchon, retard), préviens l'utilisateur.\n")
	b.WriteString("Base-toi UNIQUEMENT sur les données fournies.\n")

	return b.String()
}
