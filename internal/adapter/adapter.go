// Package adapter implements one client per backend protocol (SOAP, GraphQL,
// REST, gRPC). Every client funnels its calls through invoke, which applies
// the per-call timeout and normalizes failures into *domain.BackendError.
package adapter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"syscall"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/metrics"
)

const (
	defaultTimeout = 5 * time.Second
	maxBodyBytes   = 1 << 20
)

// ErrEmptyKey is returned before any network call when the lookup key is blank
var ErrEmptyKey = errors.New("adapter: empty lookup key")

// Options configures a protocol client
type Options struct {
	// Timeout bounds a single call. Callers may pass a shorter deadline in ctx.
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *slog.Logger
	Metrics    *metrics.Metrics
}

type base struct {
	timeout time.Duration
	http    *http.Client
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func newBase(opts Options) base {
	b := base{
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if b.timeout <= 0 {
		b.timeout = defaultTimeout
	}
	if b.http == nil {
		b.http = &http.Client{}
	}
	if b.logger == nil {
		b.logger = slog.Default()
	}
	return b
}

// invoke runs fn under the client timeout and classifies whatever error it returns
func invoke[T any](ctx context.Context, b base, backend string, fn func(ctx context.Context) (T, error)) (T, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	start := time.Now()
	out, err := fn(ctx)
	elapsed := time.Since(start)

	if err != nil {
		be := classify(backend, err)
		b.metrics.ObserveBackendCall(backend, be.Kind.String(), elapsed)
		level := slog.LevelWarn
		if be.Kind == domain.KindNotFound {
			level = slog.LevelDebug
		}
		b.logger.Log(ctx, level, "backend call failed",
			"backend", backend,
			"kind", be.Kind.String(),
			"error", be.Err,
			"elapsed", elapsed,
		)
		var zero T
		return zero, be
	}

	b.metrics.ObserveBackendCall(backend, "ok", elapsed)
	return out, nil
}

// classify maps transport and protocol errors onto the BackendError taxonomy
func classify(backend string, err error) *domain.BackendError {
	var be *domain.BackendError
	if errors.As(err, &be) {
		if be.Backend == "" {
			be.Backend = backend
		}
		return be
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return domain.NewBackendError(backend, domain.KindUnreachable, err)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.DeadlineExceeded, codes.Canceled:
			return domain.NewBackendError(backend, domain.KindUnreachable, err)
		case codes.NotFound:
			return domain.NewBackendError(backend, domain.KindNotFound, err)
		default:
			return domain.NewBackendError(backend, domain.KindProtocolFault, err)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, io.ErrUnexpectedEOF) {
		return domain.NewBackendError(backend, domain.KindUnreachable, err)
	}

	return domain.NewBackendError(backend, domain.KindProtocolFault, err)
}

// statusError turns a non-2xx HTTP answer into a classified error
func statusError(backend string, code int, body []byte) *domain.BackendError {
	err := fmt.Errorf("unexpected status %d: %s", code, truncate(body, 200))
	switch code {
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.NewBackendError(backend, domain.KindUnreachable, err)
	case http.StatusNotFound:
		return domain.NewBackendError(backend, domain.KindNotFound, err)
	default:
		return domain.NewBackendError(backend, domain.KindProtocolFault, err)
	}
}

// protocolFault builds a KindProtocolFault error with a formatted cause
func protocolFault(backend, format string, args ...any) *domain.BackendError {
	return domain.NewBackendError(backend, domain.KindProtocolFault, fmt.Errorf(format, args...))
}

// do sends req and reads a bounded body
func (b base) do(req *http.Request) (int, []byte, error) {
	resp, err := b.http.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
