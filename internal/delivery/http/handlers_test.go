package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/internal/metrics"
	"github.com/smartcity/gateway/internal/repository/memory"
	"github.com/smartcity/gateway/internal/service"
)

type stubAir struct{ err error }

func (s stubAir) GetAirQuality(ctx context.Context, city string) (domain.AirQuality, error) {
	if s.err != nil {
		return domain.AirQuality{}, s.err
	}
	return memory.LookupAir(city), nil
}

type stubTraffic struct{ err error }

func (s stubTraffic) GetTraffic(ctx context.Context, roadID string) (domain.Traffic, error) {
	if s.err != nil {
		return domain.Traffic{}, s.err
	}
	if t, ok := memory.LookupTraffic(roadID); ok {
		return t, nil
	}
	return domain.UnknownTraffic(roadID), nil
}

type stubMobility struct{ err error }

func (s stubMobility) ListTransports(ctx context.Context) ([]domain.Transport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return memory.DefaultTransports(), nil
}

func (s stubMobility) GetTransport(ctx context.Context, id int) (domain.Transport, error) {
	for _, t := range memory.DefaultTransports() {
		if t.ID == id {
			return t, nil
		}
	}
	return domain.Transport{}, domain.NewBackendError(domain.BackendMobility, domain.KindNotFound, errors.New("Transport non trouvé"))
}

type stubEnergy struct{ err error }

func (s stubEnergy) GetEnergy(ctx context.Context, buildingID string) (domain.Energy, error) {
	if s.err != nil {
		return domain.Energy{}, s.err
	}
	return memory.LookupEnergy(buildingID), nil
}

type stubAsker struct {
	question string
}

func (s *stubAsker) Ask(ctx context.Context, question string) (service.ChatResult, error) {
	s.question = question
	return service.ChatResult{Response: "Réponse: " + question}, nil
}

type stubProber struct{ report service.Report }

func (s stubProber) Check(ctx context.Context) service.Report {
	return s.report
}

func newTestApp(deps Dependencies) *fiber.App {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app := NewApp(AppConfig{Logger: logger})
	SetupRoutes(app, deps, metrics.New())
	return app
}

func healthyDeps() Dependencies {
	return Dependencies{
		Air:      stubAir{},
		Traffic:  stubTraffic{},
		Mobility: stubMobility{},
		Energy:   stubEnergy{},
		Chat:     &stubAsker{},
		Prober:   stubProber{report: service.Report{Healthy: true}},
	}
}

func doRequest(t *testing.T, app *fiber.App, method, target, body string) (int, string) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(raw)
}

func TestHealthCheck(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, body := doRequest(t, app, "GET", "/health", "")
	assert.Equal(t, 200, code)
	assert.Equal(t, "ok", gjson.Get(body, "status").String())
}

func TestGetAirQuality(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, body := doRequest(t, app, "GET", "/api/air/Tunis", "")
	require.Equal(t, 200, code)
	assert.True(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, int64(55), gjson.Get(body, "data.aqi").Int())
	assert.Equal(t, "Moyen", gjson.Get(body, "data.status").String())
}

func TestGetTraffic_EscapedRoadID(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, body := doRequest(t, app, "GET", "/api/traffic/Route%20X", "")
	require.Equal(t, 200, code)
	assert.Equal(t, "Route X", gjson.Get(body, "data.roadId").String())
	assert.Equal(t, "Fluide", gjson.Get(body, "data.congestionLevel").String())
	assert.Equal(t, 70.0, gjson.Get(body, "data.averageSpeed").Float())
}

func TestGetTraffic_UnknownRoadIsSentinel(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, body := doRequest(t, app, "GET", "/api/traffic/R999", "")
	require.Equal(t, 200, code)
	assert.Equal(t, domain.UnknownLabel, gjson.Get(body, "data.congestionLevel").String())
}

func TestListTransports(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, body := doRequest(t, app, "GET", "/api/mobility", "")
	require.Equal(t, 200, code)
	assert.Equal(t, int64(11), gjson.Get(body, "count").Int())
	assert.Equal(t, "Nord", gjson.Get(body, "data.0.line").String())
}

func TestGetTransport(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, body := doRequest(t, app, "GET", "/api/mobility/4", "")
	require.Equal(t, 200, code)
	assert.Equal(t, "Bardo", gjson.Get(body, "data.destination").String())

	code, body = doRequest(t, app, "GET", "/api/mobility/99", "")
	assert.Equal(t, 404, code)
	assert.True(t, gjson.Get(body, "error").Bool())

	code, _ = doRequest(t, app, "GET", "/api/mobility/abc", "")
	assert.Equal(t, 400, code)
}

func TestGetEnergy(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, body := doRequest(t, app, "GET", "/api/energy/Batiment_B", "")
	require.Equal(t, 200, code)
	assert.Equal(t, 450.0, gjson.Get(body, "data.consumptionKwh").Float())
	assert.Equal(t, "Surcharge", gjson.Get(body, "data.status").String())
}

func TestDirectEndpoints_BackendErrors(t *testing.T) {
	down := errors.New("connection refused")

	tests := []struct {
		name   string
		deps   func(d *Dependencies)
		target string
		code   int
	}{
		{
			name:   "air unreachable",
			deps:   func(d *Dependencies) { d.Air = stubAir{err: domain.NewBackendError(domain.BackendAir, domain.KindUnreachable, down)} },
			target: "/api/air/Tunis",
			code:   503,
		},
		{
			name:   "traffic protocol fault",
			deps:   func(d *Dependencies) { d.Traffic = stubTraffic{err: domain.NewBackendError(domain.BackendTraffic, domain.KindProtocolFault, down)} },
			target: "/api/traffic/X20",
			code:   502,
		},
		{
			name:   "mobility unreachable",
			deps:   func(d *Dependencies) { d.Mobility = stubMobility{err: domain.NewBackendError(domain.BackendMobility, domain.KindUnreachable, down)} },
			target: "/api/mobility",
			code:   503,
		},
		{
			name:   "energy unreachable",
			deps:   func(d *Dependencies) { d.Energy = stubEnergy{err: domain.NewBackendError(domain.BackendEnergy, domain.KindUnreachable, down)} },
			target: "/api/energy/Batiment_A",
			code:   503,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := healthyDeps()
			tt.deps(&deps)
			app := newTestApp(deps)

			code, body := doRequest(t, app, "GET", tt.target, "")
			assert.Equal(t, tt.code, code)
			assert.True(t, gjson.Get(body, "error").Bool())
			assert.Contains(t, gjson.Get(body, "message").String(), "connection refused")
		})
	}
}

func TestChat(t *testing.T) {
	asker := &stubAsker{}
	deps := healthyDeps()
	deps.Chat = asker
	app := newTestApp(deps)

	code, body := doRequest(t, app, "POST", "/api/chat", `{"question":"Il y a du trafic vers Ennasr?"}`)
	require.Equal(t, 200, code)
	assert.Equal(t, "Réponse: Il y a du trafic vers Ennasr?", gjson.Get(body, "response").String())
	assert.Equal(t, "Il y a du trafic vers Ennasr?", asker.question)
}

func TestChat_BadRequests(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, _ := doRequest(t, app, "POST", "/api/chat", `{"question":`)
	assert.Equal(t, 400, code)

	code, _ = doRequest(t, app, "POST", "/api/chat", `{"question":"  "}`)
	assert.Equal(t, 400, code)

	code, _ = doRequest(t, app, "POST", "/api/chat", `{}`)
	assert.Equal(t, 400, code)
}

func TestStatus(t *testing.T) {
	deps := healthyDeps()
	deps.Prober = stubProber{report: service.Report{
		Healthy: false,
		Backends: []service.BackendStatus{
			{Backend: "air", Healthy: true},
			{Backend: "energy", Healthy: false, Kind: "unreachable", Error: "down"},
		},
	}}
	app := newTestApp(deps)

	code, body := doRequest(t, app, "GET", "/api/status", "")
	require.Equal(t, 200, code)
	assert.False(t, gjson.Get(body, "success").Bool())
	assert.Equal(t, "unreachable", gjson.Get(body, "data.backends.1.kind").String())
}

func TestMetricsEndpoint(t *testing.T) {
	app := newTestApp(healthyDeps())

	code, body := doRequest(t, app, "GET", "/metrics", "")
	require.Equal(t, 200, code)
	assert.Contains(t, body, "go_goroutines")
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(healthyDeps())

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Len(t, resp.Header.Get(fiber.HeaderXRequestID), 36)
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, 503, StatusFor(domain.KindUnreachable))
	assert.Equal(t, 502, StatusFor(domain.KindProtocolFault))
	assert.Equal(t, 404, StatusFor(domain.KindNotFound))
}
