package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/smartcity/gateway/internal/domain"
)

// Sample keys probed by the diagnostics
const (
	ProbeCity     = "Tunis"
	ProbeRoad     = "X20"
	ProbeBuilding = "Batiment_A"
)

// BackendStatus is the probe result for one backend
type BackendStatus struct {
	Backend   string `json:"backend"`
	Healthy   bool   `json:"healthy"`
	LatencyMS int64  `json:"latencyMs"`
	Kind      string `json:"kind,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Report is the result of one diagnostics run
type Report struct {
	Healthy  bool            `json:"healthy"`
	Backends []BackendStatus `json:"backends"`
}

// Diagnostics probes every backend with a known sample key
type Diagnostics struct {
	air      domain.AirQualityClient
	traffic  domain.TrafficClient
	mobility domain.MobilityClient
	energy   domain.EnergyClient
	timeout  time.Duration
	logger   *slog.Logger
}

// NewDiagnostics creates a diagnostics prober
func NewDiagnostics(
	air domain.AirQualityClient,
	traffic domain.TrafficClient,
	mobility domain.MobilityClient,
	energy domain.EnergyClient,
	timeout time.Duration,
	logger *slog.Logger,
) *Diagnostics {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Diagnostics{
		air:      air,
		traffic:  traffic,
		mobility: mobility,
		energy:   energy,
		timeout:  timeout,
		logger:   logger,
	}
}

// Check probes all four backends concurrently. Backends are reported in a
// fixed order: air, traffic, mobility, energy.
func (d *Diagnostics) Check(ctx context.Context) Report {
	probes := []struct {
		backend string
		call    func(ctx context.Context) error
	}{
		{domain.BackendAir, func(ctx context.Context) error {
			_, err := d.air.GetAirQuality(ctx, ProbeCity)
			return err
		}},
		{domain.BackendTraffic, func(ctx context.Context) error {
			_, err := d.traffic.GetTraffic(ctx, ProbeRoad)
			return err
		}},
		{domain.BackendMobility, func(ctx context.Context) error {
			_, err := d.mobility.ListTransports(ctx)
			return err
		}},
		{domain.BackendEnergy, func(ctx context.Context) error {
			_, err := d.energy.GetEnergy(ctx, ProbeBuilding)
			return err
		}},
	}

	report := Report{Healthy: true, Backends: make([]BackendStatus, len(probes))}

	var wg sync.WaitGroup
	for i, p := range probes {
		wg.Add(1)
		go func(i int, backend string, call func(context.Context) error) {
			defer wg.Done()
			report.Backends[i] = d.probe(ctx, backend, call)
		}(i, p.backend, p.call)
	}
	wg.Wait()

	for _, b := range report.Backends {
		if !b.Healthy {
			report.Healthy = false
		}
	}
	return report
}

func (d *Diagnostics) probe(ctx context.Context, backend string, call func(context.Context) error) BackendStatus {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	start := time.Now()
	err := call(ctx)
	status := BackendStatus{
		Backend:   backend,
		Healthy:   err == nil,
		LatencyMS: time.Since(start).Milliseconds(),
	}
	if err != nil {
		status.Error = err.Error()
		if kind, ok := domain.KindOf(err); ok {
			status.Kind = kind.String()
		}
		d.logger.Warn("backend probe failed", "backend", backend, "error", err)
	}
	return status
}
