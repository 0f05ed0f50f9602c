package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/smartcity/gateway/internal/domain"
	"github.com/smartcity/gateway/pkg/utils"
)

// Topic labels and canned facts used in the aggregated context
const (
	AirTopic           = "Air sur le Grand Tunis"
	NoDirectLineFact   = "Pas de ligne directe trouvée."
	DefaultContextHint = "Aucune donnée précise trouvée dans les capteurs. Dis à l'utilisateur que tu gères les zones : Marsa, Lac, Bardo, Centre-Ville, Ennasr, Mourouj..."
)

// TransportTopic is the context label for transports towards an area
func TransportTopic(keyword string) string {
	return "Transport vers " + utils.Capitalize(keyword)
}

// RoadTopic is the context label for the main road of an area
func RoadTopic(roadID string) string {
	return fmt.Sprintf("Route Principale (%s)", roadID)
}

// AggregatorConfig tunes the fan-out
type AggregatorConfig struct {
	// ReferenceCity is queried once per request; air quality is treated as city-wide
	ReferenceCity string
	// Timeout bounds each backend lookup of the fan-out
	Timeout time.Duration
	// Hint is the sentinel context text when nothing was detected or fetched
	Hint   string
	Logger *slog.Logger
}

// Aggregator builds the evidence bundle for a chat question by querying the
// mobility, traffic and air backends concurrently.
type Aggregator struct {
	air      domain.AirQualityClient
	traffic  domain.TrafficClient
	mobility domain.MobilityClient

	referenceCity string
	timeout       time.Duration
	hint          string
	logger        *slog.Logger
}

// NewAggregator creates an aggregator
func NewAggregator(
	air domain.AirQualityClient,
	traffic domain.TrafficClient,
	mobility domain.MobilityClient,
	cfg AggregatorConfig,
) *Aggregator {
	a := &Aggregator{
		air:           air,
		traffic:       traffic,
		mobility:      mobility,
		referenceCity: cfg.ReferenceCity,
		timeout:       cfg.Timeout,
		hint:          cfg.Hint,
		logger:        cfg.Logger,
	}
	if a.referenceCity == "" {
		a.referenceCity = "Tunis"
	}
	if a.timeout <= 0 {
		a.timeout = 3 * time.Second
	}
	if a.hint == "" {
		a.hint = DefaultContextHint
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	return a
}

// Aggregate fetches transports per area, traffic per distinct road and air
// quality once, all concurrently, and waits for every lookup to return or
// time out. A failed lookup only drops its own topic.
func (a *Aggregator) Aggregate(ctx context.Context, areas []domain.AreaOfInterest) domain.AggregatedContext {
	if len(areas) == 0 {
		return domain.EmptyContext(a.hint)
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		result = domain.NewAggregatedContext()
	)

	record := func(topic, fact string) {
		mu.Lock()
		result.Facts[topic] = fact
		mu.Unlock()
	}

	seenAreas := make(map[string]bool, len(areas))
	seenRoads := make(map[string]bool, len(areas))

	for _, area := range areas {
		if seenAreas[area.Keyword] {
			continue
		}
		seenAreas[area.Keyword] = true

		wg.Add(1)
		go func(area domain.AreaOfInterest) {
			defer wg.Done()
			a.collectTransports(ctx, area, record)
		}(area)

		if seenRoads[area.RoadID] {
			continue
		}
		seenRoads[area.RoadID] = true

		wg.Add(1)
		go func(roadID string) {
			defer wg.Done()
			a.collectTraffic(ctx, roadID, record)
		}(area.RoadID)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.collectAir(ctx, record)
	}()

	wg.Wait()

	if result.IsEmpty() {
		a.logger.Warn("aggregation produced no facts, using hint", "areas", len(areas))
		return domain.EmptyContext(a.hint)
	}
	return result
}

func (a *Aggregator) collectTransports(ctx context.Context, area domain.AreaOfInterest, record func(string, string)) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	all, err := a.mobility.ListTransports(ctx)
	if err != nil {
		a.logger.Warn("dropping transport topic", "keyword", area.Keyword, "error", err)
		return
	}

	var relevant []string
	for _, t := range all {
		if utils.ContainsFold(t.Destination, area.Keyword) {
			relevant = append(relevant, formatTransport(t))
		}
	}

	if len(relevant) == 0 {
		record(TransportTopic(area.Keyword), NoDirectLineFact)
		return
	}
	record(TransportTopic(area.Keyword), strings.Join(relevant, "; "))
}

func (a *Aggregator) collectTraffic(ctx context.Context, roadID string, record func(string, string)) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	t, err := a.traffic.GetTraffic(ctx, roadID)
	if err != nil {
		a.logger.Warn("dropping traffic topic", "road_id", roadID, "error", err)
		return
	}
	if !t.Known() {
		a.logger.Debug("no traffic data for road", "road_id", roadID)
		return
	}
	record(RoadTopic(roadID), fmt.Sprintf("Vitesse=%skm/h, État=%s", utils.FormatNumber(t.AverageSpeed), t.CongestionLevel))
}

func (a *Aggregator) collectAir(ctx context.Context, record func(string, string)) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	aq, err := a.air.GetAirQuality(ctx, a.referenceCity)
	if err != nil {
		a.logger.Warn("dropping air topic", "city", a.referenceCity, "error", err)
		return
	}
	record(AirTopic, fmt.Sprintf("AQI=%d, Status=%s", aq.AQI, aq.Status))
}

func formatTransport(t domain.Transport) string {
	return fmt.Sprintf("%s %s vers %s (%s)", t.Type, t.Line, t.Destination, t.Status)
}
