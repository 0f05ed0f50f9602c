package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/smartcity/gateway/internal/adapter"
	"github.com/smartcity/gateway/internal/config"
	"github.com/smartcity/gateway/internal/delivery/http"
	"github.com/smartcity/gateway/internal/metrics"
	"github.com/smartcity/gateway/internal/service"
	"github.com/smartcity/gateway/pkg/utils"
)

// gateway holds the wired clients and services shared by every command
type gateway struct {
	metrics *metrics.Metrics

	air      *adapter.AirClient
	traffic  *adapter.TrafficClient
	mobility *adapter.MobilityClient
	energy   *adapter.EnergyClient

	chat        *service.ChatService
	diagnostics *service.Diagnostics
}

func newGateway(cfg *config.Config, logger *slog.Logger) (*gateway, error) {
	m := metrics.New()

	opts := adapter.Options{
		Timeout: cfg.DirectTimeout,
		Logger:  logger,
		Metrics: m,
	}

	energy, err := adapter.NewEnergyClient(cfg.GRPCHost, opts)
	if err != nil {
		return nil, fmt.Errorf("gateway: energy client: %w", err)
	}

	gw := &gateway{
		metrics:  m,
		air:      adapter.NewAirClient(cfg.SOAPURL, opts),
		traffic:  adapter.NewTrafficClient(cfg.GraphQLURL, opts),
		mobility: adapter.NewMobilityClient(cfg.RESTURL, opts),
		energy:   energy,
	}

	resolver, err := newResolver(cfg)
	if err != nil {
		energy.Close()
		return nil, err
	}

	hint := service.DefaultContextHint
	if cfg.IntentTablePath != "" {
		hint = zoneHint(resolver.ZoneNames())
	}

	aggregator := service.NewAggregator(gw.air, gw.traffic, gw.mobility, service.AggregatorConfig{
		ReferenceCity: cfg.AirReferenceCity,
		Timeout:       cfg.FanoutTimeout,
		Hint:          hint,
		Logger:        logger,
	})

	delegate := service.NewDelegate(newEngine(cfg), cfg.InferenceTimeout, logger, m)

	gw.chat = service.NewChatService(resolver, aggregator, delegate, logger, m)
	gw.diagnostics = service.NewDiagnostics(gw.air, gw.traffic, gw.mobility, gw.energy, cfg.FanoutTimeout, logger)

	logger.Info("gateway wired",
		"soap", cfg.SOAPURL,
		"graphql", cfg.GraphQLURL,
		"rest", cfg.RESTURL,
		"grpc", cfg.GRPCHost,
		"engine", cfg.EngineProvider,
		"zones", len(resolver.ZoneNames()),
	)
	return gw, nil
}

func (g *gateway) dependencies() http.Dependencies {
	return http.Dependencies{
		Air:      g.air,
		Traffic:  g.traffic,
		Mobility: g.mobility,
		Energy:   g.energy,
		Chat:     g.chat,
		Prober:   g.diagnostics,
	}
}

func (g *gateway) Close() error {
	return g.energy.Close()
}

func newResolver(cfg *config.Config) (*service.IntentResolver, error) {
	zones := service.DefaultZones()
	if cfg.IntentTablePath != "" {
		loaded, err := service.LoadZones(cfg.IntentTablePath)
		if err != nil {
			return nil, err
		}
		zones = loaded
	}

	if cfg.IntentMatch == config.MatchWord {
		return service.NewWordIntentResolver(zones), nil
	}
	return service.NewIntentResolver(zones), nil
}

func newEngine(cfg *config.Config) service.Engine {
	if cfg.EngineProvider == config.ProviderOpenAI {
		return service.NewOpenAIEngine(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	}
	return service.NewOllamaEngine(cfg.OllamaURL, cfg.OllamaModel)
}

// zoneHint lists the first zones of a custom table in the sentinel context
func zoneHint(names []string) string {
	const shown = 6
	if len(names) > shown {
		names = names[:shown]
	}
	capitalized := make([]string, len(names))
	for i, n := range names {
		capitalized[i] = utils.Capitalize(n)
	}
	return "Aucune donnée précise trouvée dans les capteurs. Dis à l'utilisateur que tu gères les zones : " +
		strings.Join(capitalized, ", ") + "..."
}
