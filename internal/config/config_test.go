package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SOAP_URL", "GRAPHQL_URL", "REST_URL", "GRPC_HOST", "FANOUT_TIMEOUT", "ENGINE_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, "http://localhost:8001/", cfg.SOAPURL)
	assert.Equal(t, "http://localhost:5000/graphql", cfg.GraphQLURL)
	assert.Equal(t, "http://localhost:8002/transports", cfg.RESTURL)
	assert.Equal(t, "127.0.0.1:50051", cfg.GRPCHost)
	assert.Equal(t, ProviderOllama, cfg.EngineProvider)
	assert.Equal(t, 5*time.Second, cfg.DirectTimeout)
	assert.Equal(t, 3*time.Second, cfg.FanoutTimeout)
	assert.Equal(t, 120*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, "Tunis", cfg.AirReferenceCity)
	assert.Equal(t, MatchSubstring, cfg.IntentMatch)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("GRPC_HOST", "energy:50051")
	t.Setenv("FANOUT_TIMEOUT", "750ms")
	t.Setenv("ENGINE_PROVIDER", "OpenAI")
	t.Setenv("MOCK_MOBILITY_ADDR", ":18002")
	t.Setenv("MOBILITY_DATABASE_URL", "postgres://localhost/smartcity")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "energy:50051", cfg.GRPCHost)
	assert.Equal(t, 750*time.Millisecond, cfg.FanoutTimeout)
	assert.Equal(t, ProviderOpenAI, cfg.EngineProvider)
	assert.Equal(t, ":18002", cfg.Mock.MobilityAddr)
	assert.Equal(t, "postgres://localhost/smartcity", cfg.Mock.DatabaseURL)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("INFERENCE_TIMEOUT", "soon")
	t.Setenv("DIRECT_TIMEOUT", "-2s")

	cfg := Load()

	assert.Equal(t, 120*time.Second, cfg.InferenceTimeout)
	assert.Equal(t, 5*time.Second, cfg.DirectTimeout)
}
