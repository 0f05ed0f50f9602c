// Package config loads gateway settings from the environment with documented defaults.
package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Engine providers
const (
	ProviderOllama = "ollama"
	ProviderOpenAI = "openai"
)

// Intent match modes
const (
	MatchSubstring = "substring"
	MatchWord      = "word"
)

// Config holds every externally configurable setting
type Config struct {
	Port string
	Env  string

	SOAPURL    string
	GraphQLURL string
	RESTURL    string
	GRPCHost   string

	EngineProvider string
	OllamaURL      string
	OllamaModel    string
	OpenAIBaseURL  string
	OpenAIAPIKey   string
	OpenAIModel    string

	DirectTimeout    time.Duration
	FanoutTimeout    time.Duration
	InferenceTimeout time.Duration

	AirReferenceCity string
	IntentTablePath  string
	IntentMatch      string

	LogLevel  string
	LogFormat string

	Mock MockConfig
}

// MockConfig holds listen addresses for the bundled mock backends
type MockConfig struct {
	AirAddr      string
	TrafficAddr  string
	MobilityAddr string
	EnergyAddr   string
	// DatabaseURL backs the mobility service with PostgreSQL; empty keeps it in memory
	DatabaseURL string
}

// Load reads an optional .env file and then the process environment.
// Missing or malformed values never fail; defaults apply instead.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using system environment")
	}

	return &Config{
		Port: getEnv("PORT", "8000"),
		Env:  getEnv("GO_ENV", "development"),

		SOAPURL:    getEnv("SOAP_URL", "http://localhost:8001/"),
		GraphQLURL: getEnv("GRAPHQL_URL", "http://localhost:5000/graphql"),
		RESTURL:    getEnv("REST_URL", "http://localhost:8002/transports"),
		GRPCHost:   getEnv("GRPC_HOST", "127.0.0.1:50051"),

		EngineProvider: strings.ToLower(getEnv("ENGINE_PROVIDER", ProviderOllama)),
		OllamaURL:      getEnv("OLLAMA_URL", "http://localhost:11434/api/generate"),
		OllamaModel:    getEnv("OLLAMA_MODEL", "llama3:latest"),
		OpenAIBaseURL:  getEnv("OPENAI_BASE_URL", "http://localhost:11434/v1"),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", "ollama"),
		OpenAIModel:    getEnv("OPENAI_MODEL", "llama3:latest"),

		DirectTimeout:    getDuration("DIRECT_TIMEOUT", 5*time.Second),
		FanoutTimeout:    getDuration("FANOUT_TIMEOUT", 3*time.Second),
		InferenceTimeout: getDuration("INFERENCE_TIMEOUT", 120*time.Second),

		AirReferenceCity: getEnv("AIR_REFERENCE_CITY", "Tunis"),
		IntentTablePath:  getEnv("INTENT_TABLE", ""),
		IntentMatch:      strings.ToLower(getEnv("INTENT_MATCH", MatchSubstring)),

		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat: strings.ToLower(getEnv("LOG_FORMAT", "text")),

		Mock: MockConfig{
			AirAddr:      getEnv("MOCK_AIR_ADDR", ":8001"),
			TrafficAddr:  getEnv("MOCK_TRAFFIC_ADDR", ":5000"),
			MobilityAddr: getEnv("MOCK_MOBILITY_ADDR", ":8002"),
			EnergyAddr:   getEnv("MOCK_ENERGY_ADDR", ":50051"),
			DatabaseURL:  getEnv("MOBILITY_DATABASE_URL", ""),
		},
	}
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	switch c.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if c.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration, using default", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return d
}
