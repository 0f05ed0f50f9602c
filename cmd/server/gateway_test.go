package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartcity/gateway/internal/config"
	"github.com/smartcity/gateway/internal/service"
)

func TestNewResolver(t *testing.T) {
	t.Run("built-in substring table", func(t *testing.T) {
		r, err := newResolver(&config.Config{IntentMatch: config.MatchSubstring})
		require.NoError(t, err)
		assert.Len(t, r.Resolve("une place"), 1)
	})

	t.Run("word mode", func(t *testing.T) {
		r, err := newResolver(&config.Config{IntentMatch: config.MatchWord})
		require.NoError(t, err)
		assert.Empty(t, r.Resolve("une place"))
	})

	t.Run("custom table", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "zones.yaml")
		require.NoError(t, os.WriteFile(path, []byte("zones:\n  - keyword: soukra\n    road: X20\n"), 0o600))

		r, err := newResolver(&config.Config{IntentTablePath: path})
		require.NoError(t, err)
		assert.Equal(t, []string{"soukra"}, r.ZoneNames())
	})

	t.Run("missing table", func(t *testing.T) {
		_, err := newResolver(&config.Config{IntentTablePath: filepath.Join(t.TempDir(), "nope.yaml")})
		assert.Error(t, err)
	})
}

func TestNewEngine(t *testing.T) {
	assert.IsType(t, &service.OllamaEngine{}, newEngine(&config.Config{EngineProvider: config.ProviderOllama}))
	assert.IsType(t, &service.OpenAIEngine{}, newEngine(&config.Config{
		EngineProvider: config.ProviderOpenAI,
		OpenAIBaseURL:  "http://localhost:11434/v1",
		OpenAIAPIKey:   "ollama",
		OpenAIModel:    "llama3",
	}))
}

func TestZoneHint(t *testing.T) {
	hint := zoneHint([]string{"soukra", "la marsa"})
	assert.Contains(t, hint, "Soukra, La marsa...")

	long := zoneHint([]string{"a", "b", "c", "d", "e", "f", "g", "h"})
	assert.NotContains(t, long, "G")
}

func TestPrintReport(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	printReport(&buf, service.Report{Backends: []service.BackendStatus{
		{Backend: "air", Healthy: true, LatencyMS: 3},
		{Backend: "energy", Kind: "unreachable", Error: "connection refused"},
	}})

	out := buf.String()
	assert.Contains(t, out, "✔ air")
	assert.Contains(t, out, "✘ energy")
	assert.Contains(t, out, "unreachable connection refused")
}
