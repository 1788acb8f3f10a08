package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "LOG_FORMAT", "FETCH_TIMEOUT", "ALLOW_PRIVATE_NETWORKS",
		"ANTHROPIC_API_KEY", "SUMMARY_MODEL", "SUMMARY_MAX_TOKENS", "TRACE_EXPORTER",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ERROR", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.False(t, cfg.AllowPrivateNetworks)
	assert.Empty(t, cfg.AnthropicAPIKey, "missing key must not fail Load")
	assert.Equal(t, defaultSummaryModel, cfg.SummaryModel)
	assert.Equal(t, defaultSummaryMaxTokens, cfg.SummaryMaxTokens)
	assert.Equal(t, "none", cfg.TraceExporter)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_FORMAT", "TEXT")
	t.Setenv("FETCH_TIMEOUT", "12s")
	t.Setenv("ALLOW_PRIVATE_NETWORKS", "true")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("SUMMARY_MODEL", "claude-test")
	t.Setenv("SUMMARY_MAX_TOKENS", "64")
	t.Setenv("TRACE_EXPORTER", "Stdout")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 12*time.Second, cfg.FetchTimeout)
	assert.True(t, cfg.AllowPrivateNetworks)
	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
	assert.Equal(t, "claude-test", cfg.SummaryModel)
	assert.Equal(t, 64, cfg.SummaryMaxTokens)
	assert.Equal(t, "stdout", cfg.TraceExporter)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port not a number", key: "PORT", value: "http"},
		{name: "port out of range", key: "PORT", value: "70000"},
		{name: "unknown log format", key: "LOG_FORMAT", value: "xml"},
		{name: "fetch timeout too small", key: "FETCH_TIMEOUT", value: "10ms"},
		{name: "too many summary tokens", key: "SUMMARY_MAX_TOKENS", value: "5000"},
		{name: "zero summary tokens", key: "SUMMARY_MAX_TOKENS", value: "0"},
		{name: "unknown trace exporter", key: "TRACE_EXPORTER", value: "zipkin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestGetEnvFallbacks(t *testing.T) {
	t.Setenv("SOME_INT", "abc")
	t.Setenv("SOME_BOOL", "maybe")
	t.Setenv("SOME_DURATION", "soon")

	assert.Equal(t, 7, getEnvAsInt("SOME_INT", 7))
	assert.True(t, getEnvAsBool("SOME_BOOL", true))
	assert.Equal(t, time.Minute, getEnvAsDuration("SOME_DURATION", time.Minute))
}
