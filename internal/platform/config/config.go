package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	errInvalidPort          = errors.New("config: invalid PORT number")
	errInvalidLogFormat     = errors.New("config: LOG_FORMAT must be json or text")
	errFetchTimeoutRange    = errors.New("config: FETCH_TIMEOUT must be between 1s and 5m")
	errSummaryTokensRange   = errors.New("config: SUMMARY_MAX_TOKENS must be 1-1024")
	errSummaryModelMissing  = errors.New("config: SUMMARY_MODEL must not be empty")
	errInvalidTraceExporter = errors.New("config: TRACE_EXPORTER must be none or stdout")
)

const (
	defaultSummaryModel     = "claude-3-5-haiku-latest"
	defaultSummaryMaxTokens = 100
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port                 string
	LogLevel             string
	LogFormat            string
	FetchTimeout         time.Duration
	AllowPrivateNetworks bool

	// AnthropicAPIKey is the summarization service secret. It is not
	// validated here; an empty key fails the first summary request.
	AnthropicAPIKey  string
	SummaryModel     string
	SummaryMaxTokens int

	// TraceExporter selects where pipeline spans go: "none" or "stdout".
	TraceExporter string
}

// Load reads an optional .env file from the working directory and then
// configuration from environment variables with sensible defaults. Variables
// already present in the environment win over .env entries.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		Port:                 getEnv("PORT", "8080"),
		LogLevel:             getEnv("LOG_LEVEL", "ERROR"),
		LogFormat:            strings.ToLower(getEnv("LOG_FORMAT", "json")),
		FetchTimeout:         getEnvAsDuration("FETCH_TIMEOUT", 30*time.Second),
		AllowPrivateNetworks: getEnvAsBool("ALLOW_PRIVATE_NETWORKS", false),
		AnthropicAPIKey:      os.Getenv("ANTHROPIC_API_KEY"),
		SummaryModel:         getEnv("SUMMARY_MODEL", defaultSummaryModel),
		SummaryMaxTokens:     getEnvAsInt("SUMMARY_MAX_TOKENS", defaultSummaryMaxTokens),
		TraceExporter:        strings.ToLower(getEnv("TRACE_EXPORTER", "none")),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("%w: got %q", errInvalidLogFormat, c.LogFormat)
	}

	if c.FetchTimeout < time.Second || c.FetchTimeout > 5*time.Minute {
		return fmt.Errorf("%w: got %s", errFetchTimeoutRange, c.FetchTimeout)
	}

	if c.SummaryMaxTokens < 1 || c.SummaryMaxTokens > 1024 {
		return fmt.Errorf("%w: got %d", errSummaryTokensRange, c.SummaryMaxTokens)
	}

	if strings.TrimSpace(c.SummaryModel) == "" {
		return errSummaryModelMissing
	}

	if c.TraceExporter != "none" && c.TraceExporter != "stdout" {
		return fmt.Errorf("%w: got %q", errInvalidTraceExporter, c.TraceExporter)
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsBool(key string, fallback bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return fallback
	}
	return v
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return fallback
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return v
}
