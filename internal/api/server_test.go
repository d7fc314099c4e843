package api

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/require"

	"github.com/soundleaf/soundleaf-server/internal/audiofile"
	"github.com/soundleaf/soundleaf-server/internal/config"
	"github.com/soundleaf/soundleaf-server/internal/extract"
	"github.com/soundleaf/soundleaf-server/internal/logger"
	"github.com/soundleaf/soundleaf-server/internal/ratelimit"
	"github.com/soundleaf/soundleaf-server/internal/service"
)

// testEnvelope mirrors the wire envelope for decoding in tests.
type testEnvelope[T any] struct {
	V       int    `json:"v"`
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

// testServer wraps the API server for handler testing.
type testServer struct {
	*Server
	api humatest.TestAPI
}

// setupTestServer creates a test server with default configuration and
// rate limiting off.
func setupTestServer(t *testing.T) *testServer {
	return setupTestServerWithConfig(t, nil)
}

// setupTestServerWithConfig creates a test server, letting the caller
// adjust the config before wiring.
func setupTestServerWithConfig(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()

	cfg := &config.Config{
		App:    config.AppConfig{Environment: "development"},
		Logger: config.LoggerConfig{Level: "error"},
		Server: config.ServerConfig{
			Port:        "0",
			CORSOrigins: []string{"tauri://localhost"},
		},
		Audio: config.AudioConfig{
			BatchLimit: 500,
		},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}
	if mutate != nil {
		mutate(cfg)
	}

	log := logger.New(logger.Config{
		Writer: io.Discard,
		Level:  slog.LevelError,
	})

	pathRules := audiofile.NewValidator(cfg.Audio.Extensions)
	extractor := extract.NewExtractor(pathRules)
	metadataService := service.NewMetadataService(extractor, cfg.Audio.BatchConcurrency, log)

	var limiter *ratelimit.KeyedRateLimiter
	if cfg.RateLimit.Enabled {
		limiter = ratelimit.New(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		t.Cleanup(limiter.Stop)
	}

	s := NewServer(cfg, &Services{Metadata: metadataService}, pathRules, limiter, log)

	return &testServer{
		Server: s,
		api:    humatest.Wrap(t, s.api),
	}
}

// writeFile writes raw bytes for tests that need non-FLAC content.
func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, data, 0o600))
}
