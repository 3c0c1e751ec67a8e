package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/SAP-F-2025/classroom-service/internal/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)
	for _, key := range []string{"PORT", "MAX_CONTENT_LENGTH", "AUTO_NOTIFY_PARENTS", "JWT_TTL", "STORAGE_DRIVER", "EMAIL_PROVIDER"} {
		t.Setenv(key, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, int64(32*1024*1024), cfg.MaxContentLength)
	assert.True(t, cfg.AutoNotifyParents)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, "console", cfg.Notifier.EmailProvider)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_Overrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "9000")
	t.Setenv("AUTO_NOTIFY_PARENTS", "FALSE")
	t.Setenv("MAX_CONTENT_LENGTH", "1024")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("ENVIRONMENT", "production")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.False(t, cfg.AutoNotifyParents)
	assert.Equal(t, int64(1024), cfg.MaxContentLength)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.True(t, cfg.IsProduction())
}

func TestLoadConfig_InvalidValuesFallBack(t *testing.T) {
	chdirTemp(t)
	t.Setenv("MAX_CONTENT_LENGTH", "lots")
	t.Setenv("AUTO_NOTIFY_PARENTS", "maybe")
	t.Setenv("JWT_TTL", "forever")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, int64(32*1024*1024), cfg.MaxContentLength)
	assert.True(t, cfg.AutoNotifyParents)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
}

func TestEventConfig_GetKafkaBrokers(t *testing.T) {
	cfg := EventConfig{KafkaBrokers: "kafka-1:9092, kafka-2:9092,,"}
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.GetKafkaBrokers())
}

func TestEventConfig_CreateEventPublisher_Discards(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		cfg  EventConfig
	}{
		{"disabled", EventConfig{Enabled: false, Publisher: "kafka"}},
		{"noop", EventConfig{Enabled: true, Publisher: "noop"}},
		{"mock", EventConfig{Enabled: true, Publisher: "mock"}},
		{"unknown", EventConfig{Enabled: true, Publisher: "rabbit"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := tt.cfg.CreateEventPublisher(logger)
			require.NoError(t, err)
			assert.IsType(t, &events.NoopEventPublisher{}, publisher)
			assert.NotContains(t, fmt.Sprintf("%T", publisher), "Mock")
		})
	}
}

// chdirTemp changes into a fresh temp dir for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
