package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "FETCH_CONCURRENCY", "MAX_AUDIT_URLS", "FETCH_TIMEOUT", "PAGESPEED_API_KEY", "PAGESPEED_STRATEGY", "PAGESPEED_RPS", "LOG_TO_FILE"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.Equal(t, 50, cfg.MaxURLs)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "mobile", cfg.PageSpeedStrategy)
	assert.False(t, cfg.LogToFile)
	assert.False(t, cfg.PageSpeedEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FETCH_CONCURRENCY", "8")
	t.Setenv("FETCH_TIMEOUT", "3s")
	t.Setenv("PAGESPEED_API_KEY", "key")
	t.Setenv("PAGESPEED_STRATEGY", "desktop")
	t.Setenv("PAGESPEED_RPS", "0.5")
	t.Setenv("LOG_TO_FILE", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 8, cfg.FetchConcurrency)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "desktop", cfg.PageSpeedStrategy)
	assert.Equal(t, 0.5, cfg.PageSpeedRPS)
	assert.True(t, cfg.LogToFile)
	assert.True(t, cfg.PageSpeedEnabled())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		value   string
		wantErr error
	}{
		{"port not a number", "PORT", "http", errInvalidPort},
		{"port out of range", "PORT", "70000", errInvalidPort},
		{"concurrency too high", "FETCH_CONCURRENCY", "100", errConcurrencyOutOfRange},
		{"concurrency zero", "FETCH_CONCURRENCY", "0", errConcurrencyOutOfRange},
		{"max urls too high", "MAX_AUDIT_URLS", "1000", errMaxURLsOutOfRange},
		{"negative timeout", "FETCH_TIMEOUT", "-1s", errInvalidTimeout},
		{"unknown strategy", "PAGESPEED_STRATEGY", "tablet", errInvalidStrategy},
		{"negative rate", "PAGESPEED_RPS", "-2", errInvalidRate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
