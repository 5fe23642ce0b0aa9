package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quartzless/softrtc/internal/config"
	"github.com/quartzless/softrtc/internal/domain"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "local", cfg.Environment)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, 9090, cfg.Server.GRPCPort)

	assert.Equal(t, domain.DefaultStartYear, cfg.Clock.StartYear)
	assert.Equal(t, time.Second, cfg.Clock.PollInterval)

	assert.Equal(t, "softrtc", cfg.API.Issuer)
	assert.Equal(t, "softrtc-api", cfg.API.Audience)
	assert.Empty(t, cfg.API.JWTSecret)
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("ENVIRONMENT", "dev")

	cfg, err := config.Load(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.Environment)
	assert.False(t, cfg.IsLocal())
	assert.False(t, cfg.IsProd())
}

func TestProdRequiresAPISecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "prod")

	_, err := config.Load(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfigRequired)
}

func TestIsLocal(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want bool
	}{
		{"local returns true", "local", true},
		{"prod returns false", "prod", false},
		{"dev returns false", "dev", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tt.env}
			assert.Equal(t, tt.want, cfg.IsLocal())
		})
	}
}
