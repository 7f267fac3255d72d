package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "prod", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "", cfg.Addr)
	assert.Equal(t, 53, cfg.Port)
	assert.Equal(t, uint32(3600), cfg.TTL)
	assert.Equal(t, "", cfg.ZoneDB)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DNSD_ENV", "dev")
	t.Setenv("DNSD_LOG_LEVEL", "debug")
	t.Setenv("DNSD_ADDR", "127.0.0.1")
	t.Setenv("DNSD_PORT", "5353")
	t.Setenv("DNSD_TTL", "600")
	t.Setenv("DNSD_ZONE_DB", "/var/lib/dnsd/zones.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1", cfg.Addr)
	assert.Equal(t, 5353, cfg.Port)
	assert.Equal(t, uint32(600), cfg.TTL)
	assert.Equal(t, "/var/lib/dnsd/zones.db", cfg.ZoneDB)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"bad env", "DNSD_ENV", "staging"},
		{"bad log level", "DNSD_LOG_LEVEL", "trace"},
		{"bad addr", "DNSD_ADDR", "not-an-ip"},
		{"port too high", "DNSD_PORT", "70000"},
		{"port zero", "DNSD_PORT", "0"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
