package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/fieldcover/internal/config"
)

var allKeys = []string{
	config.EnvAddr,
	config.EnvPlanTimeout,
	config.EnvMaxCells,
	config.EnvBodyLimit,
	config.EnvRequestLog,
	config.EnvMaxExpansions,
}

// clearEnv unsets every setting for the test and restores the previous
// values afterwards.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		if prev, ok := os.LookupEnv(k); ok {
			t.Cleanup(func() { os.Setenv(k, prev) })
		} else {
			t.Cleanup(func() { os.Unsetenv(k) })
		}
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, 2*time.Second, cfg.PlanTimeout)
	assert.Equal(t, 10000, cfg.MaxCells)
	assert.Equal(t, "2M", cfg.BodyLimit)
	assert.True(t, cfg.RequestLog)
	assert.Zero(t, cfg.MaxExpansions)
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvAddr, "127.0.0.1:9000")
	t.Setenv(config.EnvPlanTimeout, "750ms")
	t.Setenv(config.EnvMaxCells, "2500")
	t.Setenv(config.EnvBodyLimit, "512K")
	t.Setenv(config.EnvRequestLog, "false")
	t.Setenv(config.EnvMaxExpansions, "4000")

	cfg, err := config.FromEnv()
	require.NoError(t, err)
	assert.Equal(t, &config.Config{
		Addr:          "127.0.0.1:9000",
		PlanTimeout:   750 * time.Millisecond,
		MaxCells:      2500,
		BodyLimit:     "512K",
		RequestLog:    false,
		MaxExpansions: 4000,
	}, cfg)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{config.EnvPlanTimeout, "soon"},
		{config.EnvPlanTimeout, "0s"},
		{config.EnvMaxCells, "many"},
		{config.EnvMaxCells, "0"},
		{config.EnvRequestLog, "maybe"},
		{config.EnvMaxExpansions, "-1"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			_, err := config.FromEnv()
			assert.ErrorIs(t, err, config.ErrInvalid)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(
		"FIELDCOVER_ADDR=:9191\nFIELDCOVER_MAX_CELLS=64\n"), 0o644))
	t.Setenv(config.EnvMaxCells, "128")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9191", cfg.Addr)
	// variables already set win over the file
	assert.Equal(t, 128, cfg.MaxCells)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}
