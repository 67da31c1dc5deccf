package config

import (
	"os"
	"path/filepath"
	"testing"

	"Labusch/internal/calc/strength"
	"Labusch/internal/calc/sweep"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ADDR", "TLS_CERT", "TLS_KEY", "DATABASE_URL", "TOKEN_KEY", "CATALOG_PATH",
		"MISFIT_EXPONENT", "SWEEP_STEP", "SWEEP_WORKERS", "MAX_POINTS", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, strength.DefaultModel(), cfg.Model)
	assert.Equal(t, sweep.DefaultStep, cfg.Step)
	assert.Positive(t, cfg.Workers)
	assert.Equal(t, sweep.DefaultMaxPoints, cfg.MaxPoints)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Error(t, cfg.RequireServer())
}

func TestFromEnv_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("MISFIT_EXPONENT", "2/3")
	t.Setenv("SWEEP_STEP", "0.05")
	t.Setenv("SWEEP_WORKERS", "3")
	t.Setenv("MAX_POINTS", "5000")
	t.Setenv("TOKEN_KEY", "secret")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, strength.ExponentTwoThirds, cfg.Model.MisfitExponent)
	assert.Equal(t, 0.05, cfg.Step)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 5000, cfg.MaxPoints)
	assert.NoError(t, cfg.RequireServer())
}

func TestFromEnv_Invalid(t *testing.T) {
	for name, env := range map[string][2]string{
		"exponent": {"MISFIT_EXPONENT", "-2"},
		"step":     {"SWEEP_STEP", "-0.3"},
		"points":   {"MAX_POINTS", "0"},
		"step nan": {"SWEEP_STEP", "abc"},
		"tiny":     {"SWEEP_STEP", "1e-300"},
		"workers":  {"SWEEP_WORKERS", "0"},
		"tls":      {"TLS_CERT", "server.crt"},
	} {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(env[0], env[1])
			_, err := FromEnv()
			assert.Error(t, err)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("CATALOG_PATH")
	t.Cleanup(func() { os.Unsetenv("CATALOG_PATH") })

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("CATALOG_PATH=elements.yaml\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "elements.yaml", cfg.CatalogPath)
}

func TestLoad_MissingFileTolerated(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "nope.env"))
	assert.NoError(t, err)
}
