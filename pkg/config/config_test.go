package config_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/amirasaad/banking/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	slog.SetDefault(slog.New(slog.NewTextHandler(io.Discard, nil)))
	os.Exit(m.Run())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, 0, cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "[bank]", cfg.Log.Prefix)
	assert.Equal(t, "@monthly", cfg.Accrual.Spec)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("BANK_ENV", "production")
	t.Setenv("BANK_DATA_DIR", "/var/lib/bank")
	t.Setenv("BANK_LOG_LEVEL", "-4")
	t.Setenv("BANK_ACCRUAL_SPEC", "0 0 1 * *")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "/var/lib/bank", cfg.Data.Dir)
	assert.Equal(t, -4, cfg.Log.Level)
	assert.Equal(t, "0 0 1 * *", cfg.Accrual.Spec)
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.env")
	require.NoError(t, os.WriteFile(path, []byte("BANK_DATA_DIR=from-file\n"), 0o644))

	// godotenv leaves the variable in the process environment.
	t.Cleanup(func() { os.Unsetenv("BANK_DATA_DIR") }) //nolint:errcheck

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Data.Dir)
}

func TestLoadIgnoresMissingEnvFile(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.env"))
	require.NoError(t, err)
	assert.Equal(t, "data", cfg.Data.Dir)
}
