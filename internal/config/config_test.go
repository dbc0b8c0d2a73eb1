package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"Billios/internal/calc/fieldtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, cfg.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.Equal(t, fieldtest.DefaultCalibration(), cfg.Calibration())
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("BILLIOS_ADDR", ":9000")
	t.Setenv("BILLIOS_TOKEN_KEY", "secret")
	t.Setenv("BILLIOS_SAND_DENSITY", "90.5")
	t.Setenv("BILLIOS_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "secret", cfg.TokenKey)
	assert.Equal(t, 90.5, cfg.Calibration().SandDensity)
	assert.Equal(t, fieldtest.SandInCone, cfg.Calibration().SandInCone)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.NoError(t, cfg.Validate())
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("BILLIOS_SPECIFIC_GRAVITY=2.65\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("BILLIOS_SPECIFIC_GRAVITY") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2.65, cfg.SpecificGravity)
}

func TestValidate(t *testing.T) {
	valid := Config{TokenKey: "k", SandDensity: 88, SandInCone: 3.59, SpecificGravity: 2.7}
	assert.NoError(t, valid.Validate())

	noKey := valid
	noKey.TokenKey = ""
	assert.Error(t, noKey.Validate())

	halfTLS := valid
	halfTLS.TLSCert = "server.crt"
	assert.Error(t, halfTLS.Validate())

	badCal := valid
	badCal.SandDensity = 0
	assert.Error(t, badCal.Validate())
}
