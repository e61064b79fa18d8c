package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadFrom(t *testing.T, name, yaml string) (*Config, error) {
	t.Helper()
	viper.Reset()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(yaml), 0o600))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	return Load(name)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := loadFrom(t, "patient", "server:\n  port: 8081\n")
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 5*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
}

func TestLoadRejectsBadRoute(t *testing.T) {
	_, err := loadFrom(t, "gateway", `
gateway:
  routes:
    - prefix: api/patients
      target: http://localhost:8081
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestLoadRejectsRouteWithoutTarget(t *testing.T) {
	_, err := loadFrom(t, "gateway", `
gateway:
  routes:
    - prefix: /api/patients
`)
	require.Error(t, err)
}

func TestDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "app", Password: "secret",
		Name: "hospital", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=app password=secret dbname=hospital sslmode=disable",
		cfg.DSN(),
	)
}
