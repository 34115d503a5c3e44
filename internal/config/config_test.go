package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "breath-001", cfg.Breath.DeviceID)
	assert.Equal(t, "mqtt", cfg.Breath.Source)
	assert.Equal(t, "breath:events:stream", cfg.Breath.Stream)
	assert.Equal(t, time.Second, cfg.Breath.PublishInterval)
	assert.Equal(t, 3*time.Second, cfg.Simulator.Period)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BREATH_DEVICE_ID", "breath-042")
	t.Setenv("BREATH_SOURCE", "sim")
	t.Setenv("BREATH_PUBLISH_INTERVAL", "5s")
	t.Setenv("SIM_AMPLITUDE", "1.5")
	t.Setenv("DB_PORT", "15432")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "breath-042", cfg.Breath.DeviceID)
	assert.Equal(t, "sim", cfg.Breath.Source)
	assert.Equal(t, 5*time.Second, cfg.Breath.PublishInterval)
	assert.Equal(t, 1.5, cfg.Simulator.Amplitude)
	assert.Equal(t, 15432, cfg.Database.Port)
}

func TestLoad_InvalidSource(t *testing.T) {
	t.Setenv("BREATH_SOURCE", "serial")

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid BREATH_SOURCE")
}

func TestDatabaseConfig_GetDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host: "db", Port: 5432, User: "u", Password: "p",
		Database: "owlrd", SSLMode: "disable",
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=owlrd sslmode=disable", cfg.GetDSN())
}
