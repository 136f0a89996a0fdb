package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/colonysim-go/internal/infrastructure/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	// Arrange
	path := writeConfig(t, "logging:\n  level: debug\n")

	// Act
	cfg, err := config.LoadConfig(path)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "colonysim.db", cfg.Database.Path)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 100000, cfg.Simulation.MaxEvents)
	assert.Equal(t, 24*time.Hour, cfg.Simulation.DefaultHorizon)
	assert.Equal(t, "localhost:9090", cfg.Metrics.Address())
	assert.Equal(t, 30*time.Second, cfg.Metrics.PollInterval)
	assert.Equal(t, 5.0, cfg.Metrics.ProjectionsPerSecond)
}

func TestLoadConfig_ReadsFileValues(t *testing.T) {
	path := writeConfig(t, `
database:
  type: postgres
  host: db.internal
  name: colonies
simulation:
  max_events: 5000
  default_horizon: 48h
metrics:
  enabled: true
  port: 9200
`)

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 5000, cfg.Simulation.MaxEvents)
	assert.Equal(t, 48*time.Hour, cfg.Simulation.DefaultHorizon)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, 9200, cfg.Metrics.Port)
}

func TestLoadConfig_EnvironmentOverridesFile(t *testing.T) {
	path := writeConfig(t, "simulation:\n  max_events: 5000\n")
	t.Setenv("CS_SIMULATION_MAX_EVENTS", "250")
	t.Setenv("CS_LOGGING_FORMAT", "json")

	cfg, err := config.LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, 250, cfg.Simulation.MaxEvents)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown database type", "database:\n  type: mysql\n"},
		{"unknown log level", "logging:\n  level: chatty\n"},
		{"file output without path", "logging:\n  output: file\n"},
		{"horizon below a minute", "simulation:\n  default_horizon: 10s\n"},
		{"negative event budget", "simulation:\n  max_events: -5\n"},
		{"metrics path without slash", "metrics:\n  path: metrics\n"},
		{"sub-second poll interval", "metrics:\n  poll_interval: 100ms\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadConfig(writeConfig(t, tt.body))

			assert.Error(t, err)
		})
	}
}

func TestValidateConfig_PostgresNeedsATarget(t *testing.T) {
	cfg := &config.Config{}
	config.SetDefaults(cfg)
	cfg.Database.Type = "postgres"
	cfg.Database.Host = ""

	err := config.ValidateConfig(cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres_target")

	cfg.Database.URL = "postgresql://colonysim@localhost:5432/colonysim"
	assert.NoError(t, config.ValidateConfig(cfg))
}

func TestUserConfigHandler_DefaultCharacter(t *testing.T) {
	handler, err := config.NewUserConfigHandlerAt(t.TempDir())
	require.NoError(t, err)

	empty, err := handler.Load()
	require.NoError(t, err)
	assert.Nil(t, empty.DefaultCharacterID)

	require.NoError(t, handler.SetDefaultCharacter(90000001))
	loaded, err := handler.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded.DefaultCharacterID)
	assert.Equal(t, int32(90000001), *loaded.DefaultCharacterID)

	require.NoError(t, handler.ClearDefaultCharacter())
	cleared, err := handler.Load()
	require.NoError(t, err)
	assert.Nil(t, cleared.DefaultCharacterID)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.DatabaseConfig
		want string
	}{
		{
			name: "postgres url wins",
			cfg:  config.DatabaseConfig{Type: config.DatabasePostgres, URL: "postgresql://u:p@db:5432/colonies", Host: "ignored"},
			want: "postgresql://u:p@db:5432/colonies",
		},
		{
			name: "postgres fields",
			cfg:  config.DatabaseConfig{Type: config.DatabasePostgres, Host: "db", Port: 5433, User: "u", Password: "p", Name: "colonies", SSLMode: "disable"},
			want: "host=db port=5433 user=u password=p dbname=colonies sslmode=disable",
		},
		{
			name: "sqlite file",
			cfg:  config.DatabaseConfig{Type: config.DatabaseSQLite, Path: "colonies.db"},
			want: "colonies.db",
		},
		{
			name: "sqlite defaults to memory",
			cfg:  config.DatabaseConfig{Type: config.DatabaseSQLite},
			want: ":memory:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn, err := tt.cfg.DSN()

			require.NoError(t, err)
			assert.Equal(t, tt.want, dsn)
		})
	}

	_, err := config.DatabaseConfig{Type: "mysql"}.DSN()
	assert.ErrorContains(t, err, "unsupported database type")
}
