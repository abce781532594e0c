package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	t.Setenv("SHAREIT_TEST_DB_PASSWORD", "secret")

	yamlContent := `
app:
  name: shareit
database:
  driver: postgres
  postgres:
    host: db
    user: shareit
    password: ${SHAREIT_TEST_DB_PASSWORD}
    dbname: shareit
gateway:
  backend_url: http://server:9090
  rate_limit:
    enabled: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "shareit", cfg.App.Name)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "secret", cfg.Database.Postgres.Password)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
	assert.Equal(t, "http://server:9090", cfg.Gateway.BackendURL)
	assert.Equal(t, 100, cfg.Gateway.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.Gateway.RateLimit.Window)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name: "valid sqlite",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite", Path: "test.db"},
				Gateway:  GatewayConfig{BackendURL: "http://localhost:9090"},
			},
		},
		{
			name: "sqlite without path",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite"},
				Gateway:  GatewayConfig{BackendURL: "http://localhost:9090"},
			},
			wantErr: true,
		},
		{
			name: "postgres without host",
			cfg: Config{
				Database: DatabaseConfig{Driver: "postgres", Postgres: PostgresConfig{DBName: "x"}},
				Gateway:  GatewayConfig{BackendURL: "http://localhost:9090"},
			},
			wantErr: true,
		},
		{
			name: "unknown driver",
			cfg: Config{
				Database: DatabaseConfig{Driver: "mysql"},
				Gateway:  GatewayConfig{BackendURL: "http://localhost:9090"},
			},
			wantErr: true,
		},
		{
			name: "bad backend url",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite", Path: "test.db"},
				Gateway:  GatewayConfig{BackendURL: "not a url"},
			},
			wantErr: true,
		},
		{
			name: "backup with postgres",
			cfg: Config{
				Database: DatabaseConfig{
					Driver:   "postgres",
					Postgres: PostgresConfig{Host: "db", DBName: "shareit"},
					Backup:   BackupConfig{Enabled: true},
				},
				Gateway: GatewayConfig{BackendURL: "http://localhost:9090"},
			},
			wantErr: true,
		},
		{
			name: "shared metrics port",
			cfg: Config{
				Database:   DatabaseConfig{Driver: "sqlite", Path: "test.db"},
				Server:     ServerConfig{MetricsPort: 9100},
				Gateway:    GatewayConfig{BackendURL: "http://localhost:9090", MetricsPort: 9100},
				Monitoring: MonitoringConfig{PrometheusEnabled: true},
			},
			wantErr: true,
		},
		{
			name: "rate limit without window",
			cfg: Config{
				Database: DatabaseConfig{Driver: "sqlite", Path: "test.db"},
				Gateway: GatewayConfig{
					BackendURL: "http://localhost:9090",
					RateLimit:  GatewayRateLimitConfig{Enabled: true, Requests: 5},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.applyDefaults()

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "shareit.db", cfg.Database.Path)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8080, cfg.Gateway.Port)
	assert.Equal(t, "http://localhost:9090", cfg.Gateway.BackendURL)
	assert.Equal(t, 10*time.Second, cfg.Gateway.Timeout)
	assert.Zero(t, cfg.Gateway.RateLimit.Requests)
	assert.Zero(t, cfg.Server.MetricsPort)
	assert.Zero(t, cfg.Gateway.MetricsPort)
	assert.Zero(t, cfg.Database.Backup.Interval)
	assert.NoError(t, cfg.Validate())

	cfg = &Config{Database: DatabaseConfig{Backup: BackupConfig{Enabled: true}}}
	cfg.applyDefaults()
	assert.Equal(t, 24*time.Hour, cfg.Database.Backup.Interval)
	assert.Equal(t, "backups", cfg.Database.Backup.StoragePath)

	cfg = &Config{Monitoring: MonitoringConfig{PrometheusEnabled: true}}
	cfg.applyDefaults()
	assert.Equal(t, 9100, cfg.Server.MetricsPort)
	assert.Equal(t, 9101, cfg.Gateway.MetricsPort)
	assert.NoError(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "shareit", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shareit sslmode=disable TimeZone=UTC", p.DSN())
}
