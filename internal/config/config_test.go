package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
app:
  environment: "test"
database:
  path: "${SHAREIT_TEST_DB}"
api:
  http:
    enabled: true
    port: 9000
`
	require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0o644))
	t.Setenv("SHAREIT_TEST_DB", "data/test.db")

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, "data/test.db", cfg.Database.Path)
	assert.Equal(t, 9000, cfg.API.HTTP.Port)
	assert.Equal(t, "shareit", cfg.App.Name)
	assert.Equal(t, "test", cfg.App.Environment)
}

func TestLoadConfig_MissingFile(t *testing.T) {
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
			name:    "valid config",
			cfg:     Config{Database: DatabaseConfig{Path: "path"}},
			wantErr: false,
		},
		{
			name:    "missing database path",
			cfg:     Config{},
			wantErr: true,
		},
		{
			name: "port clash",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				API: APIConfig{
					HTTP: APIHTTPConfig{Enabled: true, Port: 8080},
					GRPC: APIGRPCConfig{Enabled: true, Port: 8080},
				},
			},
			wantErr: true,
		},
		{
			name: "auth without keys",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				API:      APIConfig{Auth: APIAuthConfig{Enabled: true}},
			},
			wantErr: true,
		},
		{
			name: "backup without storage",
			cfg: Config{
				Database: DatabaseConfig{Path: "path"},
				Backup:   BackupConfig{Enabled: true},
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

	assert.Equal(t, 8080, cfg.API.HTTP.Port)
	assert.Equal(t, 8081, cfg.API.GRPC.Port)
	assert.Equal(t, "x-api-key", cfg.API.Auth.HeaderAPIKey)
	assert.Equal(t, 120, cfg.API.Quota.Limit)
	assert.Equal(t, 60, cfg.API.Quota.WindowSeconds)
	assert.Equal(t, "24h", cfg.Backup.Interval)
	assert.Equal(t, "Bookings", cfg.Exports.SheetName)
	assert.Zero(t, cfg.Monitoring.PrometheusPort)
}

func TestValidateAPIKeys(t *testing.T) {
	assert.NoError(t, ValidateAPIKeys([]APIClientKey{{Key: "a", Name: "one"}, {Key: "b", Name: "two"}}))
	assert.Error(t, ValidateAPIKeys([]APIClientKey{{Key: "a", Name: "one"}, {Key: "a", Name: "two"}}))
	assert.Error(t, ValidateAPIKeys([]APIClientKey{{Name: "empty"}}))
}
