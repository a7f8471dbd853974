// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
database:
  postgres:
    host: localhost
    database: matchtech
    user: matchtech
`

func TestLoadFromFile_AppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "matchtech-assistant", cfg.App.Name)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 9090, cfg.Server.MetricsPort)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)

	assert.Equal(t, "https://api.tavily.com/search", cfg.APIs.Tavily.BaseURL)
	assert.Equal(t, "basic", cfg.APIs.Tavily.SearchDepth)
	assert.Equal(t, 5, cfg.APIs.Tavily.MaxResults)

	assert.Equal(t, "us-west-2", cfg.APIs.Bedrock.Region)
	assert.Equal(t, "mistral.mistral-large-2407-v1:0", cfg.APIs.Bedrock.ModelID)
	assert.Equal(t, 3000, cfg.APIs.Bedrock.MaxTokens)
	assert.Equal(t, 0.7, cfg.APIs.Bedrock.Temperature)
	assert.Equal(t, 0.9, cfg.APIs.Bedrock.TopP)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "disable", cfg.Database.Postgres.SSLMode)
}

func TestLoadFromFile_ExplicitValuesWin(t *testing.T) {
	cfg, err := LoadFromFile(writeConfigFile(t, `
server:
  port: 8080
database:
  postgres:
    host: db.internal
    database: matchtech
    user: svc
apis:
  tavily:
    max_results: 3
  bedrock:
    model_id: mistral.mistral-small-2402-v1:0
`))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 3, cfg.APIs.Tavily.MaxResults)
	assert.Equal(t, "mistral.mistral-small-2402-v1:0", cfg.APIs.Bedrock.ModelID)
}

func TestLoadFromFile_MissingPostgresHost(t *testing.T) {
	_, err := LoadFromFile(writeConfigFile(t, `
database:
  postgres:
    database: matchtech
    user: svc
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.postgres.host is required")
}

func TestLoadFromFile_CacheTTLRequiresRedis(t *testing.T) {
	_, err := LoadFromFile(writeConfigFile(t, minimalConfig+`
apis:
  tavily:
    cache_ttl: 300
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.redis.address is required")
}

func TestLoadFromFile_MaxResultsCapped(t *testing.T) {
	_, err := LoadFromFile(writeConfigFile(t, minimalConfig+`
apis:
  tavily:
    max_results: 10
`))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_results must not exceed 5")
}

func TestLoadFromFile_EnvOverridesEmptyValues(t *testing.T) {
	t.Setenv("TAVILY_API_KEY", "tvly-from-env")
	t.Setenv("DB_PASSWORD", "secret-from-env")

	cfg, err := LoadFromFile(writeConfigFile(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "tvly-from-env", cfg.APIs.Tavily.APIKey)
	assert.Equal(t, "secret-from-env", cfg.Database.Postgres.Password)
}

func TestPostgresConfig_GetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host:     "db.internal",
		Port:     5432,
		Database: "matchtech",
		User:     "svc",
		Password: "pw",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=db.internal port=5432 user=svc password=pw dbname=matchtech sslmode=disable",
		cfg.GetDSN(),
	)
}

func TestGetDuration(t *testing.T) {
	assert.Equal(t, 10*time.Second, GetDuration(10000))
	assert.Equal(t, time.Duration(0), GetDuration(0))
}
