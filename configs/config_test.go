package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseYAML = `
app:
  name: ecom-api
  http_addr: ":8080"
mysql:
  dsn: "user:pass@tcp(localhost:3306)/ecom?parseTime=true"
redis:
  addr: "localhost:6379"
cache:
  ttl: 1h
security:
  jwt_secret: "dev-secret"
`

func writeConfigs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestLoadBaseOnly(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})

	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.App.HTTPAddr)
	assert.Equal(t, time.Hour, cfg.Cache.TTL)
	assert.Equal(t, "dev-secret", cfg.Security.JWTSecret)
}

func TestLoadEnvOverlayWins(t *testing.T) {
	dir := writeConfigs(t, map[string]string{
		"base.yaml": baseYAML,
		"prod.yaml": "app:\n  http_addr: \":9090\"\n",
	})

	cfg, err := Load(dir, "prod")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.App.HTTPAddr)
	assert.Equal(t, "dev-secret", cfg.Security.JWTSecret)
}

func TestLoadEnvVarsWin(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})

	t.Setenv("ECOMAPI_REDIS__ADDR", "redis.internal:6379")
	cfg, err := Load(dir, "dev")
	require.NoError(t, err)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.Addr)
}

func TestValidateRejectsMissingSecret(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": `
app:
  http_addr: ":8080"
mysql:
  dsn: "dsn"
redis:
  addr: "localhost:6379"
`})

	_, err := Load(dir, "dev")
	assert.ErrorContains(t, err, "jwt_secret")
}
