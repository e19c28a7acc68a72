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
  http_addr: ":5000"
mongo:
  uri: mongodb://localhost:27017
  database: shop
security:
  jwt_secret: base-secret
  ttl: 24h
orders:
  price_tolerance: "0.01"
`

func writeConfigs(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600))
	}
	return dir
}

func TestLoad_LayersEnvFileAndVariables(t *testing.T) {
	dir := writeConfigs(t, map[string]string{
		"base.yaml": baseYAML,
		"test.yaml": "security:\n  admin_code: overlay-code\n",
	})
	t.Setenv("SHOPAPI_MONGO__DATABASE", "shop_test")
	t.Setenv("SHOPAPI_SECURITY__JWT_SECRET", "env-secret")

	cfg, err := Load(dir, "test")

	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.App.HTTPAddr)
	assert.Equal(t, "shop_test", cfg.Mongo.Database)
	assert.Equal(t, "env-secret", cfg.Security.JWTSecret)
	assert.Equal(t, "overlay-code", cfg.Security.AdminCode)
	assert.Equal(t, 24*time.Hour, cfg.Security.TTL)
}

func TestLoad_MissingOverlayIsFine(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})

	_, err := Load(dir, "nope")

	assert.NoError(t, err)
}

func TestLoad_MissingBase(t *testing.T) {
	_, err := Load(t.TempDir(), "dev")
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	dir := writeConfigs(t, map[string]string{"base.yaml": baseYAML})
	cfg, err := Load(dir, "")
	require.NoError(t, err)

	bad := cfg
	bad.Security.JWTSecret = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Mongo.URI = ""
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Orders.PriceTolerance = "-0.5"
	assert.Error(t, bad.Validate())

	bad = cfg
	bad.Kafka.Enabled = true
	bad.Kafka.Brokers = nil
	assert.Error(t, bad.Validate())
}

func TestConfig_PriceTolerance(t *testing.T) {
	var cfg Config
	d, err := cfg.PriceTolerance()
	require.NoError(t, err)
	assert.Equal(t, "0.01", d.String())

	cfg.Orders.PriceTolerance = "0.05"
	d, err = cfg.PriceTolerance()
	require.NoError(t, err)
	assert.Equal(t, "0.05", d.String())

	cfg.Orders.PriceTolerance = "abc"
	_, err = cfg.PriceTolerance()
	assert.Error(t, err)
}
