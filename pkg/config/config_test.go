package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
gateway:
  host: 127.0.0.1
  port: 8080
database:
  driver: sqlite
  path: ":memory:"
admin:
  base_url: http://store.local:8080
  timeout: 5s
etcd:
  endpoints: ["localhost:2379"]
log:
  level: debug
  encoding: console
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Gateway.Addr())
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, ":memory:", cfg.Database.DSN())
	assert.Equal(t, "http://store.local:8080", cfg.Admin.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.Admin.Timeout)
	assert.Equal(t, []string{"localhost:2379"}, cfg.Etcd.Endpoints)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NoError(t, cfg.Validate())
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Gateway.Port)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "collection-store", cfg.Admin.Service)
	assert.Equal(t, 30*time.Second, cfg.Admin.Timeout)
	assert.Equal(t, []string{"stdout"}, cfg.Log.OutputPaths)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SHOPADMIN_ADMIN_BASE_URL", "http://override:9000")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://override:9000", cfg.Admin.BaseURL)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	// mysql without a database name
	assert.Error(t, cfg.Validate())

	cfg.Database.Database = "shop"
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg.Database.Driver = "sqlite"
	assert.Error(t, cfg.Validate())
	cfg.Database.Path = "shop.db"
	assert.NoError(t, cfg.Validate())
}

func TestDSN(t *testing.T) {
	mysql := DatabaseConfig{Driver: "mysql", Host: "db", Port: 3306, Username: "u", Password: "p", Database: "shop"}
	assert.Equal(t, "u:p@tcp(db:3306)/shop?charset=utf8mb4&parseTime=True&loc=Local", mysql.DSN())

	pg := DatabaseConfig{Driver: "postgres", Host: "db", Port: 5432, Username: "u", Password: "p", Database: "shop"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=shop sslmode=disable", pg.DSN())
}
