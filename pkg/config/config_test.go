package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskasas/inventory-tracker/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "inventory-tracker", cfg.App.Name)
	assert.Equal(t, config.DriverSQLite, cfg.Storage.Driver)
	assert.Equal(t, "inventory_data.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "inventory_data", cfg.Ingest.TablePrefix)
	assert.Equal(t, "full", cfg.Ingest.Policy)
	assert.False(t, cfg.Ingest.PersistDiff)
	assert.Equal(t, 10, cfg.Report.TopN)
	assert.Equal(t, "ZAR", cfg.Report.Currency)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_EnvTienePrioridad(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "Memory")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("INGEST_POLICY", "dashboard")
	t.Setenv("INGEST_PERSIST_DIFF", "true")
	t.Setenv("REPORT_TOP_N", "no-numero")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.DriverMemory, cfg.Storage.Driver, "el driver se normaliza a minúsculas")
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "dashboard", cfg.Ingest.Policy)
	assert.True(t, cfg.Ingest.PersistDiff)
	assert.Equal(t, 10, cfg.Report.TopN, "un entero inválido cae al default")
}

func TestLoad_DriverDesconocido(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "mongo")
	_, err := config.Load()
	assert.ErrorContains(t, err, "STORAGE_DRIVER")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapctl.env")
	require.NoError(t, os.WriteFile(path, []byte("SQLITE_PATH=/tmp/otra.db\nREPORT_CURRENCY=USD\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv("SQLITE_PATH")
		_ = os.Unsetenv("REPORT_CURRENCY")
	})

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/otra.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "USD", cfg.Report.Currency)

	_, err = config.LoadFile(filepath.Join(t.TempDir(), "no-existe.env"))
	assert.Error(t, err)
}

func TestDBConfig_DSN(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/word", DBName: "inv", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fword@db:5432/inv?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
