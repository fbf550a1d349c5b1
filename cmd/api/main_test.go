package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskasas/inventory-tracker/internal/infrastructure/storage"
	"github.com/daskasas/inventory-tracker/pkg/config"
	"github.com/daskasas/inventory-tracker/pkg/logger"
)

func memoryConfig(t *testing.T) *config.Config {
	t.Helper()
	// swagger sirve ./docs/swagger.json relativo a la raíz del módulo.
	t.Chdir("../..")
	t.Setenv("STORAGE_DRIVER", config.DriverMemory)
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func TestRun_ErrorDeAlmacenamientoSeDevuelve(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Storage.Driver = "desconocido"

	// run devuelve el error en lugar de terminar el proceso.
	err := run(cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "abrir almacenamiento")
}

func TestNewApp_Rutas(t *testing.T) {
	cfg := memoryConfig(t)
	stores, err := storage.Open(t.Context(), cfg)
	require.NoError(t, err)
	defer stores.Close()

	app, err := newApp(cfg, logger.Nop(), stores)
	require.NoError(t, err)

	// Caso 1: health informa el driver
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var health map[string]string
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "memory", health["storage"])

	// Caso 2: la API quedó montada
	resp2, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/snapshots", nil), -1)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusOK, resp2.StatusCode)
}

func TestNewApp_ConfiguracionDeIngestaInvalida(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.Ingest.Policy = "inexistente"
	stores, err := storage.Open(t.Context(), cfg)
	require.NoError(t, err)
	defer stores.Close()

	_, err = newApp(cfg, logger.Nop(), stores)
	assert.Error(t, err)
}
