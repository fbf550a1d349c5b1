package storage_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/storage"
	"github.com/daskasas/inventory-tracker/pkg/config"
)

func TestOpen_SQLiteYMemory(t *testing.T) {
	ctx := context.Background()
	for _, cfg := range []*config.Config{
		{Storage: config.StorageConfig{Driver: config.DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "t.db")}},
		{Storage: config.StorageConfig{Driver: config.DriverMemory}},
	} {
		t.Run(cfg.Storage.Driver, func(t *testing.T) {
			stores, err := storage.Open(ctx, cfg)
			require.NoError(t, err)
			defer stores.Close()

			assert.Equal(t, cfg.Storage.Driver, stores.Driver)
			s, _ := entity.NewSnapshot("inventory_data_2024-03-15", time.Now(), nil)
			require.NoError(t, stores.Snapshots.Save(ctx, s))
			ids, err := stores.Snapshots.ListIdentifiers(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{s.ID}, ids)
		})
	}
}

func TestOpen_DriverDesconocido(t *testing.T) {
	_, err := storage.Open(context.Background(), &config.Config{Storage: config.StorageConfig{Driver: "mongo"}})
	assert.Error(t, err)
}
