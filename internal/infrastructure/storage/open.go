// Package storage abre el adaptador de persistencia elegido por configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/daskasas/inventory-tracker/internal/domain/repository"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/memory"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/postgres"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/sqlite"
	"github.com/daskasas/inventory-tracker/pkg/config"
)

// Stores puertos listos para inyectar. Se abre una vez al arrancar y se cierra al terminar.
type Stores struct {
	Driver    string
	Snapshots repository.SnapshotRepository
	Diffs     repository.DiffRepository
	close     func() error
}

// Close libera conexiones del motor.
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// Open construye los repositorios del driver configurado (sqlite, postgres o memory).
func Open(ctx context.Context, cfg *config.Config) (*Stores, error) {
	switch cfg.Storage.Driver {
	case config.DriverSQLite:
		st, err := sqlite.New(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &Stores{Driver: config.DriverSQLite, Snapshots: st, Diffs: st, close: st.Close}, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		return &Stores{
			Driver:    config.DriverPostgres,
			Snapshots: postgres.NewSnapshotRepository(pool),
			Diffs:     postgres.NewDiffRepository(pool),
			close:     func() error { pool.Close(); return nil },
		}, nil

	case config.DriverMemory:
		st := memory.NewStore()
		return &Stores{Driver: config.DriverMemory, Snapshots: st, Diffs: st, close: st.Close}, nil

	default:
		return nil, fmt.Errorf("storage: driver desconocido %q", cfg.Storage.Driver)
	}
}
