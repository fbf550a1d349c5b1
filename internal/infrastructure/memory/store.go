// Package memory implementa los puertos de persistencia en memoria. Se usa con
// STORAGE_DRIVER=memory y en los tests de casos de uso y handlers.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/repository"
)

var (
	_ repository.SnapshotRepository = (*Store)(nil)
	_ repository.DiffRepository     = (*Store)(nil)
)

// Store guarda snapshots y comparaciones como valores inmutables: Save reemplaza el puntero
// bajo el lock, así un lector obtiene la versión anterior completa o la nueva completa.
type Store struct {
	mu        sync.RWMutex
	snapshots map[string]*entity.Snapshot
	diffs     map[string]*entity.SnapshotDiff
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		snapshots: make(map[string]*entity.Snapshot),
		diffs:     make(map[string]*entity.SnapshotDiff),
	}
}

// Save reemplaza el snapshot guardado bajo s.ID.
func (s *Store) Save(_ context.Context, snap *entity.Snapshot) error {
	if snap == nil || snap.ID == "" {
		return fmt.Errorf("memory: save snapshot sin identificador: %w", domain.ErrPreconditionViolation)
	}
	cp := snap.Clone()
	s.mu.Lock()
	s.snapshots[cp.ID] = cp
	s.mu.Unlock()
	return nil
}

// Load devuelve una copia del snapshot o domain.ErrNotFound.
func (s *Store) Load(_ context.Context, id string) (*entity.Snapshot, error) {
	s.mu.RLock()
	snap, ok := s.snapshots[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("snapshot %q: %w", id, domain.ErrNotFound)
	}
	return snap.Clone(), nil
}

// ListIdentifiers identificadores en orden lexicográfico.
func (s *Store) ListIdentifiers(_ context.Context) ([]string, error) {
	s.mu.RLock()
	ids := make([]string, 0, len(s.snapshots))
	for id := range s.snapshots {
		ids = append(ids, id)
	}
	s.mu.RUnlock()
	slices.Sort(ids)
	return ids, nil
}

// SaveDiff reemplaza la tabla de comparación guardada bajo id.
func (s *Store) SaveDiff(_ context.Context, id string, d *entity.SnapshotDiff) error {
	if d == nil || id == "" {
		return fmt.Errorf("memory: save diff sin identificador: %w", domain.ErrPreconditionViolation)
	}
	cp := d.Clone()
	s.mu.Lock()
	s.diffs[id] = cp
	s.mu.Unlock()
	return nil
}

// LoadDiff devuelve la comparación guardada o domain.ErrNotFound.
func (s *Store) LoadDiff(_ context.Context, id string) (*entity.SnapshotDiff, error) {
	s.mu.RLock()
	d, ok := s.diffs[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("diff %q: %w", id, domain.ErrNotFound)
	}
	return d.Clone(), nil
}

// Close no hace nada; existe para compartir el ciclo de vida con los stores persistentes.
func (s *Store) Close() error { return nil }
