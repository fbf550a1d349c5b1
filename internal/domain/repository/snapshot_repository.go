package repository

import (
	"context"

	"github.com/daskasas/inventory-tracker/internal/domain/entity"
)

// SnapshotRepository define el puerto de persistencia para Snapshots (DIP).
// Cada identificador es una tabla lógica independiente: guardar uno no interfiere con leer otro.
type SnapshotRepository interface {
	// Save reemplaza por completo el snapshot guardado bajo s.ID (nunca mezcla ni agrega filas).
	// Un lector concurrente ve el contenido anterior completo o el nuevo completo.
	Save(ctx context.Context, s *entity.Snapshot) error

	// Load devuelve domain.ErrNotFound si el identificador no existe.
	Load(ctx context.Context, id string) (*entity.Snapshot, error)

	// ListIdentifiers devuelve todos los identificadores en orden lexicográfico,
	// que coincide con el cronológico para fechas ISO.
	ListIdentifiers(ctx context.Context) ([]string, error)
}

// DiffRepository persiste la tabla de comparación (merged_data_<fecha>) para consulta externa.
type DiffRepository interface {
	// SaveDiff reemplaza la tabla de comparación guardada bajo id.
	SaveDiff(ctx context.Context, id string, d *entity.SnapshotDiff) error
}
