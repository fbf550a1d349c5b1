package entity

import (
	"fmt"
	"time"

	"github.com/daskasas/inventory-tracker/internal/domain"
)

// Snapshot tabla inmutable de productos validados producida por una corrida de ingesta.
// ID deriva de la fecha de ingesta (ej. inventory_data_2024-03-15); reingestar con el mismo ID la reemplaza completa.
type Snapshot struct {
	ID        string
	CreatedAt time.Time
	Records   []ProductRecord // orden de inserción; ProductCode único
}

// NewSnapshot construye el snapshot validando el invariante de códigos únicos y no vacíos.
func NewSnapshot(id string, createdAt time.Time, records []ProductRecord) (*Snapshot, error) {
	if id == "" {
		return nil, fmt.Errorf("snapshot sin identificador: %w", domain.ErrPreconditionViolation)
	}
	s := &Snapshot{ID: id, CreatedAt: createdAt, Records: records}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate verifica que cada ProductCode sea no vacío y único.
func (s *Snapshot) Validate() error {
	seen := make(map[string]struct{}, len(s.Records))
	for i, r := range s.Records {
		if r.ProductCode == "" {
			return fmt.Errorf("snapshot %s: registro %d sin ProductCode: %w", s.ID, i, domain.ErrPreconditionViolation)
		}
		if _, dup := seen[r.ProductCode]; dup {
			return fmt.Errorf("snapshot %s: ProductCode duplicado %q: %w", s.ID, r.ProductCode, domain.ErrPreconditionViolation)
		}
		seen[r.ProductCode] = struct{}{}
	}
	return nil
}

// Index devuelve los registros indexados por ProductCode.
func (s *Snapshot) Index() map[string]ProductRecord {
	idx := make(map[string]ProductRecord, len(s.Records))
	for _, r := range s.Records {
		idx[r.ProductCode] = r
	}
	return idx
}

// Clone copia profunda para que el store nunca comparta el slice con el llamador.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{ID: s.ID, CreatedAt: s.CreatedAt, Records: make([]ProductRecord, len(s.Records))}
	copy(out.Records, s.Records)
	return out
}
