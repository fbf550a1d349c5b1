package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

var recordColumns = []string{
	"identifier", "position", "product_code", "name", "category", "quantity", "average_cost",
	"price_tier1", "price_tier2", "price_tier3", "price_tier4", "price_tier5",
}

// SnapshotRepo implementación de SnapshotRepository sobre PostgreSQL.
type SnapshotRepo struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewSnapshotRepository construye el adaptador de persistencia para snapshots.
func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepo {
	return &SnapshotRepo{pool: pool, tx: NewTxRunner(pool)}
}

// Save borra la versión anterior (cascade) e inserta la nueva con COPY, todo en una transacción.
func (r *SnapshotRepo) Save(ctx context.Context, s *entity.Snapshot) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("postgres: save snapshot sin identificador: %w", domain.ErrPreconditionViolation)
	}
	return r.tx.Run(ctx, func(q Querier) error {
		if err := lockIdentifier(ctx, q, s.ID); err != nil {
			return err
		}
		if _, err := q.Exec(ctx, `DELETE FROM snapshots WHERE identifier = $1`, s.ID); err != nil {
			return fmt.Errorf("delete snapshot: %w", err)
		}
		if _, err := q.Exec(ctx,
			`INSERT INTO snapshots (identifier, created_at) VALUES ($1, $2)`, s.ID, s.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert snapshot: %w", err)
		}
		if _, err := q.CopyFrom(ctx, pgx.Identifier{"snapshot_records"}, recordColumns,
			pgx.CopyFromRows(recordRows(s)),
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("snapshot %s: código duplicado: %w", s.ID, domain.ErrPreconditionViolation)
			}
			return fmt.Errorf("copy records: %w", err)
		}
		return nil
	})
}

// recordRows filas para COPY en el orden de recordColumns.
func recordRows(s *entity.Snapshot) [][]any {
	rows := make([][]any, len(s.Records))
	for i, rec := range s.Records {
		rows[i] = []any{
			s.ID, int32(i), rec.ProductCode, rec.Name, rec.Category, rec.Quantity, rec.AverageCost,
			rec.PriceTiers[0], rec.PriceTiers[1], rec.PriceTiers[2], rec.PriceTiers[3], rec.PriceTiers[4],
		}
	}
	return rows
}

// Load lee encabezado y filas dentro de la misma transacción de solo lectura.
func (r *SnapshotRepo) Load(ctx context.Context, id string) (*entity.Snapshot, error) {
	var snap *entity.Snapshot
	err := r.tx.RunReadOnly(ctx, func(q Querier) error {
		var createdAt time.Time
		err := q.QueryRow(ctx, `SELECT created_at FROM snapshots WHERE identifier = $1`, id).Scan(&createdAt)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("snapshot %q: %w", id, domain.ErrNotFound)
			}
			return fmt.Errorf("get snapshot: %w", err)
		}

		rows, err := q.Query(ctx, `
			SELECT product_code, name, category, quantity, average_cost,
				price_tier1, price_tier2, price_tier3, price_tier4, price_tier5
			FROM snapshot_records WHERE identifier = $1 ORDER BY position`, id)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		defer rows.Close()

		snap = &entity.Snapshot{ID: id, CreatedAt: createdAt, Records: []entity.ProductRecord{}}
		for rows.Next() {
			var p entity.ProductRecord
			if err := rows.Scan(&p.ProductCode, &p.Name, &p.Category, &p.Quantity, &p.AverageCost,
				&p.PriceTiers[0], &p.PriceTiers[1], &p.PriceTiers[2], &p.PriceTiers[3], &p.PriceTiers[4]); err != nil {
				return fmt.Errorf("scan record: %w", err)
			}
			snap.Records = append(snap.Records, p)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ListIdentifiers identificadores en orden lexicográfico (collation "C" para no depender del locale).
func (r *SnapshotRepo) ListIdentifiers(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT identifier FROM snapshots ORDER BY identifier COLLATE "C"`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan identifiers: %w", err)
	}
	return ids, nil
}
