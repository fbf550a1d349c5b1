package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/repository"
)

var _ repository.DiffRepository = (*DiffRepo)(nil)

var (
	lineColumns = []string{
		"identifier", "position", "product_code", "name", "category", "average_cost",
		"price_tier1", "price_tier2", "price_tier3", "price_tier4", "price_tier5",
		"current_quantity", "previous_quantity", "quantity_change", "in_previous",
	}
	categoryColumns = []string{
		"identifier", "position", "category", "current_quantity", "previous_quantity", "quantity_change",
		"current_value", "previous_value", "value_change",
	}
)

// DiffRepo persiste tablas de comparación (merged_data_<fecha>).
type DiffRepo struct {
	tx *TxRunner
}

// NewDiffRepository construye el adaptador de comparaciones.
func NewDiffRepository(pool *pgxpool.Pool) *DiffRepo {
	return &DiffRepo{tx: NewTxRunner(pool)}
}

// SaveDiff reemplaza la comparación guardada bajo id.
func (r *DiffRepo) SaveDiff(ctx context.Context, id string, d *entity.SnapshotDiff) error {
	if d == nil || id == "" {
		return fmt.Errorf("postgres: save diff sin identificador: %w", domain.ErrPreconditionViolation)
	}
	return r.tx.Run(ctx, func(q Querier) error {
		if err := lockIdentifier(ctx, q, id); err != nil {
			return err
		}
		if _, err := q.Exec(ctx, `DELETE FROM diffs WHERE identifier = $1`, id); err != nil {
			return fmt.Errorf("delete diff: %w", err)
		}
		if _, err := q.Exec(ctx,
			`INSERT INTO diffs (identifier, current_id, previous_id) VALUES ($1, $2, $3)`,
			id, d.CurrentID, d.PreviousID,
		); err != nil {
			return fmt.Errorf("insert diff: %w", err)
		}
		if _, err := q.CopyFrom(ctx, pgx.Identifier{"diff_lines"}, lineColumns, pgx.CopyFromRows(lineRows(id, d))); err != nil {
			return fmt.Errorf("copy lines: %w", err)
		}
		if _, err := q.CopyFrom(ctx, pgx.Identifier{"diff_categories"}, categoryColumns, pgx.CopyFromRows(categoryRows(id, d))); err != nil {
			return fmt.Errorf("copy categories: %w", err)
		}
		return nil
	})
}

func lineRows(id string, d *entity.SnapshotDiff) [][]any {
	rows := make([][]any, len(d.Lines))
	for i, l := range d.Lines {
		rows[i] = []any{
			id, int32(i), l.ProductCode, l.Name, l.Category, l.AverageCost,
			l.PriceTiers[0], l.PriceTiers[1], l.PriceTiers[2], l.PriceTiers[3], l.PriceTiers[4],
			l.CurrentQuantity, l.PreviousQuantity, l.QuantityChange, l.InPrevious,
		}
	}
	return rows
}

func categoryRows(id string, d *entity.SnapshotDiff) [][]any {
	rows := make([][]any, len(d.Categories))
	for i, c := range d.Categories {
		rows[i] = []any{
			id, int32(i), c.Category, c.CurrentQuantity, c.PreviousQuantity, c.QuantityChange,
			c.CurrentValue, c.PreviousValue, c.ValueChange,
		}
	}
	return rows
}

// LoadDiff lee una comparación persistida o devuelve domain.ErrNotFound.
func (r *DiffRepo) LoadDiff(ctx context.Context, id string) (*entity.SnapshotDiff, error) {
	d := &entity.SnapshotDiff{}
	err := r.tx.RunReadOnly(ctx, func(q Querier) error {
		err := q.QueryRow(ctx, `SELECT current_id, previous_id FROM diffs WHERE identifier = $1`, id).
			Scan(&d.CurrentID, &d.PreviousID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("diff %q: %w", id, domain.ErrNotFound)
			}
			return fmt.Errorf("get diff: %w", err)
		}

		rows, err := q.Query(ctx, `
			SELECT product_code, name, category, average_cost,
				price_tier1, price_tier2, price_tier3, price_tier4, price_tier5,
				current_quantity, previous_quantity, quantity_change, in_previous
			FROM diff_lines WHERE identifier = $1 ORDER BY position`, id)
		if err != nil {
			return fmt.Errorf("list lines: %w", err)
		}
		d.Lines, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.DiffLine, error) {
			var l entity.DiffLine
			err := row.Scan(&l.ProductCode, &l.Name, &l.Category, &l.AverageCost,
				&l.PriceTiers[0], &l.PriceTiers[1], &l.PriceTiers[2], &l.PriceTiers[3], &l.PriceTiers[4],
				&l.CurrentQuantity, &l.PreviousQuantity, &l.QuantityChange, &l.InPrevious)
			return l, err
		})
		if err != nil {
			return fmt.Errorf("scan lines: %w", err)
		}

		rows, err = q.Query(ctx, `
			SELECT category, current_quantity, previous_quantity, quantity_change,
				current_value, previous_value, value_change
			FROM diff_categories WHERE identifier = $1 ORDER BY position`, id)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		d.Categories, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.CategoryChange, error) {
			var c entity.CategoryChange
			err := row.Scan(&c.Category, &c.CurrentQuantity, &c.PreviousQuantity, &c.QuantityChange,
				&c.CurrentValue, &c.PreviousValue, &c.ValueChange)
			return c, err
		})
		if err != nil {
			return fmt.Errorf("scan categories: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}
