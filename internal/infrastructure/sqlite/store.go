// Package sqlite implementa los puertos de persistencia sobre un archivo SQLite
// (driver modernc.org/sqlite, sin cgo). Es el motor por defecto de la herramienta.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/repository"
)

var (
	_ repository.SnapshotRepository = (*Store)(nil)
	_ repository.DiffRepository     = (*Store)(nil)
)

// Store guarda cada snapshot como un conjunto de filas bajo su identificador.
// Las escrituras van en transacción: borrar lo anterior e insertar lo nuevo es atómico.
type Store struct {
	db *sql.DB
}

// New abre (o crea) la base en path y aplica el esquema. ":memory:" sirve para pruebas.
func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	// Una sola conexión: serializa escritores y mantiene viva una base ":memory:".
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrar sqlite: %w", err)
	}
	return s, nil
}

// Close cierra la conexión.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate(ctx context.Context) error {
	schema := `
	PRAGMA journal_mode = WAL;

	CREATE TABLE IF NOT EXISTS snapshots (
		identifier TEXT PRIMARY KEY,
		created_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS snapshot_records (
		identifier   TEXT NOT NULL,
		position     INTEGER NOT NULL,
		product_code TEXT NOT NULL,
		name         TEXT NOT NULL,
		category     TEXT NOT NULL,
		quantity     TEXT NOT NULL,
		average_cost TEXT NOT NULL,
		price_tier1  TEXT NOT NULL,
		price_tier2  TEXT NOT NULL,
		price_tier3  TEXT NOT NULL,
		price_tier4  TEXT NOT NULL,
		price_tier5  TEXT NOT NULL,
		PRIMARY KEY (identifier, position),
		UNIQUE (identifier, product_code)
	);

	CREATE TABLE IF NOT EXISTS diffs (
		identifier  TEXT PRIMARY KEY,
		current_id  TEXT NOT NULL,
		previous_id TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS diff_lines (
		identifier        TEXT NOT NULL,
		position          INTEGER NOT NULL,
		product_code      TEXT NOT NULL,
		name              TEXT NOT NULL,
		category          TEXT NOT NULL,
		average_cost      TEXT NOT NULL,
		price_tier1       TEXT NOT NULL,
		price_tier2       TEXT NOT NULL,
		price_tier3       TEXT NOT NULL,
		price_tier4       TEXT NOT NULL,
		price_tier5       TEXT NOT NULL,
		current_quantity  TEXT NOT NULL,
		previous_quantity TEXT NOT NULL,
		quantity_change   TEXT NOT NULL,
		in_previous       INTEGER NOT NULL,
		PRIMARY KEY (identifier, position)
	);

	CREATE TABLE IF NOT EXISTS diff_categories (
		identifier        TEXT NOT NULL,
		position          INTEGER NOT NULL,
		category          TEXT NOT NULL,
		current_quantity  TEXT NOT NULL,
		previous_quantity TEXT NOT NULL,
		quantity_change   TEXT NOT NULL,
		current_value     TEXT NOT NULL,
		previous_value    TEXT NOT NULL,
		value_change      TEXT NOT NULL,
		PRIMARY KEY (identifier, position)
	);`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// ── Snapshots ───────────────────────────────────────────────────────────────

// Save reemplaza el snapshot guardado bajo snap.ID dentro de una transacción.
func (s *Store) Save(ctx context.Context, snap *entity.Snapshot) error {
	if snap == nil || snap.ID == "" {
		return fmt.Errorf("sqlite: save snapshot sin identificador: %w", domain.ErrPreconditionViolation)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshot_records WHERE identifier = ?`, snap.ID); err != nil {
			return fmt.Errorf("delete records: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO snapshots (identifier, created_at) VALUES (?, ?)
			 ON CONFLICT (identifier) DO UPDATE SET created_at = excluded.created_at`,
			snap.ID, snap.CreatedAt.UTC().Format(time.RFC3339Nano),
		); err != nil {
			return fmt.Errorf("upsert snapshot: %w", err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO snapshot_records (identifier, position, product_code, name, category, quantity, average_cost,
				price_tier1, price_tier2, price_tier3, price_tier4, price_tier5)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert record: %w", err)
		}
		defer stmt.Close()
		for i, r := range snap.Records {
			if _, err := stmt.ExecContext(ctx, snap.ID, i, r.ProductCode, r.Name, r.Category,
				r.Quantity.String(), r.AverageCost.String(),
				r.PriceTiers[0].String(), r.PriceTiers[1].String(), r.PriceTiers[2].String(),
				r.PriceTiers[3].String(), r.PriceTiers[4].String(),
			); err != nil {
				return fmt.Errorf("insert record %s: %w", r.ProductCode, err)
			}
		}
		return nil
	})
}

// Load lee el snapshot completo o devuelve domain.ErrNotFound. Encabezado y filas se leen en
// la misma transacción para no mezclar dos versiones.
func (s *Store) Load(ctx context.Context, id string) (*entity.Snapshot, error) {
	var snap *entity.Snapshot
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		var createdAt string
		err := tx.QueryRowContext(ctx, `SELECT created_at FROM snapshots WHERE identifier = ?`, id).Scan(&createdAt)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("snapshot %q: %w", id, domain.ErrNotFound)
			}
			return fmt.Errorf("get snapshot: %w", err)
		}
		ts, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return fmt.Errorf("snapshot %q: created_at inválido: %w", id, err)
		}

		rows, err := tx.QueryContext(ctx, `
			SELECT product_code, name, category, quantity, average_cost,
				price_tier1, price_tier2, price_tier3, price_tier4, price_tier5
			FROM snapshot_records WHERE identifier = ? ORDER BY position`, id)
		if err != nil {
			return fmt.Errorf("list records: %w", err)
		}
		defer rows.Close()

		snap = &entity.Snapshot{ID: id, CreatedAt: ts, Records: []entity.ProductRecord{}}
		for rows.Next() {
			var r entity.ProductRecord
			if err := rows.Scan(&r.ProductCode, &r.Name, &r.Category, &r.Quantity, &r.AverageCost,
				&r.PriceTiers[0], &r.PriceTiers[1], &r.PriceTiers[2], &r.PriceTiers[3], &r.PriceTiers[4]); err != nil {
				return fmt.Errorf("scan record: %w", err)
			}
			snap.Records = append(snap.Records, r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// ListIdentifiers identificadores en orden lexicográfico.
func (s *Store) ListIdentifiers(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT identifier FROM snapshots ORDER BY identifier`)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan identifier: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// ── Comparaciones ───────────────────────────────────────────────────────────

// SaveDiff reemplaza la tabla de comparación guardada bajo id.
func (s *Store) SaveDiff(ctx context.Context, id string, d *entity.SnapshotDiff) error {
	if d == nil || id == "" {
		return fmt.Errorf("sqlite: save diff sin identificador: %w", domain.ErrPreconditionViolation)
	}
	return s.inTx(ctx, func(tx *sql.Tx) error {
		for _, q := range []string{
			`DELETE FROM diff_lines WHERE identifier = ?`,
			`DELETE FROM diff_categories WHERE identifier = ?`,
			`DELETE FROM diffs WHERE identifier = ?`,
		} {
			if _, err := tx.ExecContext(ctx, q, id); err != nil {
				return fmt.Errorf("clear diff: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO diffs (identifier, current_id, previous_id) VALUES (?, ?, ?)`,
			id, d.CurrentID, d.PreviousID,
		); err != nil {
			return fmt.Errorf("insert diff: %w", err)
		}

		lineStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO diff_lines (identifier, position, product_code, name, category, average_cost,
				price_tier1, price_tier2, price_tier3, price_tier4, price_tier5,
				current_quantity, previous_quantity, quantity_change, in_previous)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert line: %w", err)
		}
		defer lineStmt.Close()
		for i, l := range d.Lines {
			if _, err := lineStmt.ExecContext(ctx, id, i, l.ProductCode, l.Name, l.Category, l.AverageCost.String(),
				l.PriceTiers[0].String(), l.PriceTiers[1].String(), l.PriceTiers[2].String(),
				l.PriceTiers[3].String(), l.PriceTiers[4].String(),
				l.CurrentQuantity.String(), l.PreviousQuantity.String(), l.QuantityChange.String(), l.InPrevious,
			); err != nil {
				return fmt.Errorf("insert line %s: %w", l.ProductCode, err)
			}
		}

		catStmt, err := tx.PrepareContext(ctx, `
			INSERT INTO diff_categories (identifier, position, category, current_quantity, previous_quantity,
				quantity_change, current_value, previous_value, value_change)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
		if err != nil {
			return fmt.Errorf("prepare insert category: %w", err)
		}
		defer catStmt.Close()
		for i, c := range d.Categories {
			if _, err := catStmt.ExecContext(ctx, id, i, c.Category,
				c.CurrentQuantity.String(), c.PreviousQuantity.String(), c.QuantityChange.String(),
				c.CurrentValue.String(), c.PreviousValue.String(), c.ValueChange.String(),
			); err != nil {
				return fmt.Errorf("insert category %s: %w", c.Category, err)
			}
		}
		return nil
	})
}

// LoadDiff lee una comparación persistida o devuelve domain.ErrNotFound.
func (s *Store) LoadDiff(ctx context.Context, id string) (*entity.SnapshotDiff, error) {
	d := &entity.SnapshotDiff{}
	err := s.inTx(ctx, func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx, `SELECT current_id, previous_id FROM diffs WHERE identifier = ?`, id).
			Scan(&d.CurrentID, &d.PreviousID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("diff %q: %w", id, domain.ErrNotFound)
			}
			return fmt.Errorf("get diff: %w", err)
		}
		if d.Lines, err = loadLines(ctx, tx, id); err != nil {
			return err
		}
		d.Categories, err = loadCategories(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func loadLines(ctx context.Context, tx *sql.Tx, id string) ([]entity.DiffLine, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT product_code, name, category, average_cost,
			price_tier1, price_tier2, price_tier3, price_tier4, price_tier5,
			current_quantity, previous_quantity, quantity_change, in_previous
		FROM diff_lines WHERE identifier = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list lines: %w", err)
	}
	defer rows.Close()
	var out []entity.DiffLine
	for rows.Next() {
		var l entity.DiffLine
		if err := rows.Scan(&l.ProductCode, &l.Name, &l.Category, &l.AverageCost,
			&l.PriceTiers[0], &l.PriceTiers[1], &l.PriceTiers[2], &l.PriceTiers[3], &l.PriceTiers[4],
			&l.CurrentQuantity, &l.PreviousQuantity, &l.QuantityChange, &l.InPrevious); err != nil {
			return nil, fmt.Errorf("scan line: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func loadCategories(ctx context.Context, tx *sql.Tx, id string) ([]entity.CategoryChange, error) {
	rows, err := tx.QueryContext(ctx, `
		SELECT category, current_quantity, previous_quantity, quantity_change,
			current_value, previous_value, value_change
		FROM diff_categories WHERE identifier = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var out []entity.CategoryChange
	for rows.Next() {
		var c entity.CategoryChange
		if err := rows.Scan(&c.Category, &c.CurrentQuantity, &c.PreviousQuantity, &c.QuantityChange,
			&c.CurrentValue, &c.PreviousValue, &c.ValueChange); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
