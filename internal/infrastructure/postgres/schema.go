package postgres

import (
	"context"
	"fmt"
)

// schema crea las tablas si no existen. Los montos son NUMERIC para no perder precisión.
const schema = `
CREATE TABLE IF NOT EXISTS snapshots (
	identifier TEXT PRIMARY KEY,
	created_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS snapshot_records (
	identifier   TEXT NOT NULL REFERENCES snapshots (identifier) ON DELETE CASCADE,
	position     INTEGER NOT NULL,
	product_code TEXT NOT NULL,
	name         TEXT NOT NULL,
	category     TEXT NOT NULL,
	quantity     NUMERIC NOT NULL,
	average_cost NUMERIC NOT NULL,
	price_tier1  NUMERIC NOT NULL,
	price_tier2  NUMERIC NOT NULL,
	price_tier3  NUMERIC NOT NULL,
	price_tier4  NUMERIC NOT NULL,
	price_tier5  NUMERIC NOT NULL,
	PRIMARY KEY (identifier, position),
	UNIQUE (identifier, product_code)
);

CREATE TABLE IF NOT EXISTS diffs (
	identifier  TEXT PRIMARY KEY,
	current_id  TEXT NOT NULL,
	previous_id TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS diff_lines (
	identifier        TEXT NOT NULL REFERENCES diffs (identifier) ON DELETE CASCADE,
	position          INTEGER NOT NULL,
	product_code      TEXT NOT NULL,
	name              TEXT NOT NULL,
	category          TEXT NOT NULL,
	average_cost      NUMERIC NOT NULL,
	price_tier1       NUMERIC NOT NULL,
	price_tier2       NUMERIC NOT NULL,
	price_tier3       NUMERIC NOT NULL,
	price_tier4       NUMERIC NOT NULL,
	price_tier5       NUMERIC NOT NULL,
	current_quantity  NUMERIC NOT NULL,
	previous_quantity NUMERIC NOT NULL,
	quantity_change   NUMERIC NOT NULL,
	in_previous       BOOLEAN NOT NULL,
	PRIMARY KEY (identifier, position)
);

CREATE TABLE IF NOT EXISTS diff_categories (
	identifier        TEXT NOT NULL REFERENCES diffs (identifier) ON DELETE CASCADE,
	position          INTEGER NOT NULL,
	category          TEXT NOT NULL,
	current_quantity  NUMERIC NOT NULL,
	previous_quantity NUMERIC NOT NULL,
	quantity_change   NUMERIC NOT NULL,
	current_value     NUMERIC NOT NULL,
	previous_value    NUMERIC NOT NULL,
	value_change      NUMERIC NOT NULL,
	PRIMARY KEY (identifier, position)
);`

// EnsureSchema aplica el esquema; es idempotente.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// lockIdentifier serializa escritores del mismo identificador hasta el fin de la transacción.
func lockIdentifier(ctx context.Context, q Querier, id string) error {
	if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, id); err != nil {
		return fmt.Errorf("lock %s: %w", id, err)
	}
	return nil
}
