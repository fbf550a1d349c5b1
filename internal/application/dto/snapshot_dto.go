package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Ingesta ───────────────────────────────────────────────────────────────────

// BuildReportDTO cuántas filas descartó cada paso de limpieza.
type BuildReportDTO struct {
	InputRows          int `json:"input_rows"`
	Unobserved         int `json:"unobserved"`           // sin fila de stock: cantidad 0
	ExcludedCategory   int `json:"excluded_category"`
	NonPositiveQty     int `json:"non_positive_quantity"`
	MissingOrInvalid   int `json:"missing_or_invalid"`
	CodePrefixMismatch int `json:"code_prefix_mismatch"`
	BelowMinPrice      int `json:"below_min_price"`
	Retained           int `json:"retained"`
}

// IngestResponse resultado de POST /api/snapshots.
type IngestResponse struct {
	RunID            string         `json:"run_id"`
	SnapshotID       string         `json:"snapshot_id"`
	CreatedAt        time.Time      `json:"created_at"`
	Policy           string         `json:"policy"`
	StockFormat      string         `json:"stock_format"`
	StockProducts    int            `json:"stock_products"`     // códigos distintos en el archivo de stock
	DroppedStockRows int            `json:"dropped_stock_rows"` // filas sin cantidad
	BlankStockCodes  int            `json:"blank_stock_codes"`  // filas sin código
	Report           BuildReportDTO `json:"report"`
}

// ── Consulta ──────────────────────────────────────────────────────────────────

// SnapshotListResponse identificadores en orden cronológico.
type SnapshotListResponse struct {
	Identifiers []string `json:"identifiers"`
}

// ProductRecordDTO fila de un snapshot.
type ProductRecordDTO struct {
	ProductCode string            `json:"product_code"`
	Name        string            `json:"name"`
	Category    string            `json:"category"`
	Quantity    decimal.Decimal   `json:"quantity"`
	AverageCost decimal.Decimal   `json:"average_cost"`
	PriceTiers  []decimal.Decimal `json:"price_tiers"` // PriceTier1..PriceTier5
}

// SnapshotResponse snapshot completo.
type SnapshotResponse struct {
	ID          string             `json:"id"`
	CreatedAt   time.Time          `json:"created_at"`
	RecordCount int                `json:"record_count"`
	Records     []ProductRecordDTO `json:"records"`
}

// CategorySummaryDTO totales de una categoría para las gráficas del dashboard.
type CategorySummaryDTO struct {
	Category           string          `json:"category"`
	SKUCount           int             `json:"sku_count"`
	TotalQuantity      decimal.Decimal `json:"total_quantity"`
	TotalValue         decimal.Decimal `json:"total_value"`      // Σ qty × costo promedio
	UnrealisedValue    decimal.Decimal `json:"unrealised_value"` // Σ (PriceTier1 − costo) × qty
	AverageGrossMargin decimal.Decimal `json:"average_gross_margin"`
}

// CategoryOverviewResponse GET /api/snapshots/:id/categories.
type CategoryOverviewResponse struct {
	SnapshotID string               `json:"snapshot_id"`
	SortBy     string               `json:"sort_by"`
	Categories []CategorySummaryDTO `json:"categories"`
}
