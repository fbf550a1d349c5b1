package snapshot

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
)

// BuildReport cuántas filas descartó cada paso de la limpieza, en orden de aplicación.
type BuildReport struct {
	InputRows          int `json:"input_rows"`
	Unobserved         int `json:"unobserved"` // filas sin observación de stock (cantidad 0 por defecto)
	ExcludedCategory   int `json:"excluded_category"`
	NonPositiveQty     int `json:"non_positive_quantity"`
	MissingOrInvalid   int `json:"missing_or_invalid"`
	CodePrefixMismatch int `json:"code_prefix_mismatch"`
	BelowMinPrice      int `json:"below_min_price"`
	Retained           int `json:"retained"`
}

// Dropped total de filas descartadas.
func (r BuildReport) Dropped() int { return r.InputRows - r.Retained }

// Builder une el stock agregado al listado maestro y aplica la política de limpieza.
type Builder struct {
	policy Policy
}

// NewBuilder construye el builder con la política indicada.
func NewBuilder(policy Policy) *Builder {
	return &Builder{policy: policy}
}

// Policy política vigente.
func (b *Builder) Policy() Policy { return b.policy }

// candidate fila en proceso: join ya hecho, campos aún opcionales.
type candidate struct {
	row      InventoryRow
	quantity decimal.Decimal
}

// Build produce el Snapshot canónico. Pasos, en orden:
//  1. left join inventario ← stock por ProductCode (sin observación = cantidad 0)
//  2. descarta categorías excluidas
//  3. descarta cantidades <= 0 (RequireNonZeroQuantity) o negativas (siempre)
//  4. descarta filas con campos requeridos vacíos o montos negativos
//  5. exige el prefijo de código configurado
//  6. exige PriceTier1 > MinPriceTier1
//
// Un ProductCode repetido en el inventario maestro es un archivo malformado, aunque una de
// las filas fuera a descartarse después por categoría, cantidad o precio.
func (b *Builder) Build(
	id string,
	createdAt time.Time,
	inventory []InventoryRow,
	stock StockAggregate,
) (*entity.Snapshot, BuildReport, error) {
	report := BuildReport{InputRows: len(inventory)}

	seen := make(map[string]int, len(inventory))
	for i, row := range inventory {
		code := row.ProductCode
		if code == "" {
			continue
		}
		if first, dup := seen[code]; dup {
			return nil, report, &domain.MalformedInputError{
				File:   "inventory file",
				Column: "ProductCode",
				Row:    i + 1,
				Reason: fmt.Sprintf("ProductCode %q duplicado (ya aparece en la fila %d)", code, first+1),
			}
		}
		seen[code] = i
	}

	// ── 1. Join ───────────────────────────────────────────────────────────────
	candidates := make([]candidate, 0, len(inventory))
	for _, row := range inventory {
		qty, ok := stock.Lookup(row.ProductCode)
		if !ok {
			report.Unobserved++
			qty = decimal.Zero
		}
		candidates = append(candidates, candidate{row: row, quantity: qty})
	}

	// ── 2..6. Filtros ─────────────────────────────────────────────────────────
	records := make([]entity.ProductRecord, 0, len(candidates))
	for _, c := range candidates {
		if b.policy.excludesCategory(c.row.Category) {
			report.ExcludedCategory++
			continue
		}
		if c.quantity.IsNegative() || (b.policy.RequireNonZeroQuantity && c.quantity.IsZero()) {
			report.NonPositiveQty++
			continue
		}
		rec, ok := complete(c)
		if !ok {
			report.MissingOrInvalid++
			continue
		}
		if b.policy.RequireCodePrefix != "" && !strings.HasPrefix(rec.ProductCode, b.policy.RequireCodePrefix) {
			report.CodePrefixMismatch++
			continue
		}
		if !rec.PriceTier(1).GreaterThan(b.policy.MinPriceTier1) {
			report.BelowMinPrice++
			continue
		}
		records = append(records, rec)
	}
	report.Retained = len(records)

	snap, err := entity.NewSnapshot(id, createdAt, records)
	if err != nil {
		return nil, report, err
	}
	return snap, report, nil
}

// complete proyecta la fila sobre las columnas requeridas; false si falta alguna o hay montos negativos.
func complete(c candidate) (entity.ProductRecord, bool) {
	r := c.row
	if r.ProductCode == "" || r.Name == "" || r.Category == "" || !r.AverageCost.Valid {
		return entity.ProductRecord{}, false
	}
	if r.AverageCost.Decimal.IsNegative() {
		return entity.ProductRecord{}, false
	}
	rec := entity.ProductRecord{
		ProductCode: r.ProductCode,
		Name:        r.Name,
		Category:    r.Category,
		Quantity:    c.quantity,
		AverageCost: r.AverageCost.Decimal,
	}
	for i, tier := range r.PriceTiers {
		if !tier.Valid || tier.Decimal.IsNegative() {
			return entity.ProductRecord{}, false
		}
		rec.PriceTiers[i] = tier.Decimal
	}
	return rec, true
}
