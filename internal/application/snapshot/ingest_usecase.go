// Package snapshot contiene los casos de uso de ingesta y consulta de snapshots.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/application/dto"
	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/repository"
	cleaning "github.com/daskasas/inventory-tracker/internal/domain/snapshot"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/csvimport"
)

// DateLayout formato de la fecha en los identificadores (inventory_data_2024-03-15).
const DateLayout = "2006-01-02"

// DisablePrefix valor de IngestOptions.CodePrefix que quita el filtro de prefijo del preset.
const DisablePrefix = "-"

// SnapshotID arma el identificador <prefix>_<YYYY-MM-DD>.
func SnapshotID(prefix string, date time.Time) string {
	return prefix + "_" + date.Format(DateLayout)
}

// IngestOptions valores por defecto de la ingesta (vienen de config.IngestConfig).
type IngestOptions struct {
	Policy        string
	CodePrefix    string // vacío = el del preset; "-" = sin filtro
	MinPriceTier1 string // vacío = el del preset
	TablePrefix   string
	StockFormat   string
	Charset       string
}

// IngestRequest una corrida de ingesta: dos CSV y overrides opcionales.
type IngestRequest struct {
	InventoryName string
	Inventory     io.Reader
	StockName     string
	Stock         io.Reader
	Date          string // YYYY-MM-DD; vacío = hoy
	Policy        string // vacío = IngestOptions.Policy
	StockFormat   string // vacío = IngestOptions.StockFormat
}

// IngestUseCase parsea, agrega, limpia y guarda un snapshot.
type IngestUseCase struct {
	repo repository.SnapshotRepository
	opts IngestOptions
	log  zerolog.Logger
	now  func() time.Time
}

// NewIngestUseCase construye el caso de uso. Valida las opciones por defecto para fallar al arrancar
// y no en la primera petición.
func NewIngestUseCase(repo repository.SnapshotRepository, opts IngestOptions, log zerolog.Logger) (*IngestUseCase, error) {
	if opts.TablePrefix == "" {
		opts.TablePrefix = "inventory_data"
	}
	uc := &IngestUseCase{repo: repo, opts: opts, log: log, now: time.Now}
	if _, err := uc.policy(""); err != nil {
		return nil, err
	}
	if _, err := csvimport.ParseStockFormat(opts.StockFormat); err != nil {
		return nil, err
	}
	if _, err := csvimport.ParseCharset(opts.Charset); err != nil {
		return nil, err
	}
	return uc, nil
}

// WithClock reemplaza el reloj (tests).
func (uc *IngestUseCase) WithClock(now func() time.Time) *IngestUseCase {
	uc.now = now
	return uc
}

// Ingest ejecuta la corrida completa. Un archivo malformado no guarda nada.
func (uc *IngestUseCase) Ingest(ctx context.Context, in IngestRequest) (*dto.IngestResponse, error) {
	if in.Inventory == nil || in.Stock == nil {
		return nil, fmt.Errorf("ingesta: faltan archivos de inventario o stock: %w", domain.ErrInvalidInput)
	}
	runID := uuid.New().String()
	now := uc.now()

	date := now
	if in.Date != "" {
		d, err := time.Parse(DateLayout, in.Date)
		if err != nil {
			return nil, fmt.Errorf("fecha %q inválida (YYYY-MM-DD): %w", in.Date, domain.ErrInvalidInput)
		}
		date = d
	}
	id := SnapshotID(uc.opts.TablePrefix, date)

	policy, err := uc.policy(in.Policy)
	if err != nil {
		return nil, err
	}
	formatName := in.StockFormat
	if formatName == "" {
		formatName = uc.opts.StockFormat
	}
	format, err := csvimport.ParseStockFormat(formatName)
	if err != nil {
		return nil, err
	}
	charset, err := csvimport.ParseCharset(uc.opts.Charset)
	if err != nil {
		return nil, err
	}
	parser := csvimport.NewParser(charset, format)

	inventory, err := parser.ParseInventory(in.InventoryName, in.Inventory)
	if err != nil {
		return nil, err
	}
	stock, err := parser.ParseStock(in.StockName, in.Stock)
	if err != nil {
		return nil, err
	}
	agg := cleaning.AggregateStock(stock.Observations)

	snap, report, err := cleaning.NewBuilder(policy).Build(id, now, inventory, agg)
	if err != nil {
		var mErr *domain.MalformedInputError
		if errors.As(err, &mErr) {
			mErr.File = csvimport.InventoryLabel(in.InventoryName)
		}
		return nil, err
	}

	if err := uc.repo.Save(ctx, snap); err != nil {
		return nil, fmt.Errorf("guardar snapshot %s: %w", id, err)
	}

	uc.log.Info().
		Str("run_id", runID).
		Str("snapshot_id", id).
		Str("policy", policy.Name).
		Str("stock_format", string(stock.Format)).
		Int("input_rows", report.InputRows).
		Int("unobserved", report.Unobserved).
		Int("excluded_category", report.ExcludedCategory).
		Int("non_positive_quantity", report.NonPositiveQty).
		Int("missing_or_invalid", report.MissingOrInvalid).
		Int("code_prefix_mismatch", report.CodePrefixMismatch).
		Int("below_min_price", report.BelowMinPrice).
		Int("retained", report.Retained).
		Int("dropped_stock_rows", agg.DroppedMissingQuantity).
		Msg("snapshot ingerido")

	return &dto.IngestResponse{
		RunID:            runID,
		SnapshotID:       id,
		CreatedAt:        snap.CreatedAt,
		Policy:           policy.Name,
		StockFormat:      string(stock.Format),
		StockProducts:    agg.Len(),
		DroppedStockRows: agg.DroppedMissingQuantity,
		BlankStockCodes:  stock.BlankCodes,
		Report:           dto.ToBuildReport(report),
	}, nil
}

// policy resuelve el preset y aplica los overrides de configuración.
func (uc *IngestUseCase) policy(name string) (cleaning.Policy, error) {
	if name == "" {
		name = uc.opts.Policy
	}
	p, err := cleaning.PolicyByName(name)
	if err != nil {
		return cleaning.Policy{}, err
	}
	switch prefix := strings.TrimSpace(uc.opts.CodePrefix); prefix {
	case "":
	case DisablePrefix:
		p.RequireCodePrefix = ""
	default:
		p.RequireCodePrefix = prefix
	}
	if uc.opts.MinPriceTier1 != "" {
		floor, err := decimal.NewFromString(strings.TrimSpace(uc.opts.MinPriceTier1))
		if err != nil {
			return cleaning.Policy{}, fmt.Errorf("precio mínimo %q inválido: %w", uc.opts.MinPriceTier1, domain.ErrInvalidInput)
		}
		p.MinPriceTier1 = floor
	}
	return p, nil
}
