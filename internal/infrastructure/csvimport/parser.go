// Package csvimport convierte los exports CSV del sistema de inventario en filas tipadas.
// No aplica reglas de negocio: solo estructura, tipos y selección explícita del formato
// del archivo de stock.
package csvimport

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/domain/entity"
	"github.com/daskasas/inventory-tracker/internal/domain/snapshot"
)

// Columnas del export.
const (
	ColProductCode = "ProductCode"
	ColName        = "Name"
	ColCategory    = "Category"
	ColAverageCost = "AverageCost"
	ColQuantity    = "Quantity"
)

// PriceTierColumn nombre de la columna del nivel de precio n (1..5).
func PriceTierColumn(n int) string { return fmt.Sprintf("PriceTier%d", n) }

// StockFormat layout del archivo de niveles de stock.
type StockFormat string

const (
	// StockFormatAuto detecta el layout a partir del encabezado.
	StockFormatAuto StockFormat = "auto"
	// StockFormatColumns columnas ProductCode y Quantity explícitas.
	StockFormatColumns StockFormat = "columns"
	// StockFormatIndexed el primer campo de cada fila (encabezado vacío) es el código y la
	// columna titulada "ProductCode" trae la cantidad. Artefacto de un export con índice.
	StockFormatIndexed StockFormat = "indexed"
)

// ParseStockFormat valida el nombre del formato configurado.
func ParseStockFormat(name string) (StockFormat, error) {
	switch StockFormat(strings.ToLower(strings.TrimSpace(name))) {
	case "", StockFormatAuto:
		return StockFormatAuto, nil
	case StockFormatColumns:
		return StockFormatColumns, nil
	case StockFormatIndexed:
		return StockFormatIndexed, nil
	default:
		return "", fmt.Errorf("formato de stock desconocido %q: %w", name, domain.ErrInvalidInput)
	}
}

// Parser lee los dos CSV de entrada.
type Parser struct {
	Charset     string
	StockFormat StockFormat
}

// NewParser construye el parser. Charset vacío = UTF-8; formato vacío = auto.
func NewParser(charset string, format StockFormat) *Parser {
	if format == "" {
		format = StockFormatAuto
	}
	if charset == "" {
		charset = CharsetUTF8
	}
	return &Parser{Charset: charset, StockFormat: format}
}

// StockResult observaciones de stock y cómo se interpretó el archivo.
type StockResult struct {
	Observations []snapshot.StockObservation
	Format       StockFormat // formato efectivamente usado (nunca auto)
	BlankCodes   int         // filas sin código de producto, ignoradas
}

// InventoryLabel etiqueta del archivo de inventario usada en los errores.
func InventoryLabel(name string) string { return fileLabel("inventory", name) }

// StockLabel etiqueta del archivo de stock usada en los errores.
func StockLabel(name string) string { return fileLabel("stock-levels", name) }

func fileLabel(kind, name string) string {
	if name == "" {
		return kind + " file"
	}
	return fmt.Sprintf("%s file %q", kind, name)
}

// ParseInventory lee el listado maestro. Celdas vacías quedan como nulos; una columna
// requerida ausente o un monto no numérico es un MalformedInputError.
func (p *Parser) ParseInventory(name string, r io.Reader) ([]snapshot.InventoryRow, error) {
	label := InventoryLabel(name)
	t, err := p.read(label, r)
	if err != nil {
		return nil, err
	}

	required := []string{ColProductCode, ColName, ColCategory, ColAverageCost}
	for n := 1; n <= entity.PriceTierCount; n++ {
		required = append(required, PriceTierColumn(n))
	}
	idx := make(map[string]int, len(required))
	for _, col := range required {
		i := t.column(col)
		if i < 0 {
			return nil, domain.NewMissingColumnError(label, col)
		}
		idx[col] = i
	}

	rows := make([]snapshot.InventoryRow, 0, len(t.records))
	for n, rec := range t.records {
		row := snapshot.InventoryRow{
			ProductCode: cell(rec, idx[ColProductCode]),
			Name:        cell(rec, idx[ColName]),
			Category:    cell(rec, idx[ColCategory]),
		}
		if row.AverageCost, err = amount(label, ColAverageCost, n+1, cell(rec, idx[ColAverageCost])); err != nil {
			return nil, err
		}
		for tier := 1; tier <= entity.PriceTierCount; tier++ {
			col := PriceTierColumn(tier)
			if row.PriceTiers[tier-1], err = amount(label, col, n+1, cell(rec, idx[col])); err != nil {
				return nil, err
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ParseStock lee el archivo de niveles de stock con el formato configurado.
func (p *Parser) ParseStock(name string, r io.Reader) (*StockResult, error) {
	label := StockLabel(name)
	t, err := p.read(label, r)
	if err != nil {
		return nil, err
	}

	format, err := resolveStockFormat(label, p.StockFormat, t)
	if err != nil {
		return nil, err
	}

	codeIdx, qtyIdx := t.column(ColProductCode), t.column(ColQuantity)
	if format == StockFormatIndexed {
		codeIdx, qtyIdx = 0, t.column(ColProductCode)
		if t.implicitIndex() {
			// El índice no tiene encabezado: las celdas quedan corridas una posición.
			qtyIdx++
		}
	}

	res := &StockResult{Format: format, Observations: make([]snapshot.StockObservation, 0, len(t.records))}
	for n, rec := range t.records {
		code := cell(rec, codeIdx)
		if code == "" {
			res.BlankCodes++
			continue
		}
		qty, err := amount(label, ColQuantity, n+1, cell(rec, qtyIdx))
		if err != nil {
			return nil, err
		}
		res.Observations = append(res.Observations, snapshot.StockObservation{ProductCode: code, Quantity: qty})
	}
	return res, nil
}

func resolveStockFormat(label string, want StockFormat, t *table) (StockFormat, error) {
	hasCode := t.column(ColProductCode) >= 0
	hasQty := t.column(ColQuantity) >= 0
	indexed := (len(t.header) > 0 && t.header[0] == "") || t.implicitIndex()

	switch want {
	case StockFormatColumns:
		if !hasCode {
			return "", domain.NewMissingColumnError(label, ColProductCode)
		}
		if !hasQty {
			return "", domain.NewMissingColumnError(label, ColQuantity)
		}
		return StockFormatColumns, nil
	case StockFormatIndexed:
		if !hasCode {
			return "", domain.NewMissingColumnError(label, ColProductCode)
		}
		return StockFormatIndexed, nil
	default:
		switch {
		case hasCode && hasQty:
			return StockFormatColumns, nil
		case hasCode && indexed:
			return StockFormatIndexed, nil
		case !hasCode:
			return "", domain.NewMissingColumnError(label, ColProductCode)
		default:
			return "", domain.NewMissingColumnError(label, ColQuantity)
		}
	}
}

// ── lectura genérica ──────────────────────────────────────────────────────────

type table struct {
	header  []string
	records [][]string
}

// column índice de la columna (comparación sin distinguir mayúsculas); -1 si no existe.
func (t *table) column(name string) int {
	for i, h := range t.header {
		if strings.EqualFold(h, name) {
			return i
		}
	}
	return -1
}

// implicitIndex la primera fila trae una celda más que el encabezado: la columna índice
// se exportó sin nombre.
func (t *table) implicitIndex() bool {
	return len(t.records) > 0 && len(t.records[0]) == len(t.header)+1
}

func (p *Parser) read(label string, r io.Reader) (*table, error) {
	cr := csv.NewReader(decode(r, p.Charset))
	cr.FieldsPerRecord = -1 // filas irregulares: las celdas faltantes se leen como vacías
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.MalformedInputError{File: label, Reason: "archivo vacío, falta el encabezado"}
	}
	if err != nil {
		return nil, csvError(label, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &table{header: header}
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvError(label, err)
		}
		t.records = append(t.records, rec)
	}
	return t, nil
}

func csvError(label string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		row := pe.Line - 1
		if row < 0 {
			row = 0
		}
		return &domain.MalformedInputError{File: label, Row: row, Reason: pe.Err.Error()}
	}
	return fmt.Errorf("%s: leer CSV: %w", label, err)
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

// amount interpreta un monto; vacío = nulo.
func amount(label, col string, row int, s string) (decimal.NullDecimal, error) {
	if s == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}, &domain.MalformedInputError{
			File: label, Column: col, Row: row,
			Reason: fmt.Sprintf("valor no numérico %q en %s", s, col),
		}
	}
	return decimal.NewNullDecimal(d), nil
}
