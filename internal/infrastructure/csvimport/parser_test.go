package csvimport_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/daskasas/inventory-tracker/internal/domain"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/csvimport"
)

const inventoryCSV = `ProductCode,Name,Category,AverageCost,PriceTier1,PriceTier2,PriceTier3,PriceTier4,PriceTier5,Barcode
P001,Widget,Widgets,5,20,19,18,17,16,123
P002,"Lámpara, mesa",Lamps,12.50,30,,28,27,26,456
P003,Corta,Lamps
`

func TestParseInventory(t *testing.T) {
	p := csvimport.NewParser("", "")
	rows, err := p.ParseInventory("inventory.csv", strings.NewReader(inventoryCSV))
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "P001", rows[0].ProductCode)
	assert.True(t, rows[0].AverageCost.Valid)
	assert.Equal(t, "17", rows[0].PriceTiers[3].Decimal.String())

	assert.Equal(t, "Lámpara, mesa", rows[1].Name, "los campos entrecomillados se respetan")
	assert.Equal(t, "12.5", rows[1].AverageCost.Decimal.String())
	assert.False(t, rows[1].PriceTiers[1].Valid, "celda vacía = nulo, no cero")

	assert.False(t, rows[2].AverageCost.Valid, "fila corta: celdas faltantes quedan nulas")
}

func TestParseInventory_ColumnaFaltante(t *testing.T) {
	csvData := "ProductCode,Name,Category,AverageCost,PriceTier1,PriceTier2,PriceTier3,PriceTier5\nP1,a,b,1,2,3,4,5\n"
	_, err := csvimport.NewParser("", "").ParseInventory("inv.csv", strings.NewReader(csvData))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedInput))

	var mErr *domain.MalformedInputError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, "PriceTier4", mErr.Column)
	assert.Contains(t, err.Error(), `inventory file "inv.csv"`, "el error nombra el archivo")
	assert.Contains(t, err.Error(), "missing PriceTier4 column")
}

func TestParseInventory_MontoNoNumerico(t *testing.T) {
	csvData := strings.Replace(inventoryCSV, "12.50", "doce", 1)
	_, err := csvimport.NewParser("", "").ParseInventory("inv.csv", strings.NewReader(csvData))

	var mErr *domain.MalformedInputError
	require.True(t, errors.As(err, &mErr))
	assert.Equal(t, "AverageCost", mErr.Column)
	assert.Equal(t, 2, mErr.Row)
}

func TestParseInventory_ArchivoVacio(t *testing.T) {
	_, err := csvimport.NewParser("", "").ParseInventory("", strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
	assert.Contains(t, err.Error(), "inventory file")
}

func TestParseInventory_CharsetYBOM(t *testing.T) {
	latin, err := charmap.ISO8859_1.NewEncoder().String(inventoryCSV)
	require.NoError(t, err)

	rows, err := csvimport.NewParser(csvimport.CharsetLatin1, "").ParseInventory("", strings.NewReader(latin))
	require.NoError(t, err)
	assert.Equal(t, "Lámpara, mesa", rows[1].Name, "Latin-1 se decodifica a UTF-8")

	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte(inventoryCSV)...)
	rows, err = csvimport.NewParser(csvimport.CharsetLatin1, "").ParseInventory("", bytes.NewReader(withBOM))
	require.NoError(t, err, "el BOM UTF-8 prevalece sobre el charset configurado")
	assert.Equal(t, "P001", rows[0].ProductCode, "el BOM no contamina el primer encabezado")
	assert.Equal(t, "Lámpara, mesa", rows[1].Name)
}

// ── Stock ─────────────────────────────────────────────────────────────────────

func TestParseStock_Columnas(t *testing.T) {
	csvData := "ProductCode,Location,Quantity\nP001,A,3\nP001,B,\n,C,9\nP002,A,1.5\n"
	res, err := csvimport.NewParser("", csvimport.StockFormatAuto).ParseStock("stock.csv", strings.NewReader(csvData))
	require.NoError(t, err)

	assert.Equal(t, csvimport.StockFormatColumns, res.Format)
	assert.Equal(t, 1, res.BlankCodes)
	require.Len(t, res.Observations, 3)
	assert.False(t, res.Observations[1].Quantity.Valid, "cantidad vacía llega como nulo para que el agregador la descarte")
	assert.Equal(t, "1.5", res.Observations[2].Quantity.Decimal.String())
}

func TestParseStock_Indexado(t *testing.T) {
	csvData := ",ProductCode,Location\nP001,4,A\nP002,7,B\n"
	for _, format := range []csvimport.StockFormat{csvimport.StockFormatAuto, csvimport.StockFormatIndexed} {
		res, err := csvimport.NewParser("", format).ParseStock("stock.csv", strings.NewReader(csvData))
		require.NoError(t, err)
		assert.Equal(t, csvimport.StockFormatIndexed, res.Format)
		require.Len(t, res.Observations, 2)
		assert.Equal(t, "P002", res.Observations[1].ProductCode)
		assert.Equal(t, "7", res.Observations[1].Quantity.Decimal.String(),
			"en el layout indexado la columna ProductCode trae la cantidad")
	}
}

func TestParseStock_IndiceSinEncabezado(t *testing.T) {
	csvData := "ProductCode,Location\nP001,4,A\nP002,7,B\n"
	for _, format := range []csvimport.StockFormat{csvimport.StockFormatAuto, csvimport.StockFormatIndexed} {
		res, err := csvimport.NewParser("", format).ParseStock("stock.csv", strings.NewReader(csvData))
		require.NoError(t, err, "formato %s", format)
		assert.Equal(t, csvimport.StockFormatIndexed, res.Format)
		require.Len(t, res.Observations, 2)
		assert.Equal(t, "P001", res.Observations[0].ProductCode)
		assert.Equal(t, "4", res.Observations[0].Quantity.Decimal.String())
		assert.Equal(t, "P002", res.Observations[1].ProductCode)
		assert.Equal(t, "7", res.Observations[1].Quantity.Decimal.String(),
			"la celda bajo ProductCode corrida una posición trae la cantidad")
	}
}

func TestParseStock_FaltaQuantity(t *testing.T) {
	csvData := "ProductCode,Location\nP001,A\n"
	_, err := csvimport.NewParser("", csvimport.StockFormatAuto).ParseStock("stock.csv", strings.NewReader(csvData))
	require.Error(t, err)
	assert.Equal(t, `stock-levels file "stock.csv": missing Quantity column`, err.Error())

	_, err = csvimport.NewParser("", csvimport.StockFormatColumns).ParseStock("", strings.NewReader(csvData))
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestParseStock_CSVRoto(t *testing.T) {
	csvData := "ProductCode,Quantity\nP001,\"3\n"
	_, err := csvimport.NewParser("", "").ParseStock("stock.csv", strings.NewReader(csvData))
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestParseStockFormatYCharset(t *testing.T) {
	f, err := csvimport.ParseStockFormat(" Indexed ")
	require.NoError(t, err)
	assert.Equal(t, csvimport.StockFormatIndexed, f)
	_, err = csvimport.ParseStockFormat("xlsx")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	c, err := csvimport.ParseCharset("ISO-8859-1")
	require.NoError(t, err)
	assert.Equal(t, csvimport.CharsetLatin1, c)
	_, err = csvimport.ParseCharset("ebcdic")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
