package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	appsnapshot "github.com/daskasas/inventory-tracker/internal/application/snapshot"
)

// IngestAction lee los dos CSV y guarda el snapshot limpio.
func IngestAction(ctx context.Context, cmd *cli.Command) error {
	inventoryPath := cmd.String("inventory")
	stockPath := cmd.String("stock")

	inv, err := os.Open(inventoryPath)
	if err != nil {
		return fmt.Errorf("abrir inventario: %w", err)
	}
	defer inv.Close()
	stock, err := os.Open(stockPath)
	if err != nil {
		return fmt.Errorf("abrir stock: %w", err)
	}
	defer stock.Close()

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	res, err := appCtx.Ingest.Ingest(ctx, appsnapshot.IngestRequest{
		InventoryName: filepath.Base(inventoryPath),
		Inventory:     inv,
		StockName:     filepath.Base(stockPath),
		Stock:         stock,
		Date:          cmd.String("date"),
		Policy:        cmd.String("policy"),
		StockFormat:   cmd.String("stock-format"),
	})
	if err != nil {
		return err
	}

	w := stdout(cmd)
	fmt.Fprintf(w, "snapshot %s guardado (política %s, stock %s)\n", res.SnapshotID, res.Policy, res.StockFormat)

	table := tablewriter.NewWriter(w)
	table.Header("Paso", "Filas")
	table.Append("filas de inventario", strconv.Itoa(res.Report.InputRows))
	table.Append("sin fila de stock", strconv.Itoa(res.Report.Unobserved))
	table.Append("categoría excluida", strconv.Itoa(res.Report.ExcludedCategory))
	table.Append("cantidad <= 0", strconv.Itoa(res.Report.NonPositiveQty))
	table.Append("campos vacíos o inválidos", strconv.Itoa(res.Report.MissingOrInvalid))
	table.Append("prefijo de código", strconv.Itoa(res.Report.CodePrefixMismatch))
	table.Append("precio bajo el mínimo", strconv.Itoa(res.Report.BelowMinPrice))
	table.Append("retenidas", strconv.Itoa(res.Report.Retained))
	return table.Render()
}

// ListAction imprime los identificadores en orden cronológico.
func ListAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	res, err := appCtx.Query.List(ctx)
	if err != nil {
		return err
	}
	w := stdout(cmd)
	if len(res.Identifiers) == 0 {
		fmt.Fprintln(w, "no hay snapshots guardados")
		return nil
	}
	table := tablewriter.NewWriter(w)
	table.Header("Snapshot")
	for _, id := range res.Identifiers {
		table.Append(id)
	}
	return table.Render()
}

// ShowAction imprime las filas de un snapshot.
func ShowAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	res, err := appCtx.Query.Get(ctx, cmd.String("id"))
	if err != nil {
		return err
	}
	w := stdout(cmd)
	fmt.Fprintf(w, "%s: %d productos\n", res.ID, res.RecordCount)

	table := tablewriter.NewWriter(w)
	table.Header("Código", "Nombre", "Categoría", "Cantidad", "Costo prom.", "PriceTier1")
	for _, r := range res.Records {
		tier1 := ""
		if len(r.PriceTiers) > 0 {
			tier1 = r.PriceTiers[0].StringFixed(2)
		}
		table.Append(r.ProductCode, truncate(r.Name, 40), r.Category, r.Quantity.String(), r.AverageCost.StringFixed(2), tier1)
	}
	return table.Render()
}

// CategoriesAction imprime el resumen por categoría.
func CategoriesAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	res, err := appCtx.Query.CategoryOverview(ctx, cmd.String("id"), cmd.String("sort"))
	if err != nil {
		return err
	}
	table := tablewriter.NewWriter(stdout(cmd))
	table.Header("Categoría", "SKUs", "Cantidad", "Valor", "No realizado", "Margen prom.")
	for _, c := range res.Categories {
		table.Append(
			c.Category,
			strconv.Itoa(c.SKUCount),
			c.TotalQuantity.String(),
			c.TotalValue.StringFixed(2),
			c.UnrealisedValue.StringFixed(2),
			c.AverageGrossMargin.StringFixed(2),
		)
	}
	return table.Render()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
