package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli/v3"

	"github.com/daskasas/inventory-tracker/internal/application/comparison"
	"github.com/daskasas/inventory-tracker/internal/application/dto"
)

// CompareAction imprime la variación por categoría.
func CompareAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	res, err := appCtx.Compare.Compare(ctx, cmd.String("current"), cmd.String("previous"))
	if err != nil {
		return err
	}
	w := stdout(cmd)
	fmt.Fprintf(w, "%s vs %s: %d productos\n", res.CurrentID, res.PreviousID, len(res.Lines))
	if res.PersistedAs != "" {
		fmt.Fprintf(w, "guardado como %s\n", res.PersistedAs)
	}

	table := tablewriter.NewWriter(w)
	table.Header("Categoría", "Cant. actual", "Cant. anterior", "Δ cantidad", "Valor actual", "Valor anterior", "Δ valor")
	for _, c := range res.Categories {
		table.Append(
			c.Category,
			c.CurrentQuantity.String(),
			c.PreviousQuantity.String(),
			c.QuantityChange.String(),
			c.CurrentValue.StringFixed(2),
			c.PreviousValue.StringFixed(2),
			c.ValueChange.StringFixed(2),
		)
	}
	return table.Render()
}

// RankAction imprime una vista de ranking.
func RankAction(ctx context.Context, cmd *cli.Command) error {
	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	res, err := appCtx.Compare.Rankings(ctx, dto.RankingRequest{
		Current:  cmd.String("current"),
		Previous: cmd.String("previous"),
		View:     cmd.String("view"),
		N:        int(cmd.Int("n")),
	})
	if err != nil {
		return err
	}
	w := stdout(cmd)
	fmt.Fprintf(w, "%s: top %d de %d\n", res.View, res.N, res.GroupSize)

	table := tablewriter.NewWriter(w)
	if res.View == comparison.ViewLeastSoldCategories {
		table.Header("Categoría", "Cant. actual", "Cant. anterior", "Δ cantidad")
		for _, c := range res.Categories {
			table.Append(c.Category, c.CurrentQuantity.String(), c.PreviousQuantity.String(), c.Metric.String())
		}
		return table.Render()
	}
	table.Header("Código", "Nombre", "Categoría", "Actual", "Anterior", "Métrica")
	for _, l := range res.Lines {
		table.Append(l.ProductCode, truncate(l.Name, 40), l.Category, l.CurrentQuantity.String(), l.PreviousQuantity.String(), l.Metric.String())
	}
	return table.Render()
}

// ReportAction escribe el PDF de la comparación.
func ReportAction(ctx context.Context, cmd *cli.Command) error {
	out := cmd.String("out")
	absOut, err := filepath.Abs(out)
	if err != nil {
		return fmt.Errorf("resolver ruta de salida: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(absOut), 0o755); err != nil {
		return fmt.Errorf("crear directorio de salida: %w", err)
	}

	appCtx, err := NewAppContext(ctx, cmd.String("env"))
	if err != nil {
		return err
	}
	defer appCtx.Close()

	pdf, err := appCtx.Compare.Report(ctx, cmd.String("current"), cmd.String("previous"), int(cmd.Int("n")))
	if err != nil {
		return err
	}
	if err := os.WriteFile(absOut, pdf, 0o644); err != nil {
		return fmt.Errorf("escribir reporte: %w", err)
	}
	fmt.Fprintf(stdout(cmd), "reporte generado: %s\n", absOut)
	return nil
}
