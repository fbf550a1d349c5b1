// Package commands árbol de comandos de snapctl: ingesta y comparación de snapshots desde la terminal.
package commands

import "github.com/urfave/cli/v3"

func envFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "env",
		Usage: "archivo de variables de entorno (opcional; .env del directorio actual se lee siempre)",
	}
}

func pairFlags() []cli.Flag {
	return []cli.Flag{
		envFlag(),
		&cli.StringFlag{Name: "current", Usage: "snapshot actual (inventory_data_YYYY-MM-DD)", Required: true},
		&cli.StringFlag{Name: "previous", Usage: "snapshot anterior", Required: true},
	}
}

// App construye el comando raíz.
func App() *cli.Command {
	return &cli.Command{
		Name:  "snapctl",
		Usage: "snapshots de inventario DEAR: ingesta, consulta y comparación",
		Commands: []*cli.Command{
			{
				Name:  "ingest",
				Usage: "limpiar los dos CSV exportados y guardar el snapshot del día",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{Name: "inventory", Usage: "CSV del listado maestro de inventario", Required: true},
					&cli.StringFlag{Name: "stock", Usage: "CSV de niveles de stock", Required: true},
					&cli.StringFlag{Name: "date", Usage: "fecha del snapshot YYYY-MM-DD (por defecto hoy)"},
					&cli.StringFlag{Name: "policy", Usage: "política de limpieza (full/dashboard)"},
					&cli.StringFlag{Name: "stock-format", Usage: "layout del CSV de stock (auto/columns/indexed)"},
				},
				Action: IngestAction,
			},
			{
				Name:   "list",
				Usage:  "listar snapshots guardados",
				Flags:  []cli.Flag{envFlag()},
				Action: ListAction,
			},
			{
				Name:  "show",
				Usage: "mostrar las filas de un snapshot",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{Name: "id", Usage: "identificador del snapshot", Required: true},
				},
				Action: ShowAction,
			},
			{
				Name:  "categories",
				Usage: "resumen por categoría de un snapshot",
				Flags: []cli.Flag{
					envFlag(),
					&cli.StringFlag{Name: "id", Usage: "identificador del snapshot", Required: true},
					&cli.StringFlag{Name: "sort", Usage: "category/sku_count/quantity/value/unrealised/margin", Value: "category"},
				},
				Action: CategoriesAction,
			},
			{
				Name:   "compare",
				Usage:  "diff por categoría entre dos snapshots",
				Flags:  pairFlags(),
				Action: CompareAction,
			},
			{
				Name:  "rank",
				Usage: "vista top-N de una comparación",
				Flags: append(pairFlags(),
					&cli.StringFlag{Name: "view", Usage: "most_sold/gross_profit/least_sold_categories/top_increases/stagnated", Required: true},
					&cli.IntFlag{Name: "n", Usage: "cantidad de filas (0 = REPORT_TOP_N)"},
				),
				Action: RankAction,
			},
			{
				Name:  "report",
				Usage: "generar el reporte PDF de una comparación",
				Flags: append(pairFlags(),
					&cli.IntFlag{Name: "n", Usage: "filas por sección (0 = REPORT_TOP_N)"},
					&cli.StringFlag{Name: "out", Usage: "archivo de salida", Value: "comparison_report.pdf"},
				),
				Action: ReportAction,
			},
		},
	}
}
