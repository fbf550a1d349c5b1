package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/daskasas/inventory-tracker/internal/application/comparison"
	appsnapshot "github.com/daskasas/inventory-tracker/internal/application/snapshot"
	infrapdf "github.com/daskasas/inventory-tracker/internal/infrastructure/pdf"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/storage"
	"github.com/daskasas/inventory-tracker/pkg/config"
	"github.com/daskasas/inventory-tracker/pkg/logger"
)

// AppContext dependencias de una invocación del CLI.
type AppContext struct {
	Config  *config.Config
	Log     *logger.Logger
	Stores  *storage.Stores
	Ingest  *appsnapshot.IngestUseCase
	Query   *appsnapshot.QueryUseCase
	Compare *comparison.CompareUseCase
}

// NewAppContext lee la configuración, abre el almacenamiento y arma los casos de uso.
func NewAppContext(ctx context.Context, envFile string) (*AppContext, error) {
	cfg, err := config.LoadFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("cargar configuración: %w", err)
	}

	// Los logs van a stderr; stdout queda para las tablas.
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Output: os.Stderr})

	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("abrir almacenamiento: %w", err)
	}

	ingest, err := appsnapshot.NewIngestUseCase(stores.Snapshots, appsnapshot.IngestOptions{
		Policy:        cfg.Ingest.Policy,
		CodePrefix:    cfg.Ingest.CodePrefix,
		MinPriceTier1: cfg.Ingest.MinPriceTier1,
		TablePrefix:   cfg.Ingest.TablePrefix,
		StockFormat:   cfg.Ingest.StockFormat,
		Charset:       cfg.Ingest.Charset,
	}, log.Component("ingest"))
	if err != nil {
		_ = stores.Close()
		return nil, err
	}

	compare := comparison.NewCompareUseCase(stores.Snapshots, stores.Diffs, infrapdf.NewReportGenerator(cfg.App.Name), comparison.Options{
		PersistDiff: cfg.Ingest.PersistDiff,
		TopN:        cfg.Report.TopN,
		Currency:    cfg.Report.Currency,
	}, log.Component("comparison"))

	return &AppContext{
		Config:  cfg,
		Log:     log,
		Stores:  stores,
		Ingest:  ingest,
		Query:   appsnapshot.NewQueryUseCase(stores.Snapshots),
		Compare: compare,
	}, nil
}

// Close libera el almacenamiento.
func (ac *AppContext) Close() {
	if ac.Stores == nil {
		return
	}
	if err := ac.Stores.Close(); err != nil {
		ac.Log.Error().Err(err).Msg("cerrar almacenamiento")
	}
}

// stdout escritor del comando raíz (os.Stdout salvo en tests).
func stdout(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}
