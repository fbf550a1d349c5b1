package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/daskasas/inventory-tracker/docs"
	"github.com/daskasas/inventory-tracker/internal/application/comparison"
	appsnapshot "github.com/daskasas/inventory-tracker/internal/application/snapshot"
	infrapdf "github.com/daskasas/inventory-tracker/internal/infrastructure/pdf"
	"github.com/daskasas/inventory-tracker/internal/infrastructure/storage"
	httpRouter "github.com/daskasas/inventory-tracker/internal/interfaces/http"
	"github.com/daskasas/inventory-tracker/pkg/config"
	"github.com/daskasas/inventory-tracker/pkg/logger"
)

// @title        Inventory Tracker API
// @version      1.0
// @description  Ingesta de exportaciones CSV de DEAR Inventory, snapshots diarios y comparación entre fechas.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.Storage.Driver).
		Msg("iniciando aplicación")

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("aplicación detenida con error")
	}
	log.Info().Msg("aplicación detenida")
}

// run arma las dependencias y sirve hasta SIGINT/SIGTERM. Devuelve el error en lugar de
// terminar el proceso para que los defer (cierre del almacenamiento) se ejecuten.
func run(cfg *config.Config, log *logger.Logger) error {
	ctx := context.Background()
	stores, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("abrir almacenamiento: %w", err)
	}
	defer func() {
		if err := stores.Close(); err != nil {
			log.Error().Err(err).Msg("cerrar almacenamiento")
		}
	}()
	log.Debug().
		Str("sqlite_path", cfg.Storage.SQLitePath).
		Str("policy", cfg.Ingest.Policy).
		Bool("persist_diff", cfg.Ingest.PersistDiff).
		Msg("almacenamiento abierto")

	app, err := newApp(cfg, log, stores)
	if err != nil {
		return err
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}
	return nil
}

// newApp construye los casos de uso sobre stores y la app Fiber con todas las rutas.
func newApp(cfg *config.Config, log *logger.Logger, stores *storage.Stores) (*fiber.App, error) {
	ingestUC, err := appsnapshot.NewIngestUseCase(stores.Snapshots, appsnapshot.IngestOptions{
		Policy:        cfg.Ingest.Policy,
		CodePrefix:    cfg.Ingest.CodePrefix,
		MinPriceTier1: cfg.Ingest.MinPriceTier1,
		TablePrefix:   cfg.Ingest.TablePrefix,
		StockFormat:   cfg.Ingest.StockFormat,
		Charset:       cfg.Ingest.Charset,
	}, log.Component("ingest"))
	if err != nil {
		return nil, fmt.Errorf("configuración de ingesta: %w", err)
	}
	queryUC := appsnapshot.NewQueryUseCase(stores.Snapshots)

	// PDF: reporte de comparación con todas las vistas de ranking
	reportGen := infrapdf.NewReportGenerator(cfg.App.Name)
	compareUC := comparison.NewCompareUseCase(stores.Snapshots, stores.Diffs, reportGen, comparison.Options{
		PersistDiff: cfg.Ingest.PersistDiff,
		TopN:        cfg.Report.TopN,
		Currency:    cfg.Report.Currency,
	}, log.Component("comparison"))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.UploadMaxMB << 20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inventory Tracker API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "storage": stores.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ingest:  ingestUC,
		Query:   queryUC,
		Compare: compareUC,
	})
	return app, nil
}
