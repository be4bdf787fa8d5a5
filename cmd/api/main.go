package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/sicea-api/internal/application/auth"
	"github.com/tu-usuario/sicea-api/internal/application/export"
	"github.com/tu-usuario/sicea-api/internal/application/ingest"
	"github.com/tu-usuario/sicea-api/internal/application/usecase"
	"github.com/tu-usuario/sicea-api/internal/infrastructure/pdftext"
	"github.com/tu-usuario/sicea-api/internal/infrastructure/postgres"
	"github.com/tu-usuario/sicea-api/internal/infrastructure/storage"
	httpRouter "github.com/tu-usuario/sicea-api/internal/interfaces/http"
	"github.com/tu-usuario/sicea-api/pkg/config"
	"github.com/tu-usuario/sicea-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	meterRepo := postgres.NewMeterRepository(pool)
	billRepo := postgres.NewBillRepository(pool)
	chargeRepo := postgres.NewChargeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	store, err := storage.NewLocalStore(cfg.Storage.BillsDir)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar almacenamiento de PDFs")
	}
	texts := pdftext.New()

	processUC := ingest.NewProcessBatchUseCase(texts, store, meterRepo, billRepo, chargeRepo, log)
	validateUC := ingest.NewValidateBatchUseCase(texts, meterRepo, billRepo)
	meterUC := usecase.NewMeterUseCase(meterRepo)
	billUC := usecase.NewBillUseCase(billRepo, meterRepo, chargeRepo, store, log)
	exportUC := export.NewExportExcelUseCase(meterRepo, billRepo, chargeRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    64 * 1024 * 1024, // lotes de PDFs por multipart
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		MeterUC:       meterUC,
		BillUC:        billUC,
		ProcessBatch:  processUC,
		ValidateBatch: validateUC,
		ExportExcel:   exportUC,
		JWTSecret:     cfg.JWT.Secret,
	})

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

	log.Info().Msg("aplicación detenida")
}
