package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sicea-api/internal/application/auth"
	"github.com/tu-usuario/sicea-api/internal/application/export"
	"github.com/tu-usuario/sicea-api/internal/application/ingest"
	"github.com/tu-usuario/sicea-api/internal/application/usecase"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	MeterUC       *usecase.MeterUseCase
	BillUC        *usecase.BillUseCase
	ProcessBatch  *ingest.ProcessBatchUseCase
	ValidateBatch *ingest.ValidateBatchUseCase
	ExportExcel   *export.ExportExcelUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Get("/auth/me", authHandler.Me)

	// Reader: ingesta y consulta de boletas (protegido)
	reader := protected.Group("/reader")
	readerHandler := NewReaderHandler(deps.ProcessBatch, deps.ValidateBatch)
	reader.Post("/process-bills/", readerHandler.ProcessBills)
	reader.Post("/validate-batch-bills/", readerHandler.ValidateBatchBills)

	bills := reader.Group("/bills")
	billHandler := NewBillHandler(deps.BillUC)
	bills.Get("/", billHandler.List)
	bills.Get("/:id", billHandler.GetByID)
	bills.Put("/:id", billHandler.Update)
	bills.Delete("/:id", RequireRole(entity.RoleAdmin), billHandler.Delete)
	bills.Get("/:id/charges/", billHandler.Charges)
	bills.Get("/:id/download/", billHandler.Download)

	meters := reader.Group("/meters")
	meterHandler := NewMeterHandler(deps.MeterUC)
	meters.Post("/", meterHandler.Create)
	meters.Get("/", meterHandler.List)
	meters.Get("/:id", meterHandler.GetByID)
	meters.Put("/:id", meterHandler.Update)
	meters.Delete("/:id", RequireRole(entity.RoleAdmin), meterHandler.Delete)

	// Writer: reportes Excel (protegido)
	writer := protected.Group("/writer")
	writerHandler := NewWriterHandler(deps.ExportExcel)
	writer.Get("/export-excel/", writerHandler.ExportExcel)
}
