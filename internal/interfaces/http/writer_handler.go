package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sicea-api/internal/application/dto"
	"github.com/tu-usuario/sicea-api/internal/application/export"
	"github.com/tu-usuario/sicea-api/internal/domain"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// WriterHandler genera los reportes Excel de boletas.
type WriterHandler struct {
	uc *export.ExportExcelUseCase
}

// NewWriterHandler construye el handler.
func NewWriterHandler(uc *export.ExportExcelUseCase) *WriterHandler {
	return &WriterHandler{uc: uc}
}

// ExportExcel genera el Excel para meter_type y rango de períodos dados.
// Con meter_type=ALL el rango es opcional y se exporta el histórico completo.
func (h *WriterHandler) ExportExcel(c *fiber.Ctx) error {
	filename, data, err := h.uc.Export(c.Query("meter_type"), c.Query("start_date"), c.Query("end_date"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "meter_type debe ser WATER, ELECTRICITY, BOTH o ALL, con fechas YYYY-MM"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(data)
}
