package http

import (
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/sicea-api/internal/application/dto"
	"github.com/tu-usuario/sicea-api/internal/application/ingest"
)

// ReaderHandler maneja la ingesta de lotes de boletas: procesamiento y
// validación previa.
type ReaderHandler struct {
	process  *ingest.ProcessBatchUseCase
	validate *ingest.ValidateBatchUseCase
}

// NewReaderHandler construye el handler.
func NewReaderHandler(process *ingest.ProcessBatchUseCase, validate *ingest.ValidateBatchUseCase) *ReaderHandler {
	return &ReaderHandler{process: process, validate: validate}
}

// batchFiles lee el campo multipart "files" completo a memoria.
func batchFiles(c *fiber.Ctx) ([]ingest.BatchFile, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	var files []ingest.BatchFile
	for _, fh := range form.File["files"] {
		data, err := readMultipartFile(fh)
		if err != nil {
			return nil, err
		}
		files = append(files, ingest.BatchFile{Name: fh.Filename, Data: data})
	}
	return files, nil
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// ProcessBills procesa y persiste un lote de boletas PDF.
func (h *ReaderHandler) ProcessBills(c *fiber.Ctx) error {
	files, err := batchFiles(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORM", Message: "se espera multipart con campo files"})
	}
	return c.JSON(dto.ProcessBatchResponse{Results: h.process.ProcessBatch(files)})
}

// ValidateBatchBills clasifica un lote sin persistir nada.
func (h *ReaderHandler) ValidateBatchBills(c *fiber.Ctx) error {
	files, err := batchFiles(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FORM", Message: "se espera multipart con campo files"})
	}
	return c.JSON(dto.ValidateBatchResponse{Results: h.validate.ValidateBatch(files)})
}
