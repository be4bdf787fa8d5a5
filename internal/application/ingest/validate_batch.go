package ingest

import (
	"fmt"
	"strings"

	"github.com/tu-usuario/sicea-api/internal/application/dto"
	"github.com/tu-usuario/sicea-api/internal/domain/extraction"
	"github.com/tu-usuario/sicea-api/internal/domain/repository"
)

// batchKey clave de deduplicación dentro del lote.
type batchKey struct {
	client string
	month  int
	year   int
}

// ValidateBatchUseCase clasifica cada documento de un lote sin escribir
// nada: correct, duplicated (repetido dentro del lote), in_db (ya
// persistido), not_found (medidor inexistente) o invalid.
type ValidateBatchUseCase struct {
	texts  PageTextExtractor
	meters repository.MeterRepository
	bills  repository.BillRepository
}

// NewValidateBatchUseCase construye el caso de uso.
func NewValidateBatchUseCase(texts PageTextExtractor, meters repository.MeterRepository, bills repository.BillRepository) *ValidateBatchUseCase {
	return &ValidateBatchUseCase{texts: texts, meters: meters, bills: bills}
}

// ValidateBatch clasifica los documentos en orden. El orden de los chequeos
// es significativo: formato, proveedor, período, duplicado en el lote,
// número de cliente, existencia del medidor y por último duplicado
// persistido. La clave del lote se registra antes del chequeo de cliente,
// igual que el flujo de clasificación original.
func (uc *ValidateBatchUseCase) ValidateBatch(files []BatchFile) []dto.ValidateResult {
	results := make([]dto.ValidateResult, 0, len(files))
	seen := make(map[batchKey]struct{})

	for _, f := range files {
		results = append(results, uc.validateOne(f, seen))
	}
	return results
}

func (uc *ValidateBatchUseCase) validateOne(f BatchFile, seen map[batchKey]struct{}) dto.ValidateResult {
	if !strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
		return dto.ValidateResult{File: f.Name, Status: dto.ValidateStatusInvalid, Detail: "Formato de archivo no válido."}
	}

	text, err := uc.texts.Text(f.Data)
	if err != nil {
		return dto.ValidateResult{File: f.Name, Status: dto.ValidateStatusInvalid, Detail: err.Error()}
	}

	firstPages, err := uc.texts.FirstPages(f.Data, detectPages)
	if err != nil {
		firstPages = text
	}
	extractor, ok := extraction.ForProvider(extraction.DetectProvider(firstPages))
	if !ok {
		return dto.ValidateResult{File: f.Name, Status: dto.ValidateStatusInvalid, Detail: "Proveedor no reconocido."}
	}

	data := extractor.Extract(text, f.Name)

	if data.Period == nil {
		return dto.ValidateResult{
			File:   f.Name,
			Status: dto.ValidateStatusInvalid,
			Detail: "No se pudo extraer el mes/año del PDF. Verifique que contenga la fecha de lectura o período de facturación.",
		}
	}

	key := batchKey{client: data.ClientNumber, month: data.Period.Month, year: data.Period.Year}
	if _, dup := seen[key]; dup {
		return dto.ValidateResult{
			File:   f.Name,
			Status: dto.ValidateStatusDuplicated,
			Detail: fmt.Sprintf("Duplicada en el lote (mes=%d, año=%d).", data.Period.Month, data.Period.Year),
		}
	}
	seen[key] = struct{}{}

	if data.ClientNumber == "" {
		return dto.ValidateResult{File: f.Name, Status: dto.ValidateStatusInvalid, Detail: "No se pudo extraer el número de cliente."}
	}

	meter, err := uc.meters.GetByClientNumber(data.ClientNumber)
	if err != nil {
		return dto.ValidateResult{File: f.Name, Status: dto.ValidateStatusInvalid, Detail: err.Error()}
	}
	if meter == nil {
		return dto.ValidateResult{
			File:   f.Name,
			Status: dto.ValidateStatusNotFound,
			Detail: fmt.Sprintf("El medidor %s no existe", data.ClientNumber),
			Meter:  data.ClientNumber,
		}
	}

	exists, err := uc.bills.Exists(meter.ID, data.Period.Month, data.Period.Year)
	if err != nil {
		return dto.ValidateResult{File: f.Name, Status: dto.ValidateStatusInvalid, Detail: err.Error()}
	}
	if exists {
		return dto.ValidateResult{File: f.Name, Status: dto.ValidateStatusInDB, Detail: "Ya existe en la base de datos."}
	}
	return dto.ValidateResult{File: f.Name, Status: dto.ValidateStatusCorrect, Detail: "Factura válida y no duplicada."}
}
