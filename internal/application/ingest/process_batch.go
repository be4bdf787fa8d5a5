package ingest

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tu-usuario/sicea-api/internal/application/dto"
	"github.com/tu-usuario/sicea-api/internal/domain"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/internal/domain/extraction"
	"github.com/tu-usuario/sicea-api/internal/domain/repository"
	"github.com/tu-usuario/sicea-api/pkg/logger"
)

// detectPages páginas leídas para detectar el proveedor: las palabras clave
// siempre aparecen en la primera o segunda página.
const detectPages = 2

// ProcessBatchUseCase procesa un lote de boletas: detecta el proveedor,
// extrae campos y cargos, crea el medidor si no existe y persiste boleta,
// cargos y PDF original.
type ProcessBatchUseCase struct {
	texts   PageTextExtractor
	store   FileStore
	meters  repository.MeterRepository
	bills   repository.BillRepository
	charges repository.ChargeRepository
	log     *logger.Logger
}

// NewProcessBatchUseCase construye el caso de uso.
func NewProcessBatchUseCase(texts PageTextExtractor, store FileStore, meters repository.MeterRepository, bills repository.BillRepository, charges repository.ChargeRepository, log *logger.Logger) *ProcessBatchUseCase {
	return &ProcessBatchUseCase{texts: texts, store: store, meters: meters, bills: bills, charges: charges, log: log}
}

// ProcessBatch procesa cada documento del lote de forma aislada: un
// documento malformado produce su propio resultado de error sin abortar
// los hermanos. Devuelve un resultado por documento, en el mismo orden.
func (uc *ProcessBatchUseCase) ProcessBatch(files []BatchFile) []dto.ProcessResult {
	results := make([]dto.ProcessResult, 0, len(files))
	for _, f := range files {
		res, err := uc.processOne(f)
		if err != nil {
			uc.log.Warn().Str("file", f.Name).Err(err).Msg("boleta no procesada")
			results = append(results, dto.ProcessResult{File: f.Name, Status: dto.ProcessStatusError, Error: err.Error()})
			continue
		}
		results = append(results, *res)
	}
	return results
}

func (uc *ProcessBatchUseCase) processOne(f BatchFile) (*dto.ProcessResult, error) {
	text, err := uc.texts.Text(f.Data)
	if err != nil {
		return nil, fmt.Errorf("leer PDF: %w", err)
	}

	firstPages, err := uc.texts.FirstPages(f.Data, detectPages)
	if err != nil {
		firstPages = text
	}
	provider := extraction.DetectProvider(firstPages)
	extractor, ok := extraction.ForProvider(provider)
	if !ok {
		return nil, errors.New("no se pudo identificar el proveedor de la boleta")
	}

	data := extractor.Extract(text, f.Name)
	if data.ClientNumber == "" {
		return nil, errors.New("no se pudo extraer el número de cliente del PDF")
	}
	if data.Period == nil {
		return nil, errors.New("no se pudo extraer el mes/año del PDF; verifique que contenga la fecha de lectura o el período de facturación")
	}
	if data.TotalAmount == nil {
		return nil, errors.New("no se pudo extraer el monto total del PDF")
	}

	meterType := entity.MeterTypeWater
	if provider == extraction.ProviderEnel {
		meterType = entity.MeterTypeElectricity
	}
	meter, err := uc.meters.GetOrCreate(data.ClientNumber, &entity.Meter{
		ID:           uuid.New().String(),
		Name:         "Meter " + data.ClientNumber,
		ClientNumber: data.ClientNumber,
		MeterType:    meterType,
		Coverage:     "Unknown",
	})
	if err != nil {
		return nil, fmt.Errorf("medidor %s: %w", data.ClientNumber, err)
	}

	pdfName := uuid.New().String() + ".pdf"
	bill := &entity.Bill{
		ID:            uuid.New().String(),
		MeterID:       meter.ID,
		Month:         data.Period.Month,
		Year:          data.Period.Year,
		TotalToPay:    *data.TotalAmount,
		InvoiceNumber: data.InvoiceNumber,
		Tariff:        data.Tariff,
		PDFFilename:   pdfName,
	}
	if err := uc.bills.Create(bill); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.ErrBillExists
		}
		return nil, fmt.Errorf("crear boleta: %w", err)
	}

	for _, c := range data.Charges {
		charge := &entity.Charge{
			ID:        uuid.New().String(),
			BillID:    bill.ID,
			Name:      c.Name,
			Value:     c.Value,
			ValueType: c.ValueType,
			Charge:    c.Charge,
		}
		if err := uc.charges.Create(charge); err != nil {
			return nil, fmt.Errorf("guardar cargo %q: %w", c.Name, err)
		}
	}

	// La boleta ya quedó persistida: si el PDF no se puede archivar se
	// registra y se continúa.
	if err := uc.store.Save(pdfName, f.Data); err != nil {
		uc.log.Warn().Str("file", f.Name).Str("pdf", pdfName).Err(err).Msg("no se pudo archivar el PDF")
	}

	uc.log.Info().Str("file", f.Name).Str("client", data.ClientNumber).
		Int("month", data.Period.Month).Int("year", data.Period.Year).Msg("boleta procesada")

	return &dto.ProcessResult{
		File:         f.Name,
		Status:       dto.ProcessStatusOK,
		ClientNumber: data.ClientNumber,
		Month:        data.Period.Month,
		Year:         data.Period.Year,
		TotalAmount:  data.TotalAmount,
	}, nil
}
