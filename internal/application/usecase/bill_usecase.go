package usecase

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tu-usuario/sicea-api/internal/application/dto"
	"github.com/tu-usuario/sicea-api/internal/application/ingest"
	"github.com/tu-usuario/sicea-api/internal/domain"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/internal/domain/repository"
	"github.com/tu-usuario/sicea-api/pkg/logger"
)

// BillUseCase consultas y mantención de boletas ya procesadas.
type BillUseCase struct {
	bills   repository.BillRepository
	meters  repository.MeterRepository
	charges repository.ChargeRepository
	store   ingest.FileStore
	log     *logger.Logger
}

// NewBillUseCase construye el caso de uso.
func NewBillUseCase(bills repository.BillRepository, meters repository.MeterRepository, charges repository.ChargeRepository, store ingest.FileStore, log *logger.Logger) *BillUseCase {
	return &BillUseCase{bills: bills, meters: meters, charges: charges, store: store, log: log}
}

// parsePeriod convierte "YYYY-MM" a un período absoluto en meses
// (year*12 + month), la misma aritmética con la que se filtra el rango.
func parsePeriod(s string) (int, error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("formato inválido de fechas, use YYYY-MM: %q", s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("formato inválido de fechas, use YYYY-MM: %q", s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil || month < 1 || month > 12 {
		return 0, fmt.Errorf("formato inválido de fechas, use YYYY-MM: %q", s)
	}
	return year*12 + month, nil
}

// List lista boletas con filtros opcionales. El rango StartDate/EndDate
// solo aplica cuando vienen ambos extremos.
func (uc *BillUseCase) List(q dto.BillQuery) (*dto.BillListResponse, error) {
	filter := repository.BillFilter{
		ClientNumber: q.ClientNumber,
		MeterType:    q.MeterType,
		Month:        q.Month,
		Year:         q.Year,
	}
	if q.StartDate != "" && q.EndDate != "" {
		start, err := parsePeriod(q.StartDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		end, err := parsePeriod(q.EndDate)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.StartPeriod = start
		filter.EndPeriod = end
	}

	bills, err := uc.bills.List(filter)
	if err != nil {
		return nil, err
	}
	results := make([]dto.BillResponse, 0, len(bills))
	for _, b := range bills {
		res, err := uc.toBillResponse(b)
		if err != nil {
			return nil, err
		}
		results = append(results, *res)
	}
	return &dto.BillListResponse{Results: results, Count: len(results)}, nil
}

// GetByID obtiene una boleta por ID.
func (uc *BillUseCase) GetByID(id string) (*dto.BillResponse, error) {
	bill, err := uc.bills.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, nil
	}
	return uc.toBillResponse(bill)
}

// Update edita campos de la boleta. Si cambia el período, la unicidad
// (medidor, mes, año) la garantiza el repositorio.
func (uc *BillUseCase) Update(id string, in dto.UpdateBillRequest) (*dto.BillResponse, error) {
	bill, err := uc.bills.GetByID(id)
	if err != nil {
		return nil, err
	}
	if bill == nil {
		return nil, nil
	}
	if in.Month != nil {
		bill.Month = *in.Month
	}
	if in.Year != nil {
		bill.Year = *in.Year
	}
	if in.TotalToPay != nil {
		bill.TotalToPay = *in.TotalToPay
	}
	if in.InvoiceNumber != nil {
		bill.InvoiceNumber = *in.InvoiceNumber
	}
	if in.Tariff != nil {
		bill.Tariff = *in.Tariff
	}
	if !bill.Validar() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.bills.Update(bill); err != nil {
		return nil, err
	}
	return uc.toBillResponse(bill)
}

// Delete elimina la boleta, sus cargos y el PDF archivado. Un error al
// borrar el archivo no interrumpe el borrado del registro.
func (uc *BillUseCase) Delete(id string) error {
	bill, err := uc.bills.GetByID(id)
	if err != nil {
		return err
	}
	if bill == nil {
		return domain.ErrNotFound
	}
	if bill.PDFFilename != "" {
		if err := uc.store.Remove(bill.PDFFilename); err != nil {
			uc.log.Warn().Str("pdf", bill.PDFFilename).Err(err).Msg("no se pudo eliminar el PDF asociado")
		}
	}
	if err := uc.charges.DeleteByBill(id); err != nil {
		return err
	}
	return uc.bills.Delete(id)
}

// Charges devuelve los cargos itemizados de una boleta.
func (uc *BillUseCase) Charges(billID string) ([]dto.ChargeResponse, error) {
	charges, err := uc.charges.ListByBill(billID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChargeResponse, 0, len(charges))
	for _, c := range charges {
		out = append(out, dto.ChargeResponse{
			ID:        c.ID,
			BillID:    c.BillID,
			Name:      c.Name,
			Value:     c.Value,
			ValueType: c.ValueType,
			Charge:    c.Charge,
		})
	}
	return out, nil
}

// Download abre el PDF archivado de la boleta. Devuelve el nombre del
// archivo y un reader que el llamador debe cerrar.
func (uc *BillUseCase) Download(id string) (string, io.ReadCloser, error) {
	bill, err := uc.bills.GetByID(id)
	if err != nil {
		return "", nil, err
	}
	if bill == nil || bill.PDFFilename == "" {
		return "", nil, domain.ErrNotFound
	}
	rc, err := uc.store.Open(bill.PDFFilename)
	if err != nil {
		return "", nil, domain.ErrNotFound
	}
	return bill.PDFFilename, rc, nil
}

func (uc *BillUseCase) toBillResponse(b *entity.Bill) (*dto.BillResponse, error) {
	meter, err := uc.meters.GetByID(b.MeterID)
	if err != nil {
		return nil, err
	}
	res := &dto.BillResponse{
		ID:            b.ID,
		Month:         b.Month,
		Year:          b.Year,
		TotalToPay:    b.TotalToPay,
		InvoiceNumber: b.InvoiceNumber,
		Tariff:        b.Tariff,
		PDFFilename:   b.PDFFilename,
	}
	if meter != nil {
		res.Meter = *toMeterResponse(meter)
	}
	return res, nil
}
