package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/sicea-api/internal/application/dto"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
	"github.com/tu-usuario/sicea-api/pkg/logger"
)

func newProcessUC(t *testing.T) (*ProcessBatchUseCase, *fakeMeterRepo, *fakeBillRepo, *fakeChargeRepo, *fakeStore) {
	t.Helper()
	meters := newFakeMeterRepo()
	bills := newFakeBillRepo()
	charges := &fakeChargeRepo{}
	store := newFakeStore()
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	uc := NewProcessBatchUseCase(fakeTexts{}, store, meters, bills, charges, log)
	return uc, meters, bills, charges, store
}

// TestProcessBatch_AguaCompleta: una boleta de agua crea el medidor con los
// defaults, persiste boleta y cargos y archiva el PDF con nombre único.
func TestProcessBatch_AguaCompleta(t *testing.T) {
	uc, meters, bills, charges, store := newProcessUC(t)

	results := uc.ProcessBatch([]BatchFile{{Name: "boleta.pdf", Data: []byte(aguasBatchText)}})
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, dto.ProcessStatusOK, res.Status)
	assert.Equal(t, "4529041-7", res.ClientNumber)
	assert.Equal(t, 7, res.Month)
	assert.Equal(t, 2024, res.Year)
	require.NotNil(t, res.TotalAmount)
	assert.Equal(t, "147506", res.TotalAmount.String())

	meter, err := meters.GetByClientNumber("4529041-7")
	require.NoError(t, err)
	require.NotNil(t, meter)
	assert.Equal(t, "Meter 4529041-7", meter.Name)
	assert.Equal(t, entity.MeterTypeWater, meter.MeterType)
	assert.Equal(t, "Unknown", meter.Coverage)

	bill, err := bills.GetByMeterAndPeriod(meter.ID, 7, 2024)
	require.NoError(t, err)
	require.NotNil(t, bill)
	assert.Equal(t, "147506", bill.TotalToPay.String())
	assert.True(t, strings.HasSuffix(bill.PDFFilename, ".pdf"))

	persisted, err := charges.ListByBill(bill.ID)
	require.NoError(t, err)
	assert.Len(t, persisted, 2, "CARGO FIJO e IVA")

	_, ok := store.files[bill.PDFFilename]
	assert.True(t, ok, "el PDF original queda archivado bajo el nombre de la boleta")
}

// TestProcessBatch_ElectricidadCreaMedidorElectrico: el tipo del medidor
// autocreado sigue al proveedor detectado.
func TestProcessBatch_ElectricidadCreaMedidorElectrico(t *testing.T) {
	uc, meters, _, _, _ := newProcessUC(t)

	results := uc.ProcessBatch([]BatchFile{{Name: "factura.pdf", Data: []byte(enelBatchText)}})
	require.Len(t, results, 1)
	assert.Equal(t, dto.ProcessStatusOK, results[0].Status)

	meter, err := meters.GetByClientNumber("2556131-7")
	require.NoError(t, err)
	require.NotNil(t, meter)
	assert.Equal(t, entity.MeterTypeElectricity, meter.MeterType)
}

// TestProcessBatch_AislamientoPorDocumento: un documento malo no aborta el
// resto del lote.
func TestProcessBatch_AislamientoPorDocumento(t *testing.T) {
	uc, _, bills, _, _ := newProcessUC(t)

	results := uc.ProcessBatch([]BatchFile{
		{Name: "roto.pdf", Data: []byte("!bytes corruptos")},
		{Name: "sin-proveedor.pdf", Data: []byte("documento cualquiera")},
		{Name: "boleta.pdf", Data: []byte(aguasBatchText)},
	})
	require.Len(t, results, 3)

	assert.Equal(t, dto.ProcessStatusError, results[0].Status)
	assert.NotEmpty(t, results[0].Error)

	assert.Equal(t, dto.ProcessStatusError, results[1].Status)
	assert.Contains(t, results[1].Error, "proveedor")

	assert.Equal(t, dto.ProcessStatusOK, results[2].Status)
	assert.Equal(t, 1, bills.creates)
}

// TestProcessBatch_PeriodoDuplicado: la misma boleta dos veces persiste una
// sola vez; la segunda falla con el error de período duplicado.
func TestProcessBatch_PeriodoDuplicado(t *testing.T) {
	uc, meters, bills, _, _ := newProcessUC(t)

	results := uc.ProcessBatch([]BatchFile{
		{Name: "a.pdf", Data: []byte(aguasBatchText)},
		{Name: "b.pdf", Data: []byte(aguasBatchText)},
	})
	require.Len(t, results, 2)

	assert.Equal(t, dto.ProcessStatusOK, results[0].Status)
	assert.Equal(t, dto.ProcessStatusError, results[1].Status)
	assert.Contains(t, results[1].Error, "ya existe")

	assert.Equal(t, 1, bills.creates)
	assert.Equal(t, 1, meters.creates, "el medidor no se duplica")
}

// TestProcessBatch_CamposRequeridos: sin cliente, período o total el
// documento se rechaza con un error descriptivo.
func TestProcessBatch_CamposRequeridos(t *testing.T) {
	uc, _, bills, _, _ := newProcessUC(t)

	sinPeriodo := "Agua Potable\nNro de cuenta 123456-7\nTOTAL A PAGAR $ 1.000\n"
	sinCliente := "Agua Potable\nLECTURA ACTUAL 01-AGO-2024\nTOTAL A PAGAR $ 1.000\n"
	sinTotal := "Agua Potable\nNro de cuenta 123456-7\nLECTURA ACTUAL 01-AGO-2024\n"

	results := uc.ProcessBatch([]BatchFile{
		{Name: "p.pdf", Data: []byte(sinPeriodo)},
		{Name: "c.pdf", Data: []byte(sinCliente)},
		{Name: "t.pdf", Data: []byte(sinTotal)},
	})
	require.Len(t, results, 3)
	assert.Contains(t, results[0].Error, "mes/año")
	assert.Contains(t, results[1].Error, "número de cliente")
	assert.Contains(t, results[2].Error, "monto total")
	assert.Zero(t, bills.creates)
}
