package ingest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/sicea-api/internal/domain/entity"
)

func newValidateUC(t *testing.T) (*ValidateBatchUseCase, *fakeMeterRepo, *fakeBillRepo) {
	t.Helper()
	meters := newFakeMeterRepo()
	bills := newFakeBillRepo()
	return NewValidateBatchUseCase(fakeTexts{}, meters, bills), meters, bills
}

func seedMeter(t *testing.T, meters *fakeMeterRepo, clientNumber string) *entity.Meter {
	t.Helper()
	m := &entity.Meter{ID: "m-" + clientNumber, Name: "Meter " + clientNumber, ClientNumber: clientNumber, MeterType: entity.MeterTypeWater, Coverage: "Unknown"}
	require.NoError(t, meters.Create(m))
	return m
}

// TestValidateBatch_ExtensionPrimero: un archivo sin extensión .pdf es
// invalid antes de intentar extraer nada (los bytes serían ilegibles).
func TestValidateBatch_ExtensionPrimero(t *testing.T) {
	uc, _, _ := newValidateUC(t)

	results := uc.ValidateBatch([]BatchFile{{Name: "boleta.txt", Data: []byte("!ilegible")}})
	require.Len(t, results, 1)
	assert.Equal(t, "invalid", results[0].Status)
	assert.Equal(t, "Formato de archivo no válido.", results[0].Detail)
}

// TestValidateBatch_ProveedorNoReconocido: texto sin palabras clave.
func TestValidateBatch_ProveedorNoReconocido(t *testing.T) {
	uc, _, _ := newValidateUC(t)

	results := uc.ValidateBatch([]BatchFile{{Name: "x.pdf", Data: []byte("documento cualquiera")}})
	require.Len(t, results, 1)
	assert.Equal(t, "invalid", results[0].Status)
	assert.Equal(t, "Proveedor no reconocido.", results[0].Detail)
}

// TestValidateBatch_SinPeriodo: proveedor reconocido pero sin fecha.
func TestValidateBatch_SinPeriodo(t *testing.T) {
	uc, _, _ := newValidateUC(t)

	results := uc.ValidateBatch([]BatchFile{{Name: "x.pdf", Data: []byte("Agua Potable\nNro de cuenta 123456-7\n")}})
	require.Len(t, results, 1)
	assert.Equal(t, "invalid", results[0].Status)
	assert.Contains(t, results[0].Detail, "mes/año")
}

// TestValidateBatch_CorrectaYDuplicada: dos documentos con la misma clave
// (cliente, mes, año): el primero correct, el segundo duplicated.
func TestValidateBatch_CorrectaYDuplicada(t *testing.T) {
	uc, meters, _ := newValidateUC(t)
	seedMeter(t, meters, "4529041-7")

	results := uc.ValidateBatch([]BatchFile{
		{Name: "a.pdf", Data: []byte(aguasBatchText)},
		{Name: "b.pdf", Data: []byte(aguasBatchText)},
	})
	require.Len(t, results, 2)
	assert.Equal(t, "correct", results[0].Status)
	assert.Equal(t, "duplicated", results[1].Status)
}

// TestValidateBatch_MedidorInexistente: cliente extraído pero sin medidor.
func TestValidateBatch_MedidorInexistente(t *testing.T) {
	uc, _, _ := newValidateUC(t)

	results := uc.ValidateBatch([]BatchFile{{Name: "a.pdf", Data: []byte(aguasBatchText)}})
	require.Len(t, results, 1)
	assert.Equal(t, "not_found", results[0].Status)
	assert.Equal(t, "4529041-7", results[0].Meter)
}

// TestValidateBatch_YaPersistida: la clave ya existe en la base.
func TestValidateBatch_YaPersistida(t *testing.T) {
	uc, meters, bills := newValidateUC(t)
	m := seedMeter(t, meters, "4529041-7")
	require.NoError(t, bills.Create(&entity.Bill{ID: "b1", MeterID: m.ID, Month: 7, Year: 2024}))

	results := uc.ValidateBatch([]BatchFile{{Name: "a.pdf", Data: []byte(aguasBatchText)}})
	require.Len(t, results, 1)
	assert.Equal(t, "in_db", results[0].Status)
}

// TestValidateBatch_SoloLectura: la validación nunca escribe medidores ni
// boletas, clasifique lo que clasifique.
func TestValidateBatch_SoloLectura(t *testing.T) {
	uc, meters, bills := newValidateUC(t)
	seedMeter(t, meters, "4529041-7")
	metersBefore, billsBefore := meters.creates, bills.creates

	uc.ValidateBatch([]BatchFile{
		{Name: "a.pdf", Data: []byte(aguasBatchText)},
		{Name: "b.pdf", Data: []byte(enelBatchText)},
		{Name: "c.txt", Data: []byte("x")},
	})
	assert.Equal(t, metersBefore, meters.creates)
	assert.Equal(t, billsBefore, bills.creates)
}
