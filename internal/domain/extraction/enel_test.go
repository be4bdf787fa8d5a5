package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Texto representativo de una factura Enel extraída a texto plano.
const enelSampleText = `ENEL DISTRIBUCIÓN CHILE S.A.
Suministro de Electricidad
FACTURA ELECTRONICA N° 12345678
Número de cliente 2556131-7
Periodo de Lectura 10/12/2023 10/01/2024
Tarifa AT43 AREA 1 S Caso 3 (a)
Total a pagar $ 9.748.155
Dirección suministro AVD BLANCO 940 SANTIAGO
Electricidad Consumida (119092kWh) 9.121.637
Dem. Horas punta (206,000kW) 1.494.224
Cargo por Servicio Público 89.320
Descuento recuperación -1.234
Administración del servicio 669
Total Monto Neto 8.190.046
Total I.V.A. (19%) 1.556.109
Monto Exento 2.000
Monto Total 9.748.155
`

// TestEnelExtract_CamposPrincipales valida factura, cliente, tarifa,
// período y total sobre el texto de muestra.
func TestEnelExtract_CamposPrincipales(t *testing.T) {
	res := NewEnelExtractor().Extract(enelSampleText, "factura.pdf")

	assert.Equal(t, ProviderEnel, res.Provider)
	assert.Equal(t, "12345678", res.InvoiceNumber)
	assert.Equal(t, "2556131-7", res.ClientNumber)
	assert.Equal(t, "AT43 AREA 1 S Caso 3 (a)", res.Tariff)

	require.NotNil(t, res.Period)
	// Fin de período 10/01/2024 menos 1 mes -> diciembre 2023
	assert.Equal(t, 12, res.Period.Month)
	assert.Equal(t, 2023, res.Period.Year)

	require.NotNil(t, res.TotalAmount)
	assert.Equal(t, "9748155", res.TotalAmount.String())
}

// TestEnelExtract_CargosConUnidad valida el patrón con cantidad entre
// paréntesis y la normalización de unidades kWh/kW.
func TestEnelExtract_CargosConUnidad(t *testing.T) {
	res := NewEnelExtractor().Extract(enelSampleText, "factura.pdf")

	consumida := findCharge(t, res.Charges, "Electricidad Consumida")
	assert.Equal(t, "119092", consumida.Value.String())
	assert.Equal(t, UnitKWh, consumida.ValueType)
	assert.Equal(t, 9121637, consumida.Charge)

	demanda := findCharge(t, res.Charges, "Dem. Horas punta")
	assert.Equal(t, "206", demanda.Value.String())
	assert.Equal(t, UnitKW, demanda.ValueType)
	assert.Equal(t, 1494224, demanda.Charge)
}

// TestEnelExtract_CargoEnWh: una lectura en Wh pelados se divide por mil
// y queda en kWh.
func TestEnelExtract_CargoEnWh(t *testing.T) {
	text := `Suministro de Electricidad
Dirección suministro AVD TUPPER 2007 SANTIAGO
Energía base (5000Wh) 1.000
Total Monto Neto 1.000
`
	res := NewEnelExtractor().Extract(text, "f.pdf")
	base := findCharge(t, res.Charges, "Energía base")
	assert.Equal(t, "5", base.Value.String())
	assert.Equal(t, UnitKWh, base.ValueType)
	assert.Equal(t, 1000, base.Charge)
}

// TestEnelExtract_CargosSimples valida el patrón nombre + monto, la
// preservación del signo en descuentos y el descarte de montos de un
// solo dígito.
func TestEnelExtract_CargosSimples(t *testing.T) {
	res := NewEnelExtractor().Extract(enelSampleText, "factura.pdf")

	servicio := findCharge(t, res.Charges, "Cargo por Servicio Público")
	assert.Equal(t, "1", servicio.Value.String())
	assert.Equal(t, UnitUnidad, servicio.ValueType)
	assert.Equal(t, 89320, servicio.Charge)

	descuento := findCharge(t, res.Charges, "Descuento recuperación")
	assert.Equal(t, -1234, descuento.Charge, "el signo del descuento se conserva")

	admin := findCharge(t, res.Charges, "Administración del servicio")
	assert.Equal(t, 669, admin.Charge)
}

// TestEnelExtract_Resumen valida los totales del pie como cargos planos.
func TestEnelExtract_Resumen(t *testing.T) {
	res := NewEnelExtractor().Extract(enelSampleText, "factura.pdf")

	neto := findCharge(t, res.Charges, "Total Monto Neto")
	assert.Equal(t, 8190046, neto.Charge)
	assert.Equal(t, UnitUnidad, neto.ValueType)

	iva := findCharge(t, res.Charges, "Total I.V.A. (19%)")
	assert.Equal(t, 1556109, iva.Charge)

	exento := findCharge(t, res.Charges, "Monto Exento")
	assert.Equal(t, 2000, exento.Charge)

	total := findCharge(t, res.Charges, "Monto Total")
	assert.Equal(t, 9748155, total.Charge)
}

// TestEnelResolvePeriod_ParDeFechas: sin patrón etiquetado, el período sale
// de dos fechas distintas juntas en una misma línea; pares idénticos se
// descartan.
func TestEnelResolvePeriod_ParDeFechas(t *testing.T) {
	e := NewEnelExtractor()

	p := e.resolvePeriod("Detalle consumo\n18/01/2025 18/02/2025\n")
	require.NotNil(t, p)
	assert.Equal(t, 1, p.Month)
	assert.Equal(t, 2025, p.Year)

	// Fechas idénticas no constituyen un período
	p = e.resolvePeriod("Detalle consumo\n18/01/2025 18/01/2025\n")
	assert.Nil(t, p)

	// Fechas en líneas distintas tampoco
	p = e.resolvePeriod("18/01/2025\n18/02/2025\n")
	assert.Nil(t, p)
}

// TestEnelResolvePeriod_RetrocesoDeAño: fin de período en enero retrocede
// a diciembre del año anterior.
func TestEnelResolvePeriod_RetrocesoDeAño(t *testing.T) {
	p := NewEnelExtractor().resolvePeriod("Periodo de Lectura 10/12/2023 10/01/2024")
	require.NotNil(t, p)
	assert.Equal(t, 12, p.Month)
	assert.Equal(t, 2023, p.Year)
}

// TestEnelExtract_FallbacksDeCliente: sin etiqueta explícita, el cliente
// sale del ancla de localidad o de la fecha contigua.
func TestEnelExtract_FallbacksDeCliente(t *testing.T) {
	e := NewEnelExtractor()

	res := e.Extract("Dirección AV MATTA 123 SANTIAGO - 2556131-7\n", "f.pdf")
	assert.Equal(t, "2556131-7", res.ClientNumber)

	res = e.Extract("AV CLIENTE SANTIAGO 177946-K\n", "f.pdf")
	assert.Equal(t, "177946-K", res.ClientNumber)

	res = e.Extract("177949-4 10/01/2024\n", "f.pdf")
	assert.Equal(t, "177949-4", res.ClientNumber)
}

// TestEnelExtract_FacturaLegacy: el número antiguo de 10 dígitos al inicio
// de línea es el último fallback.
func TestEnelExtract_FacturaLegacy(t *testing.T) {
	res := NewEnelExtractor().Extract("1234567890 Compañía Distribuidora\n", "f.pdf")
	assert.Equal(t, "1234567890", res.InvoiceNumber)
}

// TestEnelExtract_Idempotente: dos extracciones del mismo texto producen
// el mismo resultado.
func TestEnelExtract_Idempotente(t *testing.T) {
	e := NewEnelExtractor()
	assert.Equal(t, e.Extract(enelSampleText, "f.pdf"), e.Extract(enelSampleText, "f.pdf"))
}
