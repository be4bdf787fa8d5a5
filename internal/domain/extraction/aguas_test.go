package extraction

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Texto representativo de una boleta de Aguas Andinas ya extraída a texto
// plano: cuadro de cargos, cuadro de tarifas, detalle de consumo.
const aguasSampleText = `AGUAS ANDINAS S.A.
Agua Potable y Saneamiento
BOLETA ELECTRÓNICA N° 987654321
Nro de cuenta 4529041-7
FECHA EMISIÓN: 03-SEP-2024
VENCIMIENTO TOTAL A PAGAR
05-OCT-2024 $ 147.506
CARGO FIJO 1,00 1.049
CONSUMO AGUA 40,00 18.464
RECOLECCION AGUAS SERVIDAS 40,00 14.046
IVA (19%) 23.941
TOTAL VENTA 147.513
DESCUENTO LEY REDONDEO -7
El valor neto de este documento se encuentra detallado arriba
Los valores con IVA aplicados en esta boleta son los siguientes:
Agua Potable = $ 594,81
Recoleccion = $ 451,79
Tarifa Sobreconsumo = $ 1.200,50
Plantas de Tratamiento
Corte o Reposición 1era instancia: $ 9.210
Corte o Reposición 2da instancia: $ 18.420
LECTURA ANTERIOR 01-JUL-2024 1.200 m3
LECTURA ACTUAL 01-AGO-2024 1.240 m3
DIFERENCIA DE LECTURAS 40,00 m3
CONSUMO TOTAL 40,00 m3
Número de Medidor 123456
Grupo Tarifario G_1_TR
FECHA ESTIMADA PRÓXIMA LECTURA 01-OCT-2024
Ultimo pago 05-AGO-2024 $ 120.300
TOTAL A PAGAR $ 147.506
`

func findCharge(t *testing.T, charges []Charge, name string) Charge {
	t.Helper()
	for _, c := range charges {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no se encontró el cargo %q", name)
	return Charge{}
}

// TestAguasExtract_CamposPrincipales valida número de boleta, cliente,
// período y total sobre el texto de muestra.
func TestAguasExtract_CamposPrincipales(t *testing.T) {
	res := NewAguasExtractor().Extract(aguasSampleText, "boleta.pdf")

	assert.Equal(t, "boleta.pdf", res.File)
	assert.Equal(t, ProviderAguas, res.Provider)
	assert.Equal(t, "987654321", res.InvoiceNumber)
	assert.Equal(t, "4529041-7", res.ClientNumber)

	require.NotNil(t, res.Period, "el período debe resolverse")
	// LECTURA ACTUAL 01-AGO-2024 menos 1 mes -> julio 2024
	assert.Equal(t, 7, res.Period.Month)
	assert.Equal(t, 2024, res.Period.Year)

	require.NotNil(t, res.TotalAmount)
	assert.Equal(t, "147506", res.TotalAmount.String())
}

// TestAguasExtract_CargosPrincipales valida la clasificación estructural de
// cada línea del cuadro: cantidad+monto, monto solo y descuento negativo.
func TestAguasExtract_CargosPrincipales(t *testing.T) {
	res := NewAguasExtractor().Extract(aguasSampleText, "boleta.pdf")

	consumo := findCharge(t, res.Charges, "CONSUMO AGUA")
	assert.Equal(t, "40", consumo.Value.String())
	assert.Equal(t, UnitM3, consumo.ValueType)
	assert.Equal(t, 18464, consumo.Charge)

	// CARGO FIJO lleva unidad, no m3, aunque tenga dos valores
	fijo := findCharge(t, res.Charges, "CARGO FIJO")
	assert.Equal(t, UnitUnidad, fijo.ValueType)
	assert.Equal(t, 1049, fijo.Charge)

	// Monto solo: cantidad implícita 1
	iva := findCharge(t, res.Charges, "IVA (19%)")
	assert.Equal(t, "1", iva.Value.String())
	assert.Equal(t, UnitUnidad, iva.ValueType)
	assert.Equal(t, 23941, iva.Charge)

	// El descuento posterior a TOTAL VENTA conserva el signo
	descuento := findCharge(t, res.Charges, "DESCUENTO LEY REDONDEO")
	assert.Equal(t, -7, descuento.Charge)
}

// TestAguasExtract_TarifasUnitarias valida el cuadro "aguas informa":
// prefijo Tarifa, tipo $/unidad, charge 0 y las tarifas de corte fuera
// del cuadro sin duplicar.
func TestAguasExtract_TarifasUnitarias(t *testing.T) {
	res := NewAguasExtractor().Extract(aguasSampleText, "boleta.pdf")

	potable := findCharge(t, res.Charges, "Tarifa Agua Potable")
	assert.Equal(t, "594.81", potable.Value.String())
	assert.Equal(t, UnitRatePerUnit, potable.ValueType)
	assert.Equal(t, 0, potable.Charge)

	// El nombre que ya empieza con Tarifa no se duplica
	sobre := findCharge(t, res.Charges, "Tarifa Sobreconsumo")
	assert.Equal(t, "1200.5", sobre.Value.String())

	corte := findCharge(t, res.Charges, "Tarifa Corte o Reposición 1era instancia")
	assert.Equal(t, "9210", corte.Value.String())
	assert.Equal(t, UnitRatePerUnit, corte.ValueType)

	count := 0
	for _, c := range res.Charges {
		if c.Name == "Tarifa Corte o Reposición 1era instancia" {
			count++
		}
	}
	assert.Equal(t, 1, count, "la tarifa de corte no debe duplicarse")
}

// TestAguasExtract_DetalleConsumo valida las líneas informativas del
// detalle: lecturas sin fecha en el nombre, claves como texto y el
// último pago con fecha y monto.
func TestAguasExtract_DetalleConsumo(t *testing.T) {
	res := NewAguasExtractor().Extract(aguasSampleText, "boleta.pdf")

	actual := findCharge(t, res.Charges, "Lectura actual")
	assert.Equal(t, "1240", actual.Value.String())
	assert.Equal(t, UnitM3, actual.ValueType)
	assert.Equal(t, 0, actual.Charge)

	anterior := findCharge(t, res.Charges, "Lectura anterior")
	assert.Equal(t, "1200", anterior.Value.String())

	grupo := findCharge(t, res.Charges, "Grupo tarifario: G_1_TR")
	assert.Equal(t, "0", grupo.Value.String())
	assert.Equal(t, UnitCodigo, grupo.ValueType)

	proxima := findCharge(t, res.Charges, "Fecha próxima lectura: 01-OCT-2024")
	assert.Equal(t, UnitFecha, proxima.ValueType)

	pago := findCharge(t, res.Charges, "Último pago (05-AGO-2024)")
	assert.Equal(t, "120300", pago.Value.String())
	assert.Equal(t, UnitPesos, pago.ValueType)
	assert.Equal(t, 0, pago.Charge)
}

// TestAguasResolvePeriod_Offsets cubre la tabla de offsets: 1 mes para
// lectura actual/emisión, 2 para próxima lectura y vencimiento, con
// retroceso de año cuando el mes queda bajo enero.
func TestAguasResolvePeriod_Offsets(t *testing.T) {
	e := NewAguasExtractor()

	cases := []struct {
		name      string
		text      string
		wantMonth int
		wantYear  int
	}{
		{"lectura actual resta 1", "LECTURA ACTUAL 01-AGO-2024", 7, 2024},
		{"lectura actual enero retrocede año", "LECTURA ACTUAL 15-ENE-2024", 12, 2023},
		{"próxima lectura resta 2", "FECHA ESTIMADA PRÓXIMA LECTURA 05-ENE-2024", 11, 2023},
		{"vencimiento resta 2", "VENCIMIENTO 15-FEB-2024", 12, 2023},
		{"emisión resta 1", "FECHA EMISIÓN: 03-SEP-2024", 8, 2024},
		{"lectura en dd/mm/yyyy", "LECTURA ACTUAL 01/08/2024", 7, 2024},
		{"fallback mes y año", "Consumo correspondiente a Enero 2024", 12, 2023},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := e.resolvePeriod(tc.text)
			require.NotNil(t, p)
			assert.Equal(t, tc.wantMonth, p.Month)
			assert.Equal(t, tc.wantYear, p.Year)
		})
	}
}

// TestAguasResolvePeriod_SinFecha: sin patrón alguno el período queda
// ausente (nil), no en cero.
func TestAguasResolvePeriod_SinFecha(t *testing.T) {
	p := NewAguasExtractor().resolvePeriod("texto sin fechas ni meses")
	assert.Nil(t, p)
}

// TestAguasExtract_Idempotente: extraer dos veces el mismo texto produce
// exactamente el mismo resultado.
func TestAguasExtract_Idempotente(t *testing.T) {
	e := NewAguasExtractor()
	r1 := e.Extract(aguasSampleText, "boleta.pdf")
	r2 := e.Extract(aguasSampleText, "boleta.pdf")
	assert.Equal(t, r1, r2)
}

// TestAguasExtract_CamposAusentes: un texto sin los campos requeridos
// produce campos vacíos/nil, nunca defaults fabricados.
func TestAguasExtract_CamposAusentes(t *testing.T) {
	res := NewAguasExtractor().Extract("texto irrelevante sin estructura", "x.pdf")
	assert.Empty(t, res.ClientNumber)
	assert.Empty(t, res.InvoiceNumber)
	assert.Nil(t, res.Period)
	assert.Nil(t, res.TotalAmount)
	assert.Empty(t, res.Charges)
}
