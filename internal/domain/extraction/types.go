package extraction

import "github.com/shopspring/decimal"

// Provider identifica la familia de boleta detectada.
type Provider string

const (
	ProviderAguas   Provider = "aguas"
	ProviderEnel    Provider = "enel"
	ProviderUnknown Provider = "unknown"
)

// Etiquetas de unidad convencionales para Charge.ValueType. El conjunto es
// abierto: los extractores pueden producir otras etiquetas (mm, factor, ...).
const (
	UnitM3          = "m3"
	UnitKWh         = "kWh"
	UnitKW          = "kW"
	UnitUnidad      = "unidad"
	UnitRatePerUnit = "$/unidad"
	UnitCodigo      = "código"
	UnitFecha       = "fecha"
	UnitNumero      = "número"
	UnitPesos       = "$"
)

// Charge es una línea de cargo extraída de la boleta. Value es la cantidad
// (consumo, tarifa o 1 para cargos planos), ValueType su unidad y Charge el
// monto en pesos enteros (0 para líneas informativas; negativo en descuentos).
type Charge struct {
	Name      string
	Value     decimal.Decimal
	ValueType string
	Charge    int
}

// Period es el período de facturación canónico (mes, año) de una boleta.
type Period struct {
	Month int // 1..12
	Year  int
}

// Result es el registro completo producido al procesar un documento.
// Los campos no extraídos quedan en su valor cero (string vacío, puntero nil):
// la validación de campos obligatorios es responsabilidad de la capa de
// aplicación, no de la extracción.
type Result struct {
	File          string
	Provider      Provider
	InvoiceNumber string
	ClientNumber  string
	Period        *Period // nil = período no resuelto
	TotalAmount   *decimal.Decimal
	Tariff        string // Solo Enel
	Charges       []Charge
}
