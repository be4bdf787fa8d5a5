package entity

import "github.com/shopspring/decimal"

// Charge es un componente itemizado de una boleta. Name es texto libre
// (no hay enumeración cerrada de cargos) y ValueType etiqueta la unidad
// de Value: m3, kWh, kW, unidad, $/unidad, código, fecha, número, $...
// Charge es el monto en pesos enteros; 0 para líneas puramente informativas.
type Charge struct {
	ID        string
	BillID    string
	Name      string
	Value     decimal.Decimal
	ValueType string
	Charge    int
}
