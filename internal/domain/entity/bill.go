package entity

import "github.com/shopspring/decimal"

// Bill representa una boleta: un período de facturación de un medidor.
// (MeterID, Month, Year) es único: a lo más una boleta por medidor y mes calendario.
type Bill struct {
	ID            string
	MeterID       string
	Month         int // 1..12
	Year          int
	TotalToPay    decimal.Decimal
	InvoiceNumber string // N° de factura/boleta electrónica; puede venir vacío
	Tariff        string // Solo electricidad (ej. "AT43 AREA 1 S Caso 3 (a)")
	PDFFilename   string // Nombre del archivo en storage; vacío si no se guardó
}

// Validar verifica los campos obligatorios de la boleta.
func (b *Bill) Validar() bool {
	return b.MeterID != "" && b.Month >= 1 && b.Month <= 12 && b.Year > 0
}
