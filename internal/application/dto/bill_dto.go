package dto

import "github.com/shopspring/decimal"

// BillQuery filtros del listado de boletas. StartDate/EndDate acotan por
// período en formato YYYY-MM y solo aplican si vienen ambos.
type BillQuery struct {
	ClientNumber string `query:"client_number"`
	MeterType    string `query:"meter_type"`
	Month        int    `query:"month"`
	Year         int    `query:"year"`
	StartDate    string `query:"start_date"`
	EndDate      string `query:"end_date"`
}

// UpdateBillRequest edición parcial de boleta.
type UpdateBillRequest struct {
	Month         *int             `json:"month"`
	Year          *int             `json:"year"`
	TotalToPay    *decimal.Decimal `json:"total_to_pay"`
	InvoiceNumber *string          `json:"invoice_number"`
	Tariff        *string          `json:"tariff"`
}

// ChargeResponse cargo itemizado de una boleta.
type ChargeResponse struct {
	ID        string          `json:"id"`
	BillID    string          `json:"bill_id"`
	Name      string          `json:"name"`
	Value     decimal.Decimal `json:"value"`
	ValueType string          `json:"value_type"`
	Charge    int             `json:"charge"`
}

// BillResponse boleta con su medidor embebido.
type BillResponse struct {
	ID            string          `json:"id"`
	Meter         MeterResponse   `json:"meter"`
	Month         int             `json:"month"`
	Year          int             `json:"year"`
	TotalToPay    decimal.Decimal `json:"total_to_pay"`
	InvoiceNumber string          `json:"invoice_number"`
	Tariff        string          `json:"tariff,omitempty"`
	PDFFilename   string          `json:"pdf_filename,omitempty"`
}

// BillListResponse envoltorio del listado.
type BillListResponse struct {
	Results []BillResponse `json:"results"`
	Count   int            `json:"count"`
}
