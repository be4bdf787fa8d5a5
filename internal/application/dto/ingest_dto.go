package dto

import "github.com/shopspring/decimal"

// Estados de procesamiento de un documento del lote.
const (
	ProcessStatusOK    = "procesado"
	ProcessStatusError = "error"
)

// ProcessResult resultado por documento de POST process-bills.
type ProcessResult struct {
	File         string           `json:"file"`
	Status       string           `json:"status"`
	ClientNumber string           `json:"client_number,omitempty"`
	Month        int              `json:"month,omitempty"`
	Year         int              `json:"year,omitempty"`
	TotalAmount  *decimal.Decimal `json:"total_amount,omitempty"`
	Error        string           `json:"error,omitempty"`
}

// Estados de validación de un documento del lote.
const (
	ValidateStatusCorrect    = "correct"
	ValidateStatusDuplicated = "duplicated"
	ValidateStatusInDB       = "in_db"
	ValidateStatusNotFound   = "not_found"
	ValidateStatusInvalid    = "invalid"
)

// ValidateResult resultado por documento de POST validate-batch-bills.
type ValidateResult struct {
	File   string `json:"file"`
	Status string `json:"status"`
	Detail string `json:"detail"`
	Meter  string `json:"meter,omitempty"`
}

// ProcessBatchResponse envoltorio de POST process-bills.
type ProcessBatchResponse struct {
	Results []ProcessResult `json:"results"`
}

// ValidateBatchResponse envoltorio de POST validate-batch-bills.
type ValidateBatchResponse struct {
	Results []ValidateResult `json:"results"`
}
