package dto

// CreateMeterRequest alta manual de medidor.
type CreateMeterRequest struct {
	Name         string `json:"name"`
	ClientNumber string `json:"client_number"`
	MeterType    string `json:"meter_type"`
	Coverage     string `json:"coverage"`
	Macrozone    string `json:"macrozona"`
	Installation string `json:"instalacion"`
	Address      string `json:"direccion"`
}

// UpdateMeterRequest edición parcial de medidor.
type UpdateMeterRequest struct {
	Name         *string `json:"name"`
	MeterType    *string `json:"meter_type"`
	Coverage     *string `json:"coverage"`
	Macrozone    *string `json:"macrozona"`
	Installation *string `json:"instalacion"`
	Address      *string `json:"direccion"`
}

// MeterResponse medidor serializado.
type MeterResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	ClientNumber string `json:"client_number"`
	MeterType    string `json:"meter_type"`
	Coverage     string `json:"coverage"`
	Macrozone    string `json:"macrozona"`
	Installation string `json:"instalacion"`
	Address      string `json:"direccion"`
}
