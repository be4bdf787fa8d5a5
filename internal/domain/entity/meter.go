package entity

// Tipos de medidor.
const (
	MeterTypeElectricity = "ELECTRICITY"
	MeterTypeWater       = "WATER"
)

// Meter representa una conexión física de suministro (luz o agua).
// ClientNumber es la clave natural: único por medidor y es lo que
// aparece impreso en las boletas del proveedor.
type Meter struct {
	ID           string
	Name         string
	ClientNumber string
	MeterType    string // ELECTRICITY | WATER
	Coverage     string // Etiqueta libre del área de cobertura/servicio
	Macrozone    string // Macrozona para reportes; vacío en medidores autocreados
	Installation string // Identificador de la instalación física
	Address      string // Dirección del suministro
}

// Validar verifica los campos obligatorios del medidor.
func (m *Meter) Validar() bool {
	if m.ClientNumber == "" || m.Name == "" {
		return false
	}
	return m.MeterType == MeterTypeElectricity || m.MeterType == MeterTypeWater
}
