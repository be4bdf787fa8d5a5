package repository

import "github.com/tu-usuario/sicea-api/internal/domain/entity"

// BillFilter filtros opcionales para listar boletas. StartPeriod/EndPeriod
// acotan por período absoluto en meses (year*12 + month); 0 = sin límite.
type BillFilter struct {
	ClientNumber string
	MeterType    string
	Month        int
	Year         int
	StartPeriod  int
	EndPeriod    int
}

// BillRepository define el puerto de persistencia para Bill.
// GetByID y GetByMeterAndPeriod devuelven (nil, nil) si la boleta no existe.
type BillRepository interface {
	Create(bill *entity.Bill) error
	GetByID(id string) (*entity.Bill, error)
	GetByMeterAndPeriod(meterID string, month, year int) (*entity.Bill, error)
	// Exists es la consulta de solo lectura que usa el validador de lotes.
	Exists(meterID string, month, year int) (bool, error)
	List(filter BillFilter) ([]*entity.Bill, error)
	Update(bill *entity.Bill) error
	Delete(id string) error
}
