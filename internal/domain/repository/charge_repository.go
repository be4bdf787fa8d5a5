package repository

import "github.com/tu-usuario/sicea-api/internal/domain/entity"

// ChargeRepository define el puerto de persistencia para Charge.
// Los cargos son append-only por boleta: nunca se actualizan en sitio.
type ChargeRepository interface {
	Create(charge *entity.Charge) error
	ListByBill(billID string) ([]*entity.Charge, error)
	DeleteByBill(billID string) error
}
