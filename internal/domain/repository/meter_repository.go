package repository

import "github.com/tu-usuario/sicea-api/internal/domain/entity"

// MeterRepository define el puerto de persistencia para Meter.
// GetByClientNumber y GetByID devuelven (nil, nil) si el medidor no existe.
type MeterRepository interface {
	Create(meter *entity.Meter) error
	// GetOrCreate busca por número de cliente y crea el medidor con los
	// defaults si no existe. Debe ser idempotente: cargas concurrentes del
	// mismo cliente no pueden producir medidores duplicados.
	GetOrCreate(clientNumber string, defaults *entity.Meter) (*entity.Meter, error)
	GetByID(id string) (*entity.Meter, error)
	GetByClientNumber(clientNumber string) (*entity.Meter, error)
	List() ([]*entity.Meter, error)
	Update(meter *entity.Meter) error
	Delete(id string) error
}
