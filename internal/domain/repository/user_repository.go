package repository

import "github.com/tu-usuario/sicea-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
// GetByEmail y GetByID devuelven (nil, nil) si el usuario no existe.
type UserRepository interface {
	Create(user *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	GetByID(id string) (*entity.User, error)
}
