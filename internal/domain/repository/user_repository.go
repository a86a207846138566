package repository

import (
	"context"

	"github.com/jhoicas/Recetario-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// El flujo de aprobación solo lee; Create existe para el seed y el registro.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
