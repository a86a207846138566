package repository

import (
	"context"

	"github.com/jhoicas/Recetario-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	// GetByID devuelve (nil, nil) si la empresa no existe.
	GetByID(ctx context.Context, id string) (*entity.Company, error)
	// UpdateDecision persiste status, rejection_reason, approved_at y approved_by
	// solo si la fila sigue en pending. Devuelve false si otra petición ganó.
	UpdateDecision(ctx context.Context, company *entity.Company) (bool, error)
	ListByStatus(ctx context.Context, status entity.CompanyStatus, limit, offset int) ([]*entity.Company, error)
}
