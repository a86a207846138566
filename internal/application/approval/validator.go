package approval

import (
	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
)

// CheckPreconditions valida que la decisión pueda aplicarse. Orden de las reglas:
// empresa inexistente, empresa ya decidida y, solo al aprobar, email del dueño sin verificar.
func CheckPreconditions(company *entity.Company, owner *entity.User, d Decision) error {
	if company == nil {
		return domain.ErrNotFound
	}
	if !company.IsPending() {
		return &domain.AlreadyProcessedError{Status: string(company.Status)}
	}
	if _, ok := d.(Approve); ok {
		if owner == nil || !owner.EmailVerified {
			return domain.ErrEmailNotVerified
		}
	}
	return nil
}
