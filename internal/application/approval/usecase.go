// Package approval implementa la máquina de estados de aprobación de cuentas business.
//
// Ambas puertas de entrada (panel admin y enlace firmado del email) terminan en Decide.
// La transición pending -> approved|rejected se persiste con una escritura condicional,
// así que dos peticiones simultáneas producen exactamente un estado terminal.
package approval

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/internal/domain/repository"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

// ActorEmailAction valor de approved_by cuando la decisión llega por enlace firmado.
const ActorEmailAction = "email-action"

// Notifier avisa al dueño el resultado. Best-effort: no devuelve error.
type Notifier interface {
	NotifyApproved(ctx context.Context, ownerEmail, companyName, ownerName string)
	NotifyRejected(ctx context.Context, ownerEmail, companyName, ownerName string, reason *string)
}

// UseCase aplica decisiones de aprobación sobre empresas pending.
type UseCase struct {
	companies repository.CompanyRepository
	users     repository.UserRepository
	notifier  Notifier
	now       func() time.Time
	log       *logger.Logger
}

// Option personaliza el UseCase.
type Option func(*UseCase)

// WithClock reemplaza la fuente de tiempo (tests).
func WithClock(now func() time.Time) Option {
	return func(uc *UseCase) { uc.now = now }
}

// NewUseCase construye el caso de uso con sus puertos.
func NewUseCase(companies repository.CompanyRepository, users repository.UserRepository, notifier Notifier, log *logger.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		companies: companies,
		users:     users,
		notifier:  notifier,
		now:       time.Now,
		log:       log.Named("approval"),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Approve aprueba la empresa en nombre de actor.
func (uc *UseCase) Approve(ctx context.Context, companyID, actor string) (*entity.Company, error) {
	return uc.Decide(ctx, companyID, actor, Approve{})
}

// Reject rechaza la empresa; un motivo vacío se guarda como nil.
func (uc *UseCase) Reject(ctx context.Context, companyID, actor string, reason *string) (*entity.Company, error) {
	return uc.Decide(ctx, companyID, actor, Reject{Reason: reason})
}

// Decide valida, persiste y notifica. Errores:
// domain.ErrNotFound, *domain.AlreadyProcessedError, domain.ErrEmailNotVerified o error de infraestructura.
func (uc *UseCase) Decide(ctx context.Context, companyID, actor string, d Decision) (*entity.Company, error) {
	if r, ok := d.(Reject); ok {
		if err := ValidateReason(r.Reason); err != nil {
			return nil, err
		}
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("cargar empresa %s: %w", companyID, err)
	}
	var owner *entity.User
	if company != nil {
		owner, err = uc.users.GetByID(ctx, company.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("cargar dueño de %s: %w", companyID, err)
		}
	}
	if err := CheckPreconditions(company, owner, d); err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	by := actor
	company.Status = d.TargetStatus()
	company.ApprovedAt = &now
	company.ApprovedBy = &by
	company.RejectionReason = nil
	if r, ok := d.(Reject); ok {
		company.RejectionReason = NormalizeReason(r.Reason)
	}
	company.UpdatedAt = now

	applied, err := uc.companies.UpdateDecision(ctx, company)
	if err != nil {
		return nil, fmt.Errorf("persistir decisión %s: %w", companyID, err)
	}
	if !applied {
		// Otra petición decidió entre la lectura y la escritura.
		current, err := uc.companies.GetByID(ctx, companyID)
		if err != nil {
			return nil, fmt.Errorf("releer empresa %s: %w", companyID, err)
		}
		status := string(d.TargetStatus())
		if current != nil {
			status = string(current.Status)
		}
		return nil, &domain.AlreadyProcessedError{Status: status}
	}

	uc.log.Info().
		Str("company_id", company.ID).
		Str("status", string(company.Status)).
		Str("actor", actor).
		Msg("solicitud business decidida")

	if owner == nil {
		uc.log.Warn().Str("company_id", company.ID).Msg("empresa sin dueño; no se notifica")
		return company, nil
	}
	switch company.Status {
	case entity.CompanyStatusApproved:
		uc.notifier.NotifyApproved(ctx, owner.Email, company.Name, owner.Name)
	case entity.CompanyStatusRejected:
		uc.notifier.NotifyRejected(ctx, owner.Email, company.Name, owner.Name, company.RejectionReason)
	}
	return company, nil
}

// Pending carga una empresa que aún espera decisión (página de confirmación).
func (uc *UseCase) Pending(ctx context.Context, companyID string) (*entity.Company, error) {
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("cargar empresa %s: %w", companyID, err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if !company.IsPending() {
		return nil, &domain.AlreadyProcessedError{Status: string(company.Status)}
	}
	return company, nil
}

// ListApplications lista solicitudes por estado; status vacío lista todas.
func (uc *UseCase) ListApplications(ctx context.Context, status entity.CompanyStatus, limit, offset int) ([]*entity.Company, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, status)
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.companies.ListByStatus(ctx, status, limit, offset)
}
