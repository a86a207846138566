package approval

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/Recetario-api/internal/domain"

	"github.com/jhoicas/Recetario-api/internal/domain/entity"
)

// Decision resultado que un administrador aplica a una solicitud pending.
// Solo Approve y Reject la implementan.
type Decision interface {
	TargetStatus() entity.CompanyStatus
	decision()
}

// Approve aprueba la cuenta business. No lleva motivo.
type Approve struct{}

// Reject rechaza la cuenta business con un motivo opcional.
type Reject struct {
	Reason *string
}

func (Approve) TargetStatus() entity.CompanyStatus { return entity.CompanyStatusApproved }
func (Reject) TargetStatus() entity.CompanyStatus  { return entity.CompanyStatusRejected }

func (Approve) decision() {}
func (Reject) decision()  {}

// MaxReasonLength máximo de caracteres del motivo de rechazo.
const MaxReasonLength = 2000

// ValidateReason rechaza motivos de más de MaxReasonLength caracteres.
func ValidateReason(s *string) error {
	if s != nil && utf8.RuneCountInString(*s) > MaxReasonLength {
		return fmt.Errorf("%w: el motivo supera %d caracteres", domain.ErrInvalidInput, MaxReasonLength)
	}
	return nil
}

// NormalizeReason convierte un motivo vacío o solo espacios en nil; el resto se guarda tal cual.
func NormalizeReason(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := *s
	return &v
}
