package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrUserNotFound  = errors.New("usuario no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrInvalidAction = errors.New("acción inválida")

	// ErrInvalidToken se reporta igual para token incorrecto y empresa desconocida:
	// no debe servir de oráculo de enumeración.
	ErrInvalidToken = errors.New("invalid or expired link")

	// ErrPrecondition agrupa los fallos de estado (ya procesada, email sin verificar).
	ErrPrecondition     = errors.New("precondición no cumplida")
	ErrAlreadyProcessed = fmt.Errorf("%w: already processed", ErrPrecondition)
	ErrEmailNotVerified = fmt.Errorf("%w: email must be verified first", ErrPrecondition)
)

// AlreadyProcessedError indica que la empresa ya salió de pending.
// Coincide con errors.Is(err, ErrAlreadyProcessed) y errors.Is(err, ErrPrecondition).
type AlreadyProcessedError struct {
	Status string
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("already processed (status=%s)", e.Status)
}

func (e *AlreadyProcessedError) Is(target error) bool {
	return target == ErrAlreadyProcessed || target == ErrPrecondition
}
