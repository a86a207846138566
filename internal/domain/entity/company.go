package entity

import "time"

// CompanyStatus estado de aprobación de una cuenta business.
type CompanyStatus string

// Estados de Company. pending es el inicial; approved y rejected son terminales.
const (
	CompanyStatusPending  CompanyStatus = "pending"
	CompanyStatusApproved CompanyStatus = "approved"
	CompanyStatusRejected CompanyStatus = "rejected"
)

// IsTerminal informa si no existe transición posible desde el estado.
func (s CompanyStatus) IsTerminal() bool {
	return s == CompanyStatusApproved || s == CompanyStatusRejected
}

// Valid informa si el estado pertenece a la enumeración.
func (s CompanyStatus) Valid() bool {
	return s == CompanyStatusPending || s.IsTerminal()
}

// Company representa una cuenta business (restaurante) sujeta a aprobación.
type Company struct {
	ID                 string
	Name               string
	RegistrationNumber string
	Address            string
	Phone              string
	Email              string // contacto de la empresa; el del dueño vive en User
	Status             CompanyStatus
	RejectionReason    *string
	ApprovedAt         *time.Time // fecha de la decisión (aprobación o rechazo)
	ApprovedBy         *string    // ID del admin o "email-action"
	OwnerID            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsPending informa si la empresa espera decisión.
func (c *Company) IsPending() bool {
	return c.Status == CompanyStatusPending
}
