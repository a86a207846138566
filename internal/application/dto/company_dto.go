package dto

import (
	"time"

	"github.com/jhoicas/Recetario-api/internal/domain/entity"
)

// DecideBusinessApplicationRequest cuerpo de POST /admin/business-applications.
type DecideBusinessApplicationRequest struct {
	CompanyID       string  `json:"companyId"`
	Status          string  `json:"status"` // approved | rejected
	RejectionReason *string `json:"rejectionReason,omitempty"`
}

// CompanyResponse salida de una empresa para el panel admin.
type CompanyResponse struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	RegistrationNumber string     `json:"registrationNumber"`
	Address            string     `json:"address"`
	Phone              string     `json:"phone"`
	Email              string     `json:"email"`
	Status             string     `json:"status"`
	RejectionReason    *string    `json:"rejectionReason"`
	ApprovedAt         *time.Time `json:"approvedAt"`
	ApprovedBy         *string    `json:"approvedBy"`
	OwnerID            string     `json:"ownerId"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

// BusinessApplicationResponse respuesta de una decisión aplicada.
type BusinessApplicationResponse struct {
	Company CompanyResponse `json:"company"`
}

// BusinessApplicationListResponse lista paginada de solicitudes.
type BusinessApplicationListResponse struct {
	Items []CompanyResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// NewCompanyResponse convierte la entidad a su representación JSON.
func NewCompanyResponse(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:                 c.ID,
		Name:               c.Name,
		RegistrationNumber: c.RegistrationNumber,
		Address:            c.Address,
		Phone:              c.Phone,
		Email:              c.Email,
		Status:             string(c.Status),
		RejectionReason:    c.RejectionReason,
		ApprovedAt:         c.ApprovedAt,
		ApprovedBy:         c.ApprovedBy,
		OwnerID:            c.OwnerID,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
