package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/application/dto"
	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

// BusinessApplicationHandler acciones del panel admin sobre solicitudes business.
type BusinessApplicationHandler struct {
	uc  *approval.UseCase
	log *logger.Logger
}

// NewBusinessApplicationHandler construye el handler inyectando el caso de uso.
func NewBusinessApplicationHandler(uc *approval.UseCase, log *logger.Logger) *BusinessApplicationHandler {
	return &BusinessApplicationHandler{uc: uc, log: log}
}

// Decide godoc
// @Summary      Aprobar o rechazar una cuenta business
// @Tags         business-applications
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DecideBusinessApplicationRequest  true  "companyId, status, rejectionReason"
// @Success      200   {object}  dto.BusinessApplicationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /admin/business-applications [post]
func (h *BusinessApplicationHandler) Decide(c *fiber.Ctx) error {
	var in dto.DecideBusinessApplicationRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cuerpo inválido"})
	}
	in.CompanyID = strings.TrimSpace(in.CompanyID)
	if in.CompanyID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "companyId es requerido"})
	}
	if _, err := uuid.Parse(in.CompanyID); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "companyId debe ser un UUID"})
	}

	var d approval.Decision
	switch entity.CompanyStatus(in.Status) {
	case entity.CompanyStatusApproved:
		if in.RejectionReason != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "rejectionReason solo aplica con status rejected"})
		}
		d = approval.Approve{}
	case entity.CompanyStatusRejected:
		d = approval.Reject{Reason: in.RejectionReason}
	default:
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser approved o rejected"})
	}

	company, err := h.uc.Decide(c.UserContext(), in.CompanyID, GetUserID(c), d)
	if err != nil {
		return h.writeError(c, in.CompanyID, err)
	}
	return c.JSON(dto.BusinessApplicationResponse{Company: dto.NewCompanyResponse(company)})
}

// List godoc
// @Summary      Listar solicitudes business
// @Tags         business-applications
// @Produce      json
// @Security     BearerAuth
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.BusinessApplicationListResponse
// @Failure      400     {object}  dto.ErrorResponse
// @Router       /admin/business-applications [get]
func (h *BusinessApplicationHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "limit y offset deben ser enteros"})
	}
	page.DefaultPage()

	list, err := h.uc.ListApplications(c.UserContext(), entity.CompanyStatus(c.Query("status")), page.Limit, page.Offset)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "status debe ser pending, approved o rejected"})
		}
		h.log.Error().Err(err).Msg("listar solicitudes business")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, co := range list {
		items = append(items, dto.NewCompanyResponse(co))
	}
	return c.JSON(dto.BusinessApplicationListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	})
}

func (h *BusinessApplicationHandler) writeError(c *fiber.Ctx, companyID string, err error) error {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "empresa no encontrada"})
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "ALREADY_PROCESSED", Message: "la solicitud ya fue procesada: " + err.Error()})
	case errors.Is(err, domain.ErrEmailNotVerified):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMAIL_NOT_VERIFIED", Message: "el dueño debe verificar su email antes de aprobar"})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	}
	h.log.Error().Err(err).Str("company_id", companyID).Msg("decidir solicitud business")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
