package http

import (
	"errors"
	"net/http"

	"filippo.io/csrf"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/uuid"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/pkg/actiontoken"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

// EmailActionConfig comportamiento de la puerta pública.
type EmailActionConfig struct {
	// ConfirmApprove hace que approve muestre un formulario igual que reject en vez de aplicar al abrir el enlace.
	ConfirmApprove bool
	AdminURL       string
}

// EmailActionHandler atiende los enlaces firmados que recibe el administrador por email.
// No hay sesión: la única credencial es el token de acción.
type EmailActionHandler struct {
	uc     *approval.UseCase
	tokens *actiontoken.Authority
	cfg    EmailActionConfig
	pages  pages
	log    *logger.Logger
}

// NewEmailActionHandler construye el handler público.
func NewEmailActionHandler(uc *approval.UseCase, tokens *actiontoken.Authority, cfg EmailActionConfig, log *logger.Logger) *EmailActionHandler {
	return &EmailActionHandler{
		uc:     uc,
		tokens: tokens,
		cfg:    cfg,
		pages:  pages{adminURL: cfg.AdminURL},
		log:    log.Named("email-action"),
	}
}

// Open godoc
// @Summary      Abrir enlace de aprobación/rechazo
// @Tags         business-applications
// @Produce      html
// @Param        companyId  query  string  true  "ID de la empresa"
// @Param        action     query  string  true  "approve | reject"
// @Param        token      query  string  true  "token firmado"
// @Success      200
// @Failure      400
// @Failure      401
// @Failure      404
// @Router       /business-applications/action [get]
func (h *EmailActionHandler) Open(c *fiber.Ctx) error {
	// Escáneres de enlaces y gateways de correo hacen HEAD: nunca aplica una transición.
	if c.Method() == fiber.MethodHead {
		return c.SendStatus(fiber.StatusOK)
	}
	companyID, rawAction, token := c.Query("companyId"), c.Query("action"), c.Query("token")
	if companyID == "" || rawAction == "" || token == "" {
		return h.pages.missingParameters(c)
	}
	action, err := entity.ParseAction(rawAction)
	if err != nil {
		return h.pages.failure(c, domain.ErrInvalidAction)
	}
	if !h.authorized(companyID, action, token) {
		h.log.Warn().Str("company_id", companyID).Str("action", string(action)).Msg("token de acción inválido")
		return h.pages.failure(c, domain.ErrInvalidToken)
	}

	if action == entity.ActionReject || h.cfg.ConfirmApprove {
		company, err := h.uc.Pending(c.UserContext(), companyID)
		if err != nil {
			return h.fail(c, companyID, err)
		}
		return h.pages.confirm(c, confirmFor(action, company, token))
	}

	if _, err := h.uc.Approve(c.UserContext(), companyID, approval.ActorEmailAction); err != nil {
		return h.fail(c, companyID, err)
	}
	return h.pages.result(c, fiber.StatusOK, kindSuccess, "Business account approved", "The business account was approved and the owner has been notified.")
}

// SubmitReject godoc
// @Summary      Confirmar rechazo desde el formulario
// @Tags         business-applications
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        companyId  formData  string  true   "ID de la empresa"
// @Param        token      formData  string  true   "token firmado para reject"
// @Param        reason     formData  string  false  "motivo"
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /business-applications/action/reject [post]
func (h *EmailActionHandler) SubmitReject(c *fiber.Ctx) error {
	companyID, token := c.FormValue("companyId"), c.FormValue("token")
	if companyID == "" || token == "" {
		return h.pages.missingParameters(c)
	}
	if !h.authorized(companyID, entity.ActionReject, token) {
		h.log.Warn().Str("company_id", companyID).Msg("token de rechazo inválido")
		return h.pages.failure(c, domain.ErrInvalidToken)
	}
	reason := c.FormValue("reason")
	if _, err := h.uc.Reject(c.UserContext(), companyID, approval.ActorEmailAction, &reason); err != nil {
		return h.fail(c, companyID, err)
	}
	return h.pages.result(c, fiber.StatusOK, kindSuccess, "Business account rejected", "The application was rejected and the owner has been notified.")
}

// SubmitApprove godoc
// @Summary      Confirmar aprobación desde el formulario
// @Tags         business-applications
// @Accept       x-www-form-urlencoded
// @Produce      html
// @Param        companyId  formData  string  true  "ID de la empresa"
// @Param        token      formData  string  true  "token firmado para approve"
// @Success      200
// @Failure      400
// @Failure      401
// @Router       /business-applications/action/approve [post]
func (h *EmailActionHandler) SubmitApprove(c *fiber.Ctx) error {
	companyID, token := c.FormValue("companyId"), c.FormValue("token")
	if companyID == "" || token == "" {
		return h.pages.missingParameters(c)
	}
	if !h.authorized(companyID, entity.ActionApprove, token) {
		h.log.Warn().Str("company_id", companyID).Msg("token de aprobación inválido")
		return h.pages.failure(c, domain.ErrInvalidToken)
	}
	if _, err := h.uc.Approve(c.UserContext(), companyID, approval.ActorEmailAction); err != nil {
		return h.fail(c, companyID, err)
	}
	return h.pages.result(c, fiber.StatusOK, kindSuccess, "Business account approved", "The business account was approved and the owner has been notified.")
}

// CrossOriginProtection rechaza POST cross-site a los formularios (Sec-Fetch-Site / Origin).
func (h *EmailActionHandler) CrossOriginProtection() fiber.Handler {
	protection := csrf.New()
	deny := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h.log.Warn().Str("origin", r.Header.Get("Origin")).Str("path", r.URL.Path).Msg("formulario cross-origin rechazado")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusForbidden)
		_ = pageTemplates.ExecuteTemplate(w, "result", resultPage{
			Title:    "Request blocked",
			Heading:  "Request blocked",
			Message:  "The form must be submitted from this site.",
			Kind:     kindError,
			AdminURL: h.cfg.AdminURL,
		})
	})
	return adaptor.HTTPMiddleware(func(next http.Handler) http.Handler {
		return protection.HandlerWithFailHandler(next, deny)
	})
}

// authorized un companyId que no es UUID nunca pudo ser firmado por nosotros.
func (h *EmailActionHandler) authorized(companyID string, action entity.Action, token string) bool {
	if _, err := uuid.Parse(companyID); err != nil {
		return false
	}
	return h.tokens.Verify(companyID, action, token)
}

func (h *EmailActionHandler) fail(c *fiber.Ctx, companyID string, err error) error {
	var ap *domain.AlreadyProcessedError
	switch {
	case errors.As(err, &ap):
		h.log.Info().Str("company_id", companyID).Str("status", ap.Status).Msg("enlace de solicitud ya procesada")
	case errors.Is(err, domain.ErrPrecondition), errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrInvalidInput):
		h.log.Info().Err(err).Str("company_id", companyID).Msg("acción por email rechazada")
	default:
		h.log.Error().Err(err).Str("company_id", companyID).Msg("acción por email")
	}
	return h.pages.failure(c, err)
}

func confirmFor(action entity.Action, company *entity.Company, token string) confirmPage {
	page := confirmPage{
		CompanyName:        company.Name,
		RegistrationNumber: company.RegistrationNumber,
		CompanyID:          company.ID,
		Token:              token,
	}
	if action == entity.ActionReject {
		page.Title = "Reject business account"
		page.Heading = "Reject business account"
		page.PostURL = approval.ActionPath + "/reject"
		page.AskReason = true
		page.Submit = "Reject"
		return page
	}
	page.Title = "Approve business account"
	page.Heading = "Approve business account"
	page.PostURL = approval.ActionPath + "/approve"
	page.Submit = "Approve"
	return page
}
