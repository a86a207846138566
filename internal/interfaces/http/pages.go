package http

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/domain"
)

//go:embed templates/*.html
var pagesFS embed.FS

var pageTemplates = template.Must(template.ParseFS(pagesFS, "templates/*.html"))

// Tipos de página de resultado.
const (
	kindSuccess = "success"
	kindInfo    = "info"
	kindError   = "error"
)

// resultPage documento que ve el administrador tras abrir un enlace.
type resultPage struct {
	Title    string
	Heading  string
	Message  string
	Kind     string
	AdminURL string
}

// confirmPage formulario de confirmación (rechazo, o aprobación si está configurada).
type confirmPage struct {
	Title              string
	Heading            string
	CompanyName        string
	RegistrationNumber string
	CompanyID          string
	Token              string
	PostURL            string
	AskReason          bool
	Submit             string
	AdminURL           string
}

// pages renderiza los documentos HTML de la puerta pública.
type pages struct {
	adminURL string
}

func (p pages) render(c *fiber.Ctx, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := pageTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.Status(status).Send(buf.Bytes())
}

func (p pages) result(c *fiber.Ctx, status int, kind, heading, message string) error {
	return p.render(c, status, "result", resultPage{
		Title:    heading,
		Heading:  heading,
		Message:  message,
		Kind:     kind,
		AdminURL: p.adminURL,
	})
}

func (p pages) confirm(c *fiber.Ctx, page confirmPage) error {
	page.AdminURL = p.adminURL
	return p.render(c, fiber.StatusOK, "confirm", page)
}

func (p pages) missingParameters(c *fiber.Ctx) error {
	return p.result(c, fiber.StatusBadRequest, kindError, "Missing parameters", "The link is incomplete. Open it again from the original email.")
}

// failure traduce un error del flujo a su documento y código HTTP.
func (p pages) failure(c *fiber.Ctx, err error) error {
	var ap *domain.AlreadyProcessedError
	switch {
	case errors.As(err, &ap):
		return p.result(c, fiber.StatusOK, kindInfo, "Already processed",
			fmt.Sprintf("This application was already processed (status: %s). No changes were made.", ap.Status))
	case errors.Is(err, domain.ErrAlreadyProcessed):
		return p.result(c, fiber.StatusOK, kindInfo, "Already processed", "This application was already processed. No changes were made.")
	case errors.Is(err, domain.ErrInvalidToken):
		return p.result(c, fiber.StatusUnauthorized, kindError, "Invalid link", domain.ErrInvalidToken.Error())
	case errors.Is(err, domain.ErrInvalidAction):
		return p.result(c, fiber.StatusBadRequest, kindError, "Invalid action", "The link action must be approve or reject.")
	case errors.Is(err, domain.ErrNotFound):
		return p.result(c, fiber.StatusNotFound, kindError, "Not found", "The company for this link no longer exists.")
	case errors.Is(err, domain.ErrEmailNotVerified):
		return p.result(c, fiber.StatusBadRequest, kindError, "Cannot approve yet", "The owner's email must be verified first.")
	case errors.Is(err, domain.ErrInvalidInput):
		return p.result(c, fiber.StatusBadRequest, kindError, "Invalid request",
			fmt.Sprintf("The rejection reason must be at most %d characters.", approval.MaxReasonLength))
	}
	return p.result(c, fiber.StatusInternalServerError, kindError, "Something went wrong", "The action could not be completed. Try again later.")
}
