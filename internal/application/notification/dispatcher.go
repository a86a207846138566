// Package notification envía los emails de resultado del flujo de aprobación.
//
// NotifyApproved y NotifyRejected son best-effort: el fallo se registra y se descarta.
// Nunca deshacen una transición ya persistida ni llegan al caller, que ya recibió éxito.
package notification

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/jhoicas/Recetario-api/internal/application/ports"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

//go:embed templates/emails.html templates/emails.txt
var templatesFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.ParseFS(templatesFS, "templates/emails.html"))
	textTemplates = texttemplate.Must(texttemplate.ParseFS(templatesFS, "templates/emails.txt"))
)

// DefaultTimeout tiempo máximo de un envío, reintentos incluidos.
const DefaultTimeout = 20 * time.Second

// Config datos de presentación de los emails.
type Config struct {
	AppName  string
	LoginURL string
	Timeout  time.Duration
}

// NewApplication datos del aviso de nueva solicitud para el administrador.
type NewApplication struct {
	CompanyName        string
	RegistrationNumber string
	OwnerName          string
	OwnerEmail         string
	OwnerEmailVerified bool
	ApproveURL         string
	RejectURL          string
}

// Dispatcher compone y entrega los emails del flujo de aprobación.
type Dispatcher struct {
	mailer ports.Mailer
	cfg    Config
	log    *logger.Logger
}

// NewDispatcher construye el dispatcher sobre un Mailer.
func NewDispatcher(mailer ports.Mailer, cfg Config, log *logger.Logger) *Dispatcher {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.AppName == "" {
		cfg.AppName = "Recetario"
	}
	return &Dispatcher{mailer: mailer, cfg: cfg, log: log.Named("notification")}
}

// NotifyApproved avisa al dueño que su cuenta business fue aprobada.
func (d *Dispatcher) NotifyApproved(ctx context.Context, ownerEmail, companyName, ownerName string) {
	data := map[string]any{
		"AppName":     d.cfg.AppName,
		"LoginURL":    d.cfg.LoginURL,
		"OwnerName":   ownerName,
		"CompanyName": companyName,
	}
	subject := fmt.Sprintf("%s: your business account is approved", companyName)
	d.deliver(ctx, "approved", ownerEmail, subject, data)
}

// NotifyRejected avisa al dueño el rechazo; el motivo, si existe, va tal cual.
func (d *Dispatcher) NotifyRejected(ctx context.Context, ownerEmail, companyName, ownerName string, reason *string) {
	data := map[string]any{
		"AppName":     d.cfg.AppName,
		"OwnerName":   ownerName,
		"CompanyName": companyName,
		"Reason":      "",
	}
	if reason != nil {
		data["Reason"] = *reason
	}
	subject := fmt.Sprintf("%s: business account application update", companyName)
	d.deliver(ctx, "rejected", ownerEmail, subject, data)
}

// NotifyNewApplication envía al administrador los enlaces firmados de aprobar/rechazar.
// A diferencia de los avisos de resultado, devuelve el error: lo usa un operador.
func (d *Dispatcher) NotifyNewApplication(ctx context.Context, adminEmail string, app NewApplication) error {
	msg, err := render("new_application", adminEmail,
		fmt.Sprintf("New business account pending approval: %s", app.CompanyName), app)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, d.cfg.Timeout)
	defer cancel()
	if err := d.mailer.Send(ctx, msg); err != nil {
		return fmt.Errorf("enviar aviso de nueva solicitud: %w", err)
	}
	return nil
}

// deliver renderiza y envía; cualquier fallo queda solo en el log.
func (d *Dispatcher) deliver(ctx context.Context, name, to, subject string, data any) {
	msg, err := render(name, to, subject, data)
	if err != nil {
		d.log.Error().Err(err).Str("template", name).Msg("no se pudo renderizar la notificación")
		return
	}

	// La petición HTTP puede cancelarse; la notificación de una transición ya confirmada no.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), d.cfg.Timeout)
	defer cancel()

	if err := d.mailer.Send(ctx, msg); err != nil {
		d.log.Error().Err(err).
			Str("template", name).
			Str("to", to).
			Msg("notificación no entregada; el cambio de estado se mantiene")
		return
	}
	d.log.Info().Str("template", name).Str("to", to).Msg("notificación enviada")
}

func render(name, to, subject string, data any) (ports.EmailMessage, error) {
	var html, text bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&html, name, data); err != nil {
		return ports.EmailMessage{}, fmt.Errorf("render html %s: %w", name, err)
	}
	if err := textTemplates.ExecuteTemplate(&text, name, data); err != nil {
		return ports.EmailMessage{}, fmt.Errorf("render text %s: %w", name, err)
	}
	return ports.EmailMessage{
		To:       []string{to},
		Subject:  subject,
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}
