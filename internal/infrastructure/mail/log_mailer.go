// Package mail implementa el canal de email transaccional (SMTP y modo log).
package mail

import (
	"context"
	"strings"

	"github.com/jhoicas/Recetario-api/internal/application/ports"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

var _ ports.Mailer = (*LogMailer)(nil)

// LogMailer no envía nada: escribe el mensaje en el log. Se usa cuando SMTP_HOST está vacío.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el mailer de desarrollo.
func NewLogMailer(log *logger.Logger) *LogMailer {
	return &LogMailer{log: log.Named("mail-log")}
}

// Send registra destinatarios y asunto (info) y el cuerpo (debug).
func (m *LogMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	m.log.Info().
		Str("to", strings.Join(msg.To, ",")).
		Str("subject", msg.Subject).
		Msg("[DEV] email no enviado (SMTP_HOST vacío)")
	m.log.Debug().Str("body", msg.TextBody).Msg("[DEV] cuerpo del email")
	return nil
}
