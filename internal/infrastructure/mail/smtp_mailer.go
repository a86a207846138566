package mail

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"gopkg.in/gomail.v2"

	"github.com/jhoicas/Recetario-api/internal/application/ports"
	"github.com/jhoicas/Recetario-api/pkg/config"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// ErrNoRecipients el mensaje no tiene destinatarios; no se reintenta.
var ErrNoRecipients = errors.New("mail: mensaje sin destinatarios")

// Sender es lo que el mailer necesita del cliente SMTP (lo cumple *gomail.Dialer).
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer envía emails por SMTP con reintentos exponenciales.
type SMTPMailer struct {
	sender     Sender
	from       string
	maxTries   uint
	newBackOff func() backoff.BackOff
	log        *logger.Logger
}

// Option personaliza el SMTPMailer.
type Option func(*SMTPMailer)

// WithSender reemplaza el cliente SMTP (tests).
func WithSender(s Sender) Option {
	return func(m *SMTPMailer) { m.sender = s }
}

// WithBackOff reemplaza la política de espera entre intentos.
func WithBackOff(f func() backoff.BackOff) Option {
	return func(m *SMTPMailer) { m.newBackOff = f }
}

// NewSMTPMailer construye el mailer a partir de la configuración SMTP.
func NewSMTPMailer(cfg config.SMTPConfig, log *logger.Logger, opts ...Option) *SMTPMailer {
	tries := cfg.MaxTries
	if tries < 1 {
		tries = 1
	}
	m := &SMTPMailer{
		sender:   gomail.NewDialer(cfg.Host, cfg.Port, cfg.User, cfg.Password),
		from:     cfg.From,
		maxTries: uint(tries),
		newBackOff: func() backoff.BackOff {
			b := backoff.NewExponentialBackOff()
			b.InitialInterval = 500 * time.Millisecond
			b.MaxInterval = 5 * time.Second
			return b
		},
		log: log.Named("smtp"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Send construye el mensaje MIME y lo entrega, reintentando fallos transitorios.
func (m *SMTPMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}
	gm := m.build(msg)

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		if err := m.sender.DialAndSend(gm); err != nil {
			m.log.Warn().Err(err).
				Int("attempt", attempt).
				Str("subject", msg.Subject).
				Msg("envío SMTP fallido")
			return struct{}{}, err
		}
		return struct{}{}, nil
	},
		backoff.WithBackOff(m.newBackOff()),
		backoff.WithMaxTries(m.maxTries),
	)
	if err != nil {
		return fmt.Errorf("smtp send (%d intentos): %w", attempt, err)
	}
	return nil
}

func (m *SMTPMailer) build(msg ports.EmailMessage) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", msg.To...)
	gm.SetHeader("Subject", msg.Subject)
	if msg.TextBody != "" {
		gm.SetBody("text/plain", msg.TextBody)
		if msg.HTMLBody != "" {
			gm.AddAlternative("text/html", msg.HTMLBody)
		}
		return gm
	}
	gm.SetBody("text/html", msg.HTMLBody)
	return gm
}

// New elige el canal según la configuración: SMTP si hay host, LogMailer si no.
func New(cfg config.SMTPConfig, log *logger.Logger) ports.Mailer {
	if cfg.Host == "" {
		return NewLogMailer(log)
	}
	return NewSMTPMailer(cfg, log)
}
