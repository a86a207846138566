package ports

import "context"

// EmailMessage mensaje transaccional ya renderizado.
type EmailMessage struct {
	To       []string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer define el puerto de salida del canal de email transaccional.
// Cualquier adaptador (SMTP, log, mock) debe implementar esta interfaz.
// Los reintentos son responsabilidad del adaptador: quien llama solo ve el error final.
type Mailer interface {
	Send(ctx context.Context, msg EmailMessage) error
}
