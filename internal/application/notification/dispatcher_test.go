package notification_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recetario-api/internal/application/notification"
	"github.com/jhoicas/Recetario-api/internal/application/ports"
	"github.com/jhoicas/Recetario-api/pkg/logger"
)

// recordingMailer guarda el estado del contexto en el momento del envío.
type recordingMailer struct {
	sent        []ports.EmailMessage
	err         error
	ctxErr      error
	hasDeadline bool
}

func (m *recordingMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	m.ctxErr = ctx.Err()
	_, m.hasDeadline = ctx.Deadline()
	m.sent = append(m.sent, msg)
	return m.err
}

func newDispatcher(m ports.Mailer, log *logger.Logger) *notification.Dispatcher {
	return notification.NewDispatcher(m, notification.Config{
		AppName:  "Recetario",
		LoginURL: "https://recetario.example.com/login",
	}, log)
}

func TestNotifyApproved_ComponeMensaje(t *testing.T) {
	m := &recordingMailer{}
	newDispatcher(m, logger.Nop()).NotifyApproved(context.Background(), "chef@example.com", "La Olla", "Ana Chef")

	require.Len(t, m.sent, 1)
	msg := m.sent[0]
	assert.Equal(t, []string{"chef@example.com"}, msg.To)
	assert.Contains(t, msg.Subject, "La Olla")
	assert.Contains(t, msg.TextBody, "Hi Ana Chef")
	assert.Contains(t, msg.HTMLBody, "<strong>La Olla</strong>")
	assert.Contains(t, msg.HTMLBody, "https://recetario.example.com/login")
}

func TestNotifyRejected_MotivoVerbatim(t *testing.T) {
	m := &recordingMailer{}
	reason := "Registration number doesn't match the chamber of commerce"
	newDispatcher(m, logger.Nop()).NotifyRejected(context.Background(), "chef@example.com", "La Olla", "Ana Chef", &reason)

	require.Len(t, m.sent, 1)
	assert.Contains(t, m.sent[0].TextBody, "Reason: "+reason, "el texto plano lleva el motivo sin escapar")
	assert.Contains(t, m.sent[0].HTMLBody, "doesn&#39;t match", "el HTML lleva el motivo escapado")
}

func TestNotifyRejected_SinMotivo(t *testing.T) {
	m := &recordingMailer{}
	newDispatcher(m, logger.Nop()).NotifyRejected(context.Background(), "chef@example.com", "La Olla", "Ana Chef", nil)

	require.Len(t, m.sent, 1)
	assert.NotContains(t, m.sent[0].TextBody, "Reason:")
}

func TestNotify_FalloDelMailerSeRegistraYNoSePropaga(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Env: "production", Level: "info", Output: &buf})
	m := &recordingMailer{err: errors.New("smtp caído")}

	assert.NotPanics(t, func() {
		newDispatcher(m, log).NotifyApproved(context.Background(), "chef@example.com", "La Olla", "Ana Chef")
	})
	assert.Len(t, m.sent, 1)
	assert.Contains(t, buf.String(), "smtp caído")
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestNotify_ContextoCanceladoNoAbortaEnvio(t *testing.T) {
	m := &recordingMailer{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	newDispatcher(m, logger.Nop()).NotifyApproved(ctx, "chef@example.com", "La Olla", "Ana Chef")

	require.Len(t, m.sent, 1)
	assert.NoError(t, m.ctxErr, "el envío corre desacoplado de la cancelación de la petición")
	assert.True(t, m.hasDeadline, "el envío tiene un timeout propio")
}

func TestNotifyNewApplication_IncluyeEnlaces(t *testing.T) {
	m := &recordingMailer{}
	err := newDispatcher(m, logger.Nop()).NotifyNewApplication(context.Background(), "admin@recetario.example.com", notification.NewApplication{
		CompanyName:        "La Olla",
		RegistrationNumber: "900123456",
		OwnerName:          "Ana Chef",
		OwnerEmail:         "chef@example.com",
		ApproveURL:         "https://recetario.example.com/business-applications/action?action=approve&companyId=c1&token=aa",
		RejectURL:          "https://recetario.example.com/business-applications/action?action=reject&companyId=c1&token=bb",
	})

	require.NoError(t, err)
	require.Len(t, m.sent, 1)
	assert.Equal(t, []string{"admin@recetario.example.com"}, m.sent[0].To)
	assert.Contains(t, m.sent[0].TextBody, "action=approve&companyId=c1&token=aa")
	assert.Contains(t, m.sent[0].TextBody, "approval will be refused until verified")
	assert.Contains(t, m.sent[0].HTMLBody, "action=reject&amp;companyId=c1&amp;token=bb")
}

func TestNotifyNewApplication_PropagaError(t *testing.T) {
	m := &recordingMailer{err: errors.New("smtp caído")}
	err := newDispatcher(m, logger.Nop()).NotifyNewApplication(context.Background(), "admin@recetario.example.com", notification.NewApplication{CompanyName: "La Olla"})
	assert.ErrorContains(t, err, "smtp caído")
}
