package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/application/notification"
	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/repository"
	"github.com/jhoicas/Recetario-api/internal/infrastructure/mail"
	"github.com/jhoicas/Recetario-api/internal/infrastructure/postgres"
)

// NotifyAdminCmd envía al administrador el email con los enlaces firmados de una solicitud pending.
type NotifyAdminCmd struct {
	CompanyID string `help:"ID (UUID) de la empresa" required:""`
	To        string `help:"Destinatario; por defecto ADMIN_NOTIFICATION_EMAIL"`
}

func (c *NotifyAdminCmd) Run(ctx context.Context, g *Globals) error {
	cfg, log, err := g.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	to := c.To
	if to == "" {
		to = cfg.Approval.AdminEmail
	}
	if to == "" {
		return errors.New("sin destinatario: use --to o ADMIN_NOTIFICATION_EMAIL")
	}
	links, err := newLinkBuilder(cfg)
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	dispatcher := notification.NewDispatcher(mail.New(cfg.SMTP, log), notification.Config{AppName: cfg.App.Name}, log)
	if err := notifyAdmin(ctx, postgres.NewCompanyRepository(pool), postgres.NewUserRepository(pool), links, dispatcher, to, c.CompanyID); err != nil {
		return err
	}
	log.Info().Str("company_id", c.CompanyID).Str("to", to).Msg("aviso de nueva solicitud enviado")
	return nil
}

func notifyAdmin(ctx context.Context, companies repository.CompanyRepository, users repository.UserRepository,
	links *approval.LinkBuilder, dispatcher *notification.Dispatcher, to, companyID string) error {
	company, err := companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if company == nil {
		return fmt.Errorf("empresa %s: %w", companyID, domain.ErrNotFound)
	}
	if !company.IsPending() {
		return &domain.AlreadyProcessedError{Status: string(company.Status)}
	}
	owner, err := users.GetByID(ctx, company.OwnerID)
	if err != nil {
		return err
	}
	app := notification.NewApplication{
		CompanyName:        company.Name,
		RegistrationNumber: company.RegistrationNumber,
	}
	if owner != nil {
		app.OwnerName, app.OwnerEmail, app.OwnerEmailVerified = owner.Name, owner.Email, owner.EmailVerified
	}
	app.ApproveURL, app.RejectURL = links.Links(company.ID)
	return dispatcher.NotifyNewApplication(ctx, to, app)
}
