package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/pkg/actiontoken"
	"github.com/jhoicas/Recetario-api/pkg/config"
)

// LinksCmd imprime los enlaces firmados de aprobar/rechazar. No toca la base de datos.
type LinksCmd struct {
	CompanyID string `help:"ID (UUID) de la empresa" required:""`
}

func (c *LinksCmd) Run(g *Globals) error {
	cfg, _, err := g.load()
	if err != nil {
		return err
	}
	return c.print(os.Stdout, cfg)
}

func (c *LinksCmd) print(w io.Writer, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if _, err := uuid.Parse(c.CompanyID); err != nil {
		return fmt.Errorf("company-id debe ser un UUID: %w", err)
	}
	links, err := newLinkBuilder(cfg)
	if err != nil {
		return err
	}
	approveURL, rejectURL := links.Links(c.CompanyID)
	_, err = fmt.Fprintf(w, "approve: %s\nreject:  %s\n", approveURL, rejectURL)
	return err
}

func newLinkBuilder(cfg *config.Config) (*approval.LinkBuilder, error) {
	tokens, err := actiontoken.New([]byte(cfg.Approval.SigningSecret))
	if err != nil {
		return nil, err
	}
	return approval.NewLinkBuilder(cfg.Approval.PublicBaseURL, tokens), nil
}
