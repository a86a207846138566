package approval

import (
	"net/url"

	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/pkg/actiontoken"
)

// ActionPath ruta pública a la que apuntan los enlaces del email.
const ActionPath = "/business-applications/action"

// LinkBuilder arma los enlaces firmados que recibe el administrador.
type LinkBuilder struct {
	baseURL string
	tokens  *actiontoken.Authority
}

// NewLinkBuilder construye el builder; baseURL sin "/" final.
func NewLinkBuilder(baseURL string, tokens *actiontoken.Authority) *LinkBuilder {
	return &LinkBuilder{baseURL: baseURL, tokens: tokens}
}

// Link devuelve {base}/business-applications/action?companyId=..&action=..&token=..
func (b *LinkBuilder) Link(companyID string, action entity.Action) string {
	q := url.Values{}
	q.Set("companyId", companyID)
	q.Set("action", string(action))
	q.Set("token", b.tokens.Sign(companyID, action))
	return b.baseURL + ActionPath + "?" + q.Encode()
}

// Links devuelve los enlaces de aprobar y rechazar.
func (b *LinkBuilder) Links(companyID string) (approveURL, rejectURL string) {
	return b.Link(companyID, entity.ActionApprove), b.Link(companyID, entity.ActionReject)
}
