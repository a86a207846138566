package approval_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/pkg/actiontoken"
)

func TestLinkBuilder(t *testing.T) {
	tokens, err := actiontoken.New([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	b := approval.NewLinkBuilder("https://recetario.example.com", tokens)

	approveURL, rejectURL := b.Links("c1")

	u, err := url.Parse(approveURL)
	require.NoError(t, err)
	assert.Equal(t, "recetario.example.com", u.Host)
	assert.Equal(t, approval.ActionPath, u.Path)
	assert.Equal(t, "c1", u.Query().Get("companyId"))
	assert.Equal(t, "approve", u.Query().Get("action"))
	assert.True(t, tokens.Verify("c1", entity.ActionApprove, u.Query().Get("token")))

	u, err = url.Parse(rejectURL)
	require.NoError(t, err)
	assert.Equal(t, "reject", u.Query().Get("action"))
	assert.True(t, tokens.Verify("c1", entity.ActionReject, u.Query().Get("token")))
	assert.False(t, tokens.Verify("c1", entity.ActionApprove, u.Query().Get("token")))
}
