package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/application/dto"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
)

const adminPath = "/admin/business-applications"

func ptr(s string) *string { return &s }

func TestAdminDecide_Aprueba(t *testing.T) {
	env := newEnv(t, envConfig{ownerVerified: true})

	resp, body := env.adminJSON(t, http.MethodPost, adminPath,
		dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "approved"},
		tokenFor(t, testAdminID, "admin"))
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	var out dto.BusinessApplicationResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "approved", out.Company.Status)
	require.NotNil(t, out.Company.ApprovedBy)
	assert.Equal(t, testAdminID, *out.Company.ApprovedBy)
	assert.NotNil(t, out.Company.ApprovedAt)

	assert.Equal(t, entity.CompanyStatusApproved, env.company(t).Status)
	assert.Equal(t, 1, env.mailer.count())
}

func TestAdminDecide_RechazaConMotivo(t *testing.T) {
	env := newEnv(t, envConfig{ownerVerified: false})
	reason := "El registro mercantil no coincide"

	resp, body := env.adminJSON(t, http.MethodPost, adminPath,
		dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "rejected", RejectionReason: &reason},
		tokenFor(t, testAdminID, "admin"))
	require.Equal(t, http.StatusOK, resp.StatusCode, body)

	c := env.company(t)
	assert.Equal(t, entity.CompanyStatusRejected, c.Status)
	require.NotNil(t, c.RejectionReason)
	assert.Equal(t, reason, *c.RejectionReason)
	require.Equal(t, 1, env.mailer.count())
	assert.Contains(t, env.mailer.sent[0].TextBody, reason)
}

func TestAdminDecide_Errores(t *testing.T) {
	tests := []struct {
		name     string
		verified bool
		body     any
		status   int
		code     string
	}{
		{"cuerpo inválido", true, "no-json", http.StatusBadRequest, "VALIDATION"},
		{"sin companyId", true, dto.DecideBusinessApplicationRequest{Status: "approved"}, http.StatusBadRequest, "VALIDATION"},
		{"companyId no UUID", true, dto.DecideBusinessApplicationRequest{CompanyID: "c1", Status: "approved"}, http.StatusBadRequest, "VALIDATION"},
		{"status inválido", true, dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "pending"}, http.StatusBadRequest, "VALIDATION"},
		{"motivo con approved", true, dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "approved", RejectionReason: ptr("x")}, http.StatusBadRequest, "VALIDATION"},
		{"empresa inexistente", true, dto.DecideBusinessApplicationRequest{CompanyID: "7d1e2f3a-0000-4000-8000-000000000000", Status: "approved"}, http.StatusNotFound, "NOT_FOUND"},
		{"email sin verificar", false, dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "approved"}, http.StatusBadRequest, "EMAIL_NOT_VERIFIED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newEnv(t, envConfig{ownerVerified: tt.verified})
			resp, body := env.adminJSON(t, http.MethodPost, adminPath, tt.body, tokenFor(t, testAdminID, "admin"))

			assert.Equal(t, tt.status, resp.StatusCode, body)
			assert.Contains(t, body, tt.code)
			assert.Equal(t, entity.CompanyStatusPending, env.company(t).Status, "ningún error cambia el estado")
			assert.Zero(t, env.mailer.count())
		})
	}
}

func TestAdminDecide_YaProcesada(t *testing.T) {
	env := newEnv(t, envConfig{ownerVerified: true})
	tok := tokenFor(t, testAdminID, "admin")

	resp, _ := env.adminJSON(t, http.MethodPost, adminPath, dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "rejected"}, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := env.adminJSON(t, http.MethodPost, adminPath, dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "approved"}, tok)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Contains(t, body, "ALREADY_PROCESSED")
	assert.Equal(t, entity.CompanyStatusRejected, env.company(t).Status)
	assert.Nil(t, env.company(t).RejectionReason)
}

func TestAdminDecide_FalloDeNotificacionNoAfecta(t *testing.T) {
	env := newEnv(t, envConfig{ownerVerified: true, mailerErr: errors.New("smtp caído")})

	resp, body := env.adminJSON(t, http.MethodPost, adminPath,
		dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "approved"},
		tokenFor(t, testAdminID, "admin"))

	assert.Equal(t, http.StatusOK, resp.StatusCode, body)
	assert.Equal(t, entity.CompanyStatusApproved, env.company(t).Status)
	assert.Equal(t, 1, env.mailer.count())
}

func TestAdminDecide_RequiereAdmin(t *testing.T) {
	env := newEnv(t, envConfig{ownerVerified: true})
	in := dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "approved"}

	resp, _ := env.adminJSON(t, http.MethodPost, adminPath, in, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = env.adminJSON(t, http.MethodPost, adminPath, in, tokenFor(t, testOwnerID, "user"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	assert.Equal(t, entity.CompanyStatusPending, env.company(t).Status)
}

func TestAdminList(t *testing.T) {
	env := newEnv(t, envConfig{ownerVerified: true})
	tok := tokenFor(t, testAdminID, "admin")

	resp, body := env.adminJSON(t, http.MethodGet, adminPath+"?status=pending&limit=5", nil, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var out dto.BusinessApplicationListResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.Len(t, out.Items, 1)
	assert.Equal(t, testCompanyID, out.Items[0].ID)
	assert.Equal(t, 5, out.Page.Limit)

	resp, body = env.adminJSON(t, http.MethodGet, adminPath+"?status=approved", nil, tok)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Empty(t, out.Items)

	resp, body = env.adminJSON(t, http.MethodGet, adminPath+"?status=archived", nil, tok)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body, "VALIDATION")
}

func TestLogin(t *testing.T) {
	env := newEnv(t, envConfig{})

	resp, body := env.adminJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: testAdminEmail, Password: testAdminPass}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, body)
	var out dto.LoginResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	require.NotEmpty(t, out.Token)

	// El token emitido abre el panel.
	resp, _ = env.adminJSON(t, http.MethodGet, adminPath, nil, out.Token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body = env.adminJSON(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: testAdminEmail, Password: "otra"}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Contains(t, body, "UNAUTHORIZED")
}

func TestAdminDecide_MotivoDemasiadoLargo(t *testing.T) {
	env := newEnv(t, envConfig{ownerVerified: true})
	reason := strings.Repeat("x", approval.MaxReasonLength+1)

	resp, body := env.adminJSON(t, http.MethodPost, adminPath,
		dto.DecideBusinessApplicationRequest{CompanyID: testCompanyID, Status: "rejected", RejectionReason: &reason},
		tokenFor(t, testAdminID, "admin"))

	require.Equal(t, http.StatusBadRequest, resp.StatusCode, body)
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &out))
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Equal(t, entity.CompanyStatusPending, env.company(t).Status)
	assert.Zero(t, env.mailer.count())
}
