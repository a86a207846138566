package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Recetario-api/internal/application/approval"
	"github.com/jhoicas/Recetario-api/internal/application/auth"
	"github.com/jhoicas/Recetario-api/internal/application/notification"
	"github.com/jhoicas/Recetario-api/internal/application/ports"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Recetario-api/internal/interfaces/http"
	"github.com/jhoicas/Recetario-api/pkg/actiontoken"
	"github.com/jhoicas/Recetario-api/pkg/logger"
	pkgjwt "github.com/jhoicas/Recetario-api/pkg/jwt"
)

const (
	testJWTSecret   = "test-secret-key-for-unit-tests"
	testSignSecret  = "approval-signing-secret-for-tests"
	testIssuer      = "recetario-api-test"
	testExpMin      = 60
	testAdminID     = "00000000-0000-0000-0000-0000000000a1"
	testOwnerID     = "00000000-0000-0000-0000-0000000000b1"
	testCompanyID   = "3f2b8c1e-6d4a-4e7b-9a51-2c8d0e4f7a10"
	testAdminURL    = "https://recetario.example.com/admin/business-applications"
	testAdminEmail  = "admin@recetario.example.com"
	testAdminPass   = "s3creta-larga"
	testOwnerEmail  = "ana@laolla.example.com"
	testCompanyName = "La Olla"
)

// stubMailer registra los envíos y puede fallar siempre.
type stubMailer struct {
	mu   sync.Mutex
	sent []ports.EmailMessage
	err  error
}

func (m *stubMailer) Send(ctx context.Context, msg ports.EmailMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, msg)
	return m.err
}

func (m *stubMailer) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sent)
}

type envConfig struct {
	ownerVerified  bool
	confirmApprove bool
	mailerErr      error
}

type testEnv struct {
	app       *fiber.App
	companies *memory.CompanyRepo
	users     *memory.UserRepo
	mailer    *stubMailer
	tokens    *actiontoken.Authority
}

func newEnv(t *testing.T, cfg envConfig) *testEnv {
	t.Helper()
	ctx := context.Background()

	users := memory.NewUserRepository()
	companies := memory.NewCompanyRepository()

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPass), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &entity.User{
		ID: testAdminID, Email: testAdminEmail, PasswordHash: string(hash), Name: "Admin",
		Role: entity.RoleAdmin, AccountType: entity.AccountPersonal, EmailVerified: true, Status: "active",
	}))
	require.NoError(t, users.Create(ctx, &entity.User{
		ID: testOwnerID, Email: testOwnerEmail, Name: "Ana Chef",
		Role: entity.RoleUser, AccountType: entity.AccountBusiness, EmailVerified: cfg.ownerVerified, Status: "active",
	}))
	require.NoError(t, companies.Create(ctx, &entity.Company{
		ID: testCompanyID, Name: testCompanyName, RegistrationNumber: "900123456",
		Status: entity.CompanyStatusPending, OwnerID: testOwnerID, CreatedAt: time.Now().UTC(),
	}))

	mailer := &stubMailer{err: cfg.mailerErr}
	dispatcher := notification.NewDispatcher(mailer, notification.Config{AppName: "Recetario", Timeout: time.Second}, logger.Nop())
	uc := approval.NewUseCase(companies, users, dispatcher, logger.Nop())
	tokens, err := actiontoken.New([]byte(testSignSecret))
	require.NoError(t, err)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ApprovalUC:     uc,
		AuthUC:         auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		Tokens:         tokens,
		JWTSecret:      testJWTSecret,
		ConfirmApprove: cfg.confirmApprove,
		AdminURL:       testAdminURL,
		Logger:         logger.Nop(),
	})
	return &testEnv{app: app, companies: companies, users: users, mailer: mailer, tokens: tokens}
}

func (e *testEnv) company(t *testing.T) *entity.Company {
	t.Helper()
	c, err := e.companies.GetByID(context.Background(), testCompanyID)
	require.NoError(t, err)
	require.NotNil(t, c)
	return c
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func (e *testEnv) openLink(t *testing.T, companyID, action, token string) (*http.Response, string) {
	t.Helper()
	q := url.Values{}
	if companyID != "" {
		q.Set("companyId", companyID)
	}
	if action != "" {
		q.Set("action", action)
	}
	if token != "" {
		q.Set("token", token)
	}
	return e.do(t, httptest.NewRequest(http.MethodGet, approval.ActionPath+"?"+q.Encode(), nil))
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values, headers map[string]string) (*http.Response, string) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return e.do(t, req)
}

func (e *testEnv) adminJSON(t *testing.T, method, path string, body any, bearer string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = strings.NewReader(string(b))
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return e.do(t, req)
}

func tokenFor(t *testing.T, userID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return tok
}

// flipHex cambia el carácter hex en la posición i por otro distinto.
func flipHex(token string, i int) string {
	b := []byte(token)
	if b[i] == '0' {
		b[i] = '1'
	} else {
		b[i] = '0'
	}
	return string(b)
}
