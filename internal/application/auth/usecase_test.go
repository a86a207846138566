package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Recetario-api/internal/application/auth"
	"github.com/jhoicas/Recetario-api/internal/application/dto"
	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/internal/infrastructure/memory"
	"github.com/jhoicas/Recetario-api/pkg/jwt"
)

const testSecret = "jwt-secret-de-pruebas"

func newAuth(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3creta-larga"), bcrypt.MinCost)
	require.NoError(t, err)

	users := memory.NewUserRepository()
	ctx := context.Background()
	require.NoError(t, users.Create(ctx, &entity.User{ID: "admin-1", Email: "admin@recetario.example.com", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: "active"}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "u1", Email: "ana@laolla.example.com", PasswordHash: string(hash), Role: entity.RoleUser, Status: "active"}))
	require.NoError(t, users.Create(ctx, &entity.User{ID: "admin-2", Email: "baja@recetario.example.com", PasswordHash: string(hash), Role: entity.RoleAdmin, Status: "inactive"}))

	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "recetario-api"})
}

func TestLogin_Admin(t *testing.T) {
	uc := newAuth(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ADMIN@recetario.example.com", Password: "s3creta-larga"})
	require.NoError(t, err)
	assert.Equal(t, "admin-1", out.User.ID)

	userID, role, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin-1", userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_Errores(t *testing.T) {
	uc := newAuth(t)

	tests := []struct {
		name string
		in   dto.LoginRequest
		want error
	}{
		{"campos vacíos", dto.LoginRequest{}, domain.ErrInvalidInput},
		{"usuario inexistente", dto.LoginRequest{Email: "nadie@example.com", Password: "x"}, domain.ErrUnauthorized},
		{"password incorrecto", dto.LoginRequest{Email: "admin@recetario.example.com", Password: "otra"}, domain.ErrUnauthorized},
		{"no es admin", dto.LoginRequest{Email: "ana@laolla.example.com", Password: "s3creta-larga"}, domain.ErrForbidden},
		{"admin inactivo", dto.LoginRequest{Email: "baja@recetario.example.com", Password: "s3creta-larga"}, domain.ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Login(context.Background(), tt.in)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
