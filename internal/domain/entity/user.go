package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Tipos de cuenta.
const (
	AccountPersonal = "personal"
	AccountBusiness = "business"
)

// User representa un usuario de la plataforma. El dueño de una Company es un User
// con AccountType business; los administradores tienen Role admin.
type User struct {
	ID            string
	Email         string
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Name          string
	Role          string // user, admin
	AccountType   string // personal, business
	EmailVerified bool   // lo marca el flujo de verificación de email; aquí solo se lee
	Status        string // active, inactive, suspended
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
