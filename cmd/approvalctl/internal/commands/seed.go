package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/internal/domain/repository"
	"github.com/jhoicas/Recetario-api/internal/infrastructure/postgres"
)

// SeedCmd crea un administrador y una empresa pending con su dueño.
type SeedCmd struct {
	AdminEmail    string `help:"Email del administrador" default:"admin@recetario.local"`
	AdminPassword string `help:"Password del administrador" env:"SEED_ADMIN_PASSWORD" required:""`
	OwnerEmail    string `help:"Email del dueño de la empresa" default:"chef@recetario.local"`
	OwnerName     string `help:"Nombre del dueño" default:"Chef Demo"`
	OwnerVerified bool   `help:"Marcar el email del dueño como verificado" default:"true" negatable:""`
	CompanyName   string `help:"Nombre de la empresa" default:"Restaurante Demo"`
	Registration  string `help:"Número de registro mercantil" default:"900000001"`
}

func (c *SeedCmd) Run(ctx context.Context, g *Globals) error {
	cfg, log, err := g.load()
	if err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	res, err := c.seed(ctx, postgres.NewTxRunner(pool, postgres.WithIsoLevel(pgx.Serializable)), time.Now().UTC())
	if err != nil {
		return err
	}
	log.Info().
		Str("admin_id", res.AdminID).
		Bool("admin_created", res.AdminCreated).
		Str("company_id", res.CompanyID).
		Msg("seed aplicado")
	fmt.Println(res.CompanyID)
	return nil
}

type seedResult struct {
	AdminID      string
	AdminCreated bool
	OwnerID      string
	CompanyID    string
}

// txRunner lo implementa postgres.TxRunner.
type txRunner interface {
	Run(ctx context.Context, fn func(users repository.UserRepository, companies repository.CompanyRepository) error) error
}

// seed es idempotente para los usuarios (se reutilizan por email); la empresa siempre es nueva.
// Todo ocurre en una transacción: no quedan dueños sin empresa.
func (c *SeedCmd) seed(ctx context.Context, tx txRunner, now time.Time) (*seedResult, error) {
	if len(c.AdminPassword) < 8 {
		return nil, fmt.Errorf("%w: el password del admin debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	var res *seedResult
	err := tx.Run(ctx, func(users repository.UserRepository, companies repository.CompanyRepository) error {
		var err error
		res, err = c.seedWith(ctx, users, companies, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (c *SeedCmd) seedWith(ctx context.Context, users repository.UserRepository, companies repository.CompanyRepository, now time.Time) (*seedResult, error) {
	res := &seedResult{}

	admin, created, err := ensureUser(ctx, users, &entity.User{
		Email:         c.AdminEmail,
		Name:          "Administrador",
		Role:          entity.RoleAdmin,
		AccountType:   entity.AccountPersonal,
		EmailVerified: true,
	}, c.AdminPassword, now)
	if err != nil {
		return nil, fmt.Errorf("admin: %w", err)
	}
	res.AdminID, res.AdminCreated = admin.ID, created

	owner, _, err := ensureUser(ctx, users, &entity.User{
		Email:         c.OwnerEmail,
		Name:          c.OwnerName,
		Role:          entity.RoleUser,
		AccountType:   entity.AccountBusiness,
		EmailVerified: c.OwnerVerified,
	}, "", now)
	if err != nil {
		return nil, fmt.Errorf("dueño: %w", err)
	}
	res.OwnerID = owner.ID

	company := &entity.Company{
		ID:                 uuid.NewString(),
		Name:               c.CompanyName,
		RegistrationNumber: c.Registration,
		Email:              c.OwnerEmail,
		Status:             entity.CompanyStatusPending,
		OwnerID:            owner.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := companies.Create(ctx, company); err != nil {
		return nil, fmt.Errorf("empresa: %w", err)
	}
	res.CompanyID = company.ID
	return res, nil
}

func ensureUser(ctx context.Context, users repository.UserRepository, u *entity.User, password string, now time.Time) (*entity.User, bool, error) {
	existing, err := users.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	u.ID = uuid.NewString()
	u.Status = "active"
	u.CreatedAt, u.UpdatedAt = now, now
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, false, err
		}
		u.PasswordHash = string(hash)
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, false, err
	}
	return u, true, nil
}
