package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Recetario-api/internal/domain/repository"
)

// beginner lo cumple *pgxpool.Pool.
type beginner interface {
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
}

// TxRunner agrupa escrituras de usuarios y empresas en una sola transacción.
// Lo usa el seed: un dueño nunca queda creado sin su empresa.
type TxRunner struct {
	db   beginner
	opts pgx.TxOptions
}

// TxOption ajusta las opciones de la transacción.
type TxOption func(*pgx.TxOptions)

// WithIsoLevel fija el nivel de aislamiento (por defecto el del servidor).
func WithIsoLevel(level pgx.TxIsoLevel) TxOption {
	return func(o *pgx.TxOptions) { o.IsoLevel = level }
}

// NewTxRunner construye el runner sobre el pool.
func NewTxRunner(db beginner, opts ...TxOption) *TxRunner {
	r := &TxRunner{db: db}
	for _, opt := range opts {
		opt(&r.opts)
	}
	return r
}

// Run ejecuta fn con repositorios atados a la tx. Error de fn: rollback; nil: commit.
func (r *TxRunner) Run(ctx context.Context, fn func(
	users repository.UserRepository,
	companies repository.CompanyRepository,
) error) error {
	err := pgx.BeginTxFunc(ctx, r.db, r.opts, func(tx pgx.Tx) error {
		return fn(NewUserRepository(tx), NewCompanyRepository(tx))
	})
	if err != nil {
		return fmt.Errorf("transacción users/companies: %w", err)
	}
	return nil
}
