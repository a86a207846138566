package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/internal/domain/repository"
)

// Asegura que CompanyRepo implementa repository.CompanyRepository.
var _ repository.CompanyRepository = (*CompanyRepo)(nil)

const companyColumns = `id, name, registration_number, address, phone, email, status,
	rejection_reason, approved_at, approved_by, owner_id, created_at, updated_at`

// CompanyRepo implementación del puerto CompanyRepository sobre PostgreSQL.
type CompanyRepo struct {
	db Querier
}

// NewCompanyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCompanyRepository(db Querier) *CompanyRepo {
	return &CompanyRepo{db: db}
}

// Create persiste una nueva empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	query := `
		INSERT INTO companies (` + companyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.db.Exec(ctx, query,
		company.ID, company.Name, company.RegistrationNumber, company.Address,
		company.Phone, company.Email, string(company.Status),
		company.RejectionReason, company.ApprovedAt, company.ApprovedBy,
		company.OwnerID, company.CreatedAt, company.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert company: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	query := `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	c, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get company: %w", err)
	}
	return c, nil
}

// UpdateDecision escribe la decisión con guarda status = 'pending'.
// Una sola sentencia: la atomicidad la da PostgreSQL, sin transacción explícita.
func (r *CompanyRepo) UpdateDecision(ctx context.Context, company *entity.Company) (bool, error) {
	query := `
		UPDATE companies
		   SET status = $2, rejection_reason = $3, approved_at = $4, approved_by = $5, updated_at = $6
		 WHERE id = $1 AND status = 'pending'`
	cmd, err := r.db.Exec(ctx, query,
		company.ID, string(company.Status), company.RejectionReason,
		company.ApprovedAt, company.ApprovedBy, company.UpdatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("update company decision: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByStatus devuelve empresas por estado con paginación. status vacío = todas.
func (r *CompanyRepo) ListByStatus(ctx context.Context, status entity.CompanyStatus, limit, offset int) ([]*entity.Company, error) {
	query := `
		SELECT ` + companyColumns + `
		  FROM companies
		 WHERE ($1::text = '' OR status = $1::text)
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(ctx, query, string(status), limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("scan company: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCompany(row pgx.Row) (*entity.Company, error) {
	var (
		c      entity.Company
		status string
	)
	err := row.Scan(
		&c.ID, &c.Name, &c.RegistrationNumber, &c.Address, &c.Phone, &c.Email, &status,
		&c.RejectionReason, &c.ApprovedAt, &c.ApprovedBy, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Status = entity.CompanyStatus(status)
	return &c, nil
}
