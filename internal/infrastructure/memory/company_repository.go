// Package memory implementa los puertos de persistencia en memoria, para desarrollo y tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/Recetario-api/internal/domain"
	"github.com/jhoicas/Recetario-api/internal/domain/entity"
	"github.com/jhoicas/Recetario-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo implementación en memoria de repository.CompanyRepository.
type CompanyRepo struct {
	mu        sync.RWMutex
	companies map[string]*entity.Company
}

// NewCompanyRepository crea un repositorio vacío.
func NewCompanyRepository() *CompanyRepo {
	return &CompanyRepo{companies: make(map[string]*entity.Company)}
}

// Create guarda una copia de la empresa.
func (r *CompanyRepo) Create(ctx context.Context, company *entity.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.companies[company.ID]; exists {
		return domain.ErrDuplicate
	}
	r.companies[company.ID] = cloneCompany(company)
	return nil
}

// GetByID devuelve una copia; (nil, nil) si no existe.
func (r *CompanyRepo) GetByID(ctx context.Context, id string) (*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.companies[id]
	if !ok {
		return nil, nil
	}
	return cloneCompany(c), nil
}

// UpdateDecision aplica la decisión solo si la empresa sigue en pending.
func (r *CompanyRepo) UpdateDecision(ctx context.Context, company *entity.Company) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.companies[company.ID]
	if !ok || current.Status != entity.CompanyStatusPending {
		return false, nil
	}
	current.Status = company.Status
	current.RejectionReason = cloneString(company.RejectionReason)
	current.ApprovedAt = cloneTime(company.ApprovedAt)
	current.ApprovedBy = cloneString(company.ApprovedBy)
	current.UpdatedAt = company.UpdatedAt
	return true, nil
}

// ListByStatus lista por estado, más recientes primero. status vacío = todas.
func (r *CompanyRepo) ListByStatus(ctx context.Context, status entity.CompanyStatus, limit, offset int) ([]*entity.Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*entity.Company, 0, len(r.companies))
	for _, c := range r.companies {
		if status == "" || c.Status == status {
			list = append(list, cloneCompany(c))
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].ID < list[j].ID
		}
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if offset >= len(list) {
		return []*entity.Company{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func cloneCompany(c *entity.Company) *entity.Company {
	cp := *c
	cp.RejectionReason = cloneString(c.RejectionReason)
	cp.ApprovedAt = cloneTime(c.ApprovedAt)
	cp.ApprovedBy = cloneString(c.ApprovedBy)
	return &cp
}
