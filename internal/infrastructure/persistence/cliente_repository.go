package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/crm/backend/internal/domain/cliente"
	"github.com/crm/backend/internal/domain/shared"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// GormClienteRepository implements cliente.Repository using GORM
type GormClienteRepository struct {
	db *gorm.DB
}

// NewGormClienteRepository creates a new GormClienteRepository
func NewGormClienteRepository(db *gorm.DB) *GormClienteRepository {
	return &GormClienteRepository{db: db}
}

// FindByID finds a client by its ID
func (r *GormClienteRepository) FindByID(ctx context.Context, id uint) (*cliente.Cliente, error) {
	var c cliente.Cliente
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("Cliente", id)
		}
		return nil, err
	}
	return &c, nil
}

// ListWithCount returns one page of matching clients plus the total count.
// Both queries run inside a single transaction so the page and the count
// describe the same snapshot.
func (r *GormClienteRepository) ListWithCount(ctx context.Context, q cliente.ListQuery) ([]cliente.Cliente, int64, error) {
	var (
		rows  []cliente.Cliente
		total int64
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		countQuery := r.applyFilterWithoutPagination(tx.Model(&cliente.Cliente{}), q.Filters)
		if err := countQuery.Count(&total).Error; err != nil {
			return err
		}

		listQuery := r.applyFilter(tx.Model(&cliente.Cliente{}), q)
		return listQuery.Find(&rows).Error
	})
	if err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// FindByCnpjCpf finds a client holding the given digits-only document,
// skipping excludeID when non-zero. Returns nil when no match exists.
func (r *GormClienteRepository) FindByCnpjCpf(ctx context.Context, digits string, excludeID uint) (*cliente.Cliente, error) {
	query := r.db.WithContext(ctx).Where("cnpj_cpf = ?", digits)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var c cliente.Cliente
	if err := query.First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persists a new client
func (r *GormClienteRepository) Create(ctx context.Context, c *cliente.Cliente) error {
	if err := r.db.WithContext(ctx).Create(c).Error; err != nil {
		return translateClienteError(err, c.CnpjCpf)
	}
	return nil
}

// Update applies a partial column update and returns the updated row
func (r *GormClienteRepository) Update(ctx context.Context, id uint, changes map[string]any) (*cliente.Cliente, error) {
	if len(changes) > 0 {
		var submitted *string
		if digits, ok := changes["cnpj_cpf"].(string); ok {
			submitted = &digits
		}

		result := r.db.WithContext(ctx).
			Model(&cliente.Cliente{}).
			Where("id = ?", id).
			Updates(changes)
		if result.Error != nil {
			return nil, translateClienteError(result.Error, submitted)
		}
		if result.RowsAffected == 0 {
			return nil, shared.NewNotFoundError("Cliente", id)
		}
	}
	return r.FindByID(ctx, id)
}

// Delete removes a client permanently
func (r *GormClienteRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&cliente.Cliente{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.NewNotFoundError("Cliente", id)
	}
	return nil
}

// Count counts clients matching the filters
func (r *GormClienteRepository) Count(ctx context.Context, f cliente.Filters) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&cliente.Cliente{}), f)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filters, ordering and pagination to the query
func (r *GormClienteRepository) applyFilter(query *gorm.DB, q cliente.ListQuery) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, q.Filters)

	if q.Page > 0 && q.Limit > 0 {
		query = query.Offset(q.Offset()).Limit(q.Limit)
	}

	field := q.Order.Field
	if !ClienteSortFields[field] {
		field = "id"
	}
	direction := ValidateSortOrder(q.Order.Direction)
	query = query.Order(fmt.Sprintf("%s %s", field, direction))

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormClienteRepository) applyFilterWithoutPagination(query *gorm.DB, f cliente.Filters) *gorm.DB {
	if f.Nome != "" {
		query = query.Where("nome ILIKE ?", "%"+f.Nome+"%")
	}
	if f.Tipo != nil {
		query = query.Where("tipo = ?", *f.Tipo)
	}
	if f.Ativo != nil {
		query = query.Where("ativo = ?", *f.Ativo)
	}
	if f.Search != "" {
		searchPattern := "%" + f.Search + "%"
		// Documents are stored digits-only, so a search term only reaches
		// the cnpj_cpf column once stripped of its formatting
		digits := cliente.OnlyDigits(f.Search)
		if digits != "" {
			query = query.Where("nome ILIKE ? OR cnpj_cpf LIKE ?",
				searchPattern, "%"+digits+"%")
		} else {
			query = query.Where("nome ILIKE ?", searchPattern)
		}
	}
	return query
}

// translateClienteError converts low-level unique violations into the
// ALREADY_EXISTS domain error so racing writers surface like the pre-check
func translateClienteError(err error, cnpjCpf *string) error {
	value := ""
	if cnpjCpf != nil {
		value = *cnpjCpf
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return shared.NewDuplicateError("Cliente", "CNPJ/CPF", value)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return shared.NewDuplicateError("Cliente", "CNPJ/CPF", value)
	}

	return err
}

// Ensure GormClienteRepository implements cliente.Repository
var _ cliente.Repository = (*GormClienteRepository)(nil)
