package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/dentalcalc/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// clinicScoped implements shared.ClinicRepository[T] on GORM. Every
// clinic-owned aggregate stores its rows with a clinic_id column, so the
// scoped lookups, listings and counts are identical across them; only the
// searchable columns and the default ordering differ.
type clinicScoped[T any] struct {
	db *gorm.DB
	// searchExpr is a WHERE fragment with one ? per search term occurrence,
	// e.g. "name ILIKE ? OR role ILIKE ?". Empty disables search.
	searchExpr string
	searchArgs int
	// sortFields whitelists OrderBy values; anything else falls back to
	// defaultSort.
	sortFields  map[string]bool
	defaultSort string
}

func newClinicScoped[T any](db *gorm.DB, searchExpr string, sortFields map[string]bool, defaultSort string) clinicScoped[T] {
	return clinicScoped[T]{
		db:          db,
		searchExpr:  searchExpr,
		searchArgs:  strings.Count(searchExpr, "?"),
		sortFields:  sortFields,
		defaultSort: defaultSort,
	}
}

// FindByID finds an entity by its ID
func (r *clinicScoped[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindByIDForClinic finds an entity by ID within a clinic
func (r *clinicScoped[T]) FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).
		Where("clinic_id = ? AND id = ?", clinicID, id).
		First(&entity).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

// FindAllForClinic finds all entities for a clinic matching the filter
func (r *clinicScoped[T]) FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) ([]T, error) {
	var entities []T
	var model T
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&model).Where("clinic_id = ?", clinicID),
		filter,
	)
	if err := query.Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// CountForClinic counts entities for a clinic matching the filter
func (r *clinicScoped[T]) CountForClinic(ctx context.Context, clinicID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	var model T
	query := r.applySearch(
		r.db.WithContext(ctx).Model(&model).Where("clinic_id = ?", clinicID),
		filter,
	)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an entity
func (r *clinicScoped[T]) Save(ctx context.Context, entity *T) error {
	return r.db.WithContext(ctx).Save(entity).Error
}

// Delete deletes an entity by ID
func (r *clinicScoped[T]) Delete(ctx context.Context, id uuid.UUID) error {
	var model T
	result := r.db.WithContext(ctx).Delete(&model, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies search, ordering and pagination to the query
func (r *clinicScoped[T]) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applySearch(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	field := ValidateSortField(filter.OrderBy, r.sortFields, r.defaultSort)
	query = query.Order(field + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applySearch applies the search term without pagination, for counting
func (r *clinicScoped[T]) applySearch(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" && r.searchExpr != "" {
		pattern := "%" + filter.Search + "%"
		args := make([]interface{}, r.searchArgs)
		for i := range args {
			args[i] = pattern
		}
		query = query.Where(r.searchExpr, args...)
	}
	return query
}
