package shared

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the minimal persistence contract for an entity type.
type Repository[T any] interface {
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Save(ctx context.Context, entity *T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ClinicRepository is a repository scoped to a clinic (tenant). Every read
// carries the clinic ID so one clinic can never see another's records.
type ClinicRepository[T any] interface {
	Repository[T]
	FindByIDForClinic(ctx context.Context, clinicID, id uuid.UUID) (*T, error)
	FindAllForClinic(ctx context.Context, clinicID uuid.UUID, filter Filter) ([]T, error)
	CountForClinic(ctx context.Context, clinicID uuid.UUID, filter Filter) (int64, error)
}

// Filter carries list-query options: pagination, ordering, free-text
// search and column filters.
type Filter struct {
	Page     int
	PageSize int
	OrderBy  string
	OrderDir string
	Search   string
	Filters  map[string]interface{}
}

// DefaultFilter matches what the price list screens expect: first page,
// 50 rows, oldest first.
func DefaultFilter() Filter {
	return Filter{
		Page:     1,
		PageSize: 50,
		OrderBy:  "created_at",
		OrderDir: "asc",
		Filters:  make(map[string]interface{}),
	}
}

// Paginated is one page of results plus the totals needed to render
// pagination controls.
type Paginated[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalPages int   `json:"total_pages"`
}

func NewPaginated[T any](items []T, total int64, page, pageSize int) Paginated[T] {
	return Paginated[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: (int(total) + pageSize - 1) / pageSize,
	}
}
