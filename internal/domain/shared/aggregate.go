package shared

import (
	"github.com/google/uuid"
)

// AggregateRoot marks consistency-boundary entities. The version field
// backs optimistic locking on concurrent edits from clinic staff.
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
}

// BaseAggregateRoot provides common fields for aggregate roots
type BaseAggregateRoot struct {
	BaseEntity
	Version int `gorm:"not null;default:1"`
}

func (a *BaseAggregateRoot) GetVersion() int { return a.Version }

func (a *BaseAggregateRoot) IncrementVersion() { a.Version++ }

// NewBaseAggregateRoot starts a fresh aggregate at version 1.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// ClinicAggregateRoot extends BaseAggregateRoot with clinic (tenant) scoping.
// Every costing and catalog record belongs to exactly one clinic, and no
// calculation ever crosses clinic boundaries.
type ClinicAggregateRoot struct {
	BaseAggregateRoot
	ClinicID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// NewClinicAggregateRoot creates a new clinic-scoped aggregate root
func NewClinicAggregateRoot(clinicID uuid.UUID) ClinicAggregateRoot {
	return ClinicAggregateRoot{
		BaseAggregateRoot: NewBaseAggregateRoot(),
		ClinicID:          clinicID,
	}
}
