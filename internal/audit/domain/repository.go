package domain

import (
	"context"

	"gorm.io/gorm"
)

// Repository persists and reads calculation records. Insert takes the
// caller's *gorm.DB so the calculation engine can append inside the same
// transaction that performed the factor lookup.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, record *CalculationRecord) error
	ListByProject(ctx context.Context, db *gorm.DB, projectID string, limit int) ([]*CalculationRecord, error)
	AggregateByProject(ctx context.Context, db *gorm.DB, projectID string) ([]*ActivityAggregate, error)
}
