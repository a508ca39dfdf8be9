package domain

import (
	"context"

	"gorm.io/gorm"
)

// OperationalKey identifies one operational factor row. Scope, Category,
// FuelType and Region together form the unique lookup key.
type OperationalKey struct {
	Scope    int
	Category string
	FuelType string
	Region   string
}

type ListOperationalFilter struct {
	Scope    *int
	Category string
	Region   string
}

type ListMaterialFilter struct {
	Category string
	Search   string
}

type Repository interface {
	FindOperational(ctx context.Context, db *gorm.DB, key OperationalKey) (*OperationalFactor, error)
	ListOperational(ctx context.Context, db *gorm.DB, filter ListOperationalFilter) ([]*OperationalFactor, error)
	FindMaterial(ctx context.Context, db *gorm.DB, materialType string) (*MaterialFactor, error)
	ListMaterials(ctx context.Context, db *gorm.DB, filter ListMaterialFilter) ([]*MaterialFactor, error)
	ListMaterialCategories(ctx context.Context, db *gorm.DB) ([]string, error)
}
