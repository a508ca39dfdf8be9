package repository

import (
	"context"
	"errors"

	"github.com/carbonconstruct/ledger/internal/factor/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) FindOperational(ctx context.Context, db *gorm.DB, key domain.OperationalKey) (*domain.OperationalFactor, error) {
	var factor domain.OperationalFactor
	err := db.WithContext(ctx).
		Where("scope = ? AND category = ? AND fuel_type = ? AND region = ?",
			key.Scope, key.Category, key.FuelType, key.Region).
		First(&factor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &factor, nil
}

func (r *repo) ListOperational(ctx context.Context, db *gorm.DB, filter domain.ListOperationalFilter) ([]*domain.OperationalFactor, error) {
	var factors []*domain.OperationalFactor
	stmt := db.WithContext(ctx).Model(&domain.OperationalFactor{})
	if filter.Scope != nil {
		stmt = stmt.Where("scope = ?", *filter.Scope)
	}
	if filter.Category != "" {
		stmt = stmt.Where("category = ?", filter.Category)
	}
	if filter.Region != "" {
		stmt = stmt.Where("region = ?", filter.Region)
	}
	err := stmt.
		Order("category asc, fuel_type asc, region asc").
		Find(&factors).Error
	if err != nil {
		return nil, err
	}
	return factors, nil
}

func (r *repo) FindMaterial(ctx context.Context, db *gorm.DB, materialType string) (*domain.MaterialFactor, error) {
	var material domain.MaterialFactor
	err := db.WithContext(ctx).
		Where("material_type = ?", materialType).
		First(&material).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &material, nil
}

func (r *repo) ListMaterials(ctx context.Context, db *gorm.DB, filter domain.ListMaterialFilter) ([]*domain.MaterialFactor, error) {
	var materials []*domain.MaterialFactor
	stmt := db.WithContext(ctx).Model(&domain.MaterialFactor{})
	if filter.Category != "" {
		stmt = stmt.Where("material_category = ?", filter.Category)
	}
	if filter.Search != "" {
		stmt = stmt.Where("material_type LIKE ?", "%"+filter.Search+"%")
	}
	err := stmt.
		Order("material_category asc, material_type asc").
		Find(&materials).Error
	if err != nil {
		return nil, err
	}
	return materials, nil
}

func (r *repo) ListMaterialCategories(ctx context.Context, db *gorm.DB) ([]string, error) {
	var categories []string
	err := db.WithContext(ctx).
		Model(&domain.MaterialFactor{}).
		Distinct("material_category").
		Order("material_category asc").
		Pluck("material_category", &categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}
