package repository

import (
	"context"

	"github.com/carbonconstruct/ledger/internal/audit/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, record *domain.CalculationRecord) error {
	return db.WithContext(ctx).Create(record).Error
}

func (r *repo) ListByProject(ctx context.Context, db *gorm.DB, projectID string, limit int) ([]*domain.CalculationRecord, error) {
	var records []*domain.CalculationRecord
	stmt := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("timestamp desc, id desc")
	if limit > 0 {
		stmt = stmt.Limit(limit)
	}
	if err := stmt.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repo) AggregateByProject(ctx context.Context, db *gorm.DB, projectID string) ([]*domain.ActivityAggregate, error) {
	var aggregates []*domain.ActivityAggregate
	err := db.WithContext(ctx).
		Model(&domain.CalculationRecord{}).
		Select("activity_type, COUNT(*) AS count, SUM(result_kg_co2e) AS total_kg_co2e, AVG(uncertainty_pct) AS avg_uncertainty_pct").
		Where("project_id = ?", projectID).
		Group("activity_type").
		Order("activity_type asc").
		Scan(&aggregates).Error
	if err != nil {
		return nil, err
	}
	return aggregates, nil
}
