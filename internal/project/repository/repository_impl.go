package repository

import (
	"context"
	"errors"

	"github.com/carbonconstruct/ledger/internal/project/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, project *domain.Project) error {
	return db.WithContext(ctx).Create(project).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, projectID string) (*domain.Project, error) {
	var project domain.Project
	err := db.WithContext(ctx).
		Where("project_id = ?", projectID).
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListProjectFilter) ([]*domain.Project, error) {
	var projects []*domain.Project
	stmt := db.WithContext(ctx).Model(&domain.Project{})
	if filter.State != "" {
		stmt = stmt.Where("state = ?", filter.State)
	}
	if filter.NCCVolume != "" {
		stmt = stmt.Where("ncc_volume = ?", filter.NCCVolume)
	}
	err := stmt.
		Order("created_at desc").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}
