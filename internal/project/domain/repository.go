package domain

import (
	"context"

	"gorm.io/gorm"
)

type ListProjectFilter struct {
	State     string
	NCCVolume string
}

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, project *Project) error
	FindByID(ctx context.Context, db *gorm.DB, projectID string) (*Project, error)
	List(ctx context.Context, db *gorm.DB, filter ListProjectFilter) ([]*Project, error)
}
