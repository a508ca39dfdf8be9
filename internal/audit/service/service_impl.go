package service

import (
	"context"
	"strings"

	"github.com/carbonconstruct/ledger/internal/audit/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("audit.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context, req domain.ListRecordsRequest) ([]domain.CalculationRecord, error) {
	items, err := s.repo.ListByProject(ctx, s.db, strings.TrimSpace(req.ProjectID), req.Limit)
	if err != nil {
		return nil, err
	}

	records := make([]domain.CalculationRecord, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		records = append(records, *item)
	}
	return records, nil
}

func (s *Service) Aggregate(ctx context.Context, projectID string) ([]domain.ActivityAggregate, error) {
	items, err := s.repo.AggregateByProject(ctx, s.db, strings.TrimSpace(projectID))
	if err != nil {
		return nil, err
	}

	aggregates := make([]domain.ActivityAggregate, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		aggregates = append(aggregates, *item)
	}
	return aggregates, nil
}
