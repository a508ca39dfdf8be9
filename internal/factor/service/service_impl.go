package service

import (
	"context"
	"strings"

	"github.com/carbonconstruct/ledger/internal/factor/domain"
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
		log:  p.Log.Named("factor.service"),
		repo: p.Repo,
	}
}

func (s *Service) LookupOperational(ctx context.Context, key domain.OperationalKey) (*domain.OperationalFactor, error) {
	factor, err := s.repo.FindOperational(ctx, s.db, key)
	if err != nil {
		return nil, err
	}
	if factor == nil {
		s.log.Warn("operational factor missing",
			zap.Int("scope", key.Scope),
			zap.String("category", key.Category),
			zap.String("fuel_type", key.FuelType),
			zap.String("region", key.Region),
		)
		return nil, domain.ErrFactorNotFound
	}
	return factor, nil
}

func (s *Service) LookupMaterial(ctx context.Context, materialType string) (*domain.MaterialFactor, error) {
	material, err := s.repo.FindMaterial(ctx, s.db, strings.TrimSpace(materialType))
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrFactorNotFound
	}
	return material, nil
}

func (s *Service) ListFuels(ctx context.Context, req domain.ListFuelsRequest) ([]*domain.OperationalFactor, error) {
	scope := 1
	return s.repo.ListOperational(ctx, s.db, domain.ListOperationalFilter{
		Scope:    &scope,
		Category: strings.TrimSpace(req.Category),
		Region:   strings.ToUpper(strings.TrimSpace(req.Region)),
	})
}

func (s *Service) ListMaterials(ctx context.Context, req domain.ListMaterialsRequest) ([]*domain.MaterialFactor, error) {
	return s.repo.ListMaterials(ctx, s.db, domain.ListMaterialFilter{
		Category: strings.TrimSpace(req.Category),
		Search:   strings.TrimSpace(req.Search),
	})
}

func (s *Service) ListMaterialCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListMaterialCategories(ctx, s.db)
}
