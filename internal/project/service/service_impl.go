package service

import (
	"context"
	"strings"
	"time"

	"github.com/carbonconstruct/ledger/internal/project/domain"
	"github.com/carbonconstruct/ledger/pkg/db"
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
		log:  p.Log.Named("project.service"),
		repo: p.Repo,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateProjectRequest) (domain.Project, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return domain.Project{}, domain.ErrInvalidProjectID
	}

	name := strings.TrimSpace(req.ProjectName)
	if name == "" {
		return domain.Project{}, domain.ErrInvalidProjectName
	}

	var state *string
	if req.State != nil {
		normalized := strings.ToUpper(strings.TrimSpace(*req.State))
		if !domain.IsValidState(normalized) {
			return domain.Project{}, domain.ErrInvalidState
		}
		state = &normalized
	}

	now := time.Now().UTC()
	project := domain.Project{
		ProjectID:   projectID,
		ProjectName: name,
		Postcode:    req.Postcode,
		State:       state,
		ClimateZone: req.ClimateZone,
		NCCVolume:   req.NCCVolume,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Insert(ctx, s.db, &project); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Project{}, domain.ErrProjectExists
		}
		return domain.Project{}, err
	}

	s.log.Info("project registered",
		zap.String("project_id", project.ProjectID),
		zap.String("project_name", project.ProjectName),
	)

	return project, nil
}

func (s *Service) Get(ctx context.Context, projectID string) (domain.Project, error) {
	project, err := s.repo.FindByID(ctx, s.db, strings.TrimSpace(projectID))
	if err != nil {
		return domain.Project{}, err
	}
	if project == nil {
		return domain.Project{}, domain.ErrProjectNotFound
	}
	return *project, nil
}

func (s *Service) List(ctx context.Context, req domain.ListProjectRequest) ([]domain.Project, error) {
	items, err := s.repo.List(ctx, s.db, domain.ListProjectFilter{
		State:     strings.ToUpper(strings.TrimSpace(req.State)),
		NCCVolume: strings.TrimSpace(req.NCCVolume),
	})
	if err != nil {
		return nil, err
	}

	projects := make([]domain.Project, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		projects = append(projects, *item)
	}
	return projects, nil
}
