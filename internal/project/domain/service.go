package domain

import "context"

type CreateProjectRequest struct {
	ProjectID   string  `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Postcode    *string `json:"postcode"`
	State       *string `json:"state"`
	ClimateZone *string `json:"climate_zone"`
	NCCVolume   *string `json:"ncc_volume"`
}

type ListProjectRequest struct {
	State     string
	NCCVolume string
}

type Service interface {
	Create(ctx context.Context, req CreateProjectRequest) (Project, error)
	Get(ctx context.Context, projectID string) (Project, error)
	List(ctx context.Context, req ListProjectRequest) ([]Project, error)
}
