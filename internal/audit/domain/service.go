package domain

import "context"

type ListRecordsRequest struct {
	ProjectID string
	Limit     int
}

type Service interface {
	// List returns the project's calculation records ordered most recent
	// first. Limit <= 0 returns the full trail.
	List(ctx context.Context, req ListRecordsRequest) ([]CalculationRecord, error)

	// Aggregate groups the project's records by activity type with count,
	// summed result and averaged uncertainty.
	Aggregate(ctx context.Context, projectID string) ([]ActivityAggregate, error)
}
