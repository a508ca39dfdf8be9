package domain

import "context"

// Service is the calculation engine. Each call resolves a factor, computes
// the emission figures and appends one audit record; the lookup and the
// append share a transaction so no result is returned without its record.
type Service interface {
	CalculateFuel(ctx context.Context, req FuelRequest) (FuelResult, error)
	CalculateMaterial(ctx context.Context, req MaterialRequest) (MaterialResult, error)
	CalculateWaste(ctx context.Context, req WasteRequest) (WasteResult, error)
}
