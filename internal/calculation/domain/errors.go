package domain

import "errors"

var (
	ErrInvalidProjectID   = errors.New("project_id is required")
	ErrInvalidQuantity    = errors.New("quantity must be greater than zero")
	ErrInvalidFuelType    = errors.New("fuel_type is required")
	ErrInvalidState       = errors.New("state must be one of NSW, VIC, QLD, SA, WA, TAS, NT, ACT")
	ErrInvalidMaterial    = errors.New("material_type is required")
	ErrInvalidWasteType   = errors.New("waste_type is required")
	ErrInvalidDataQuality = errors.New("data_quality must be one of default, min, max, avg")

	// ErrCombustionContextRequired rejects fuels whose factors depend on
	// stationary vs transport use when the caller did not say which.
	ErrCombustionContextRequired = errors.New(
		"is_stationary flag is required: N2O emission factors differ by 171% between stationary and transport use")
)
