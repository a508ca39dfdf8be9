package domain

// Compliance tags stamped on calculation results.
const (
	ComplianceFuel     = "NGER Act 2007, Method 1"
	ComplianceMaterial = "NCC 2025 Whole-of-Life Assessment, A1-A3"
	ComplianceWaste    = "NGER Act 2007, Waste Disposal"
)

type FuelRequest struct {
	ProjectID    string  `json:"project_id"`
	FuelType     string  `json:"fuel_type"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	State        string  `json:"state"`
	IsStationary *bool   `json:"is_stationary"`
	Year         int     `json:"year"`
}

type GasBreakdown struct {
	CO2Kg float64 `json:"co2_kg"`
	CH4Kg float64 `json:"ch4_kg"`
	N2OKg float64 `json:"n2o_kg"`
}

type FuelResult struct {
	CO2eKg         float64      `json:"co2e_kg"`
	Breakdown      GasBreakdown `json:"breakdown"`
	EnergyGJ       float64      `json:"energy_gj"`
	FactorSource   string       `json:"factor_source"`
	UncertaintyPct float64      `json:"uncertainty_pct"`
	Compliance     string       `json:"compliance"`
}

type MaterialRequest struct {
	ProjectID    string  `json:"project_id"`
	MaterialType string  `json:"material_type"`
	Quantity     float64 `json:"quantity"`
	Unit         string  `json:"unit"`
	DataQuality  string  `json:"data_quality"`
}

type MaterialResult struct {
	GrossCO2eKg     float64  `json:"gross_co2e_kg"`
	CarbonStorageKg float64  `json:"carbon_storage_kg"`
	NetCO2eKg       float64  `json:"net_co2e_kg"`
	FactorSource    string   `json:"factor_source"`
	UncertaintyPct  *float64 `json:"uncertainty_pct"`
	DataQuality     string   `json:"data_quality"`
	Compliance      string   `json:"compliance"`
}

type WasteRequest struct {
	ProjectID string  `json:"project_id"`
	WasteType string  `json:"waste_type"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
}

type WasteResult struct {
	CO2eKg          float64 `json:"co2e_kg"`
	FactorSource    string  `json:"factor_source"`
	FactorTCO2ePerT float64 `json:"factor_t_co2e_per_t"`
	UncertaintyPct  float64 `json:"uncertainty_pct"`
	Compliance      string  `json:"compliance"`
}
