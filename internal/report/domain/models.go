package domain

import "time"

const (
	ComplianceSummary       = "NCC 2025 Whole-of-Life Assessment"
	ComplianceFrameworkNGER = "NGER Act 2007"
	CalculationFramework    = "NGER (Measurement) Determination 2008"
)

// ActivityBreakdown is the per-activity-type rollup inside a summary.
type ActivityBreakdown struct {
	Count          int64    `json:"count"`
	CO2eKg         float64  `json:"co2e_kg"`
	UncertaintyPct *float64 `json:"uncertainty_pct"`
}

type RecentCalculation struct {
	Timestamp   time.Time `json:"timestamp"`
	Activity    string    `json:"activity"`
	Description string    `json:"description"`
	CO2eKg      float64   `json:"co2e_kg"`
}

// ProjectSummary rolls a project's audit trail up by activity type. Unknown
// projects produce a zero-totals summary rather than an error.
type ProjectSummary struct {
	ProjectID          string                       `json:"project_id"`
	TotalCO2eKg        float64                      `json:"total_co2e_kg"`
	TotalCO2eTonnes    float64                      `json:"total_co2e_tonnes"`
	Breakdown          map[string]ActivityBreakdown `json:"breakdown"`
	RecentCalculations []RecentCalculation          `json:"recent_calculations"`
	Timestamp          time.Time                    `json:"timestamp"`
	Compliance         string                       `json:"compliance"`
}

type ReportMetadata struct {
	ProjectID           string    `json:"project_id"`
	GeneratedAt         time.Time `json:"generated_at"`
	ReportingYear       int       `json:"reporting_year"`
	Software            string    `json:"software"`
	ComplianceFramework string    `json:"compliance_framework"`
}

type EmissionsSummary struct {
	TotalCO2eTonnes float64 `json:"total_co2e_tonnes"`
	Scope1          float64 `json:"scope_1"`
	Scope2          float64 `json:"scope_2"`
	Scope3          float64 `json:"scope_3"`
}

type CalculationLogEntry struct {
	Timestamp      time.Time `json:"timestamp"`
	ActivityType   string    `json:"activity_type"`
	Description    string    `json:"description"`
	Quantity       float64   `json:"quantity"`
	Unit           string    `json:"unit"`
	EmissionFactor float64   `json:"emission_factor"`
	FactorSource   string    `json:"factor_source"`
	ResultKgCO2e   float64   `json:"result_kg_co2e"`
	UncertaintyPct *float64  `json:"uncertainty_pct"`
}

// NGERReport is the Clean Energy Regulator submission shape.
type NGERReport struct {
	ReportMetadata       ReportMetadata        `json:"report_metadata"`
	EmissionsSummary     EmissionsSummary      `json:"emissions_summary"`
	CalculationLog       []CalculationLogEntry `json:"calculation_log"`
	MethodologyStatement string                `json:"methodology_statement"`
}

type LifeCycleStage struct {
	Description string  `json:"description"`
	CO2eKg      float64 `json:"co2e_kg"`
	DataQuality string  `json:"data_quality"`
}

type LifeCycleStages struct {
	A1A3ProductStage LifeCycleStage `json:"A1_A3_product_stage"`
	A4Transport      LifeCycleStage `json:"A4_transport"`
	A5Construction   LifeCycleStage `json:"A5_construction"`
	CEndOfLife       LifeCycleStage `json:"C_end_of_life"`
}

// NCCReport is the whole-of-life summary used in building consent
// applications, bucketed by life cycle stage.
type NCCReport struct {
	ProjectID             string          `json:"project_id"`
	ReportType            string          `json:"report_type"`
	GeneratedAt           time.Time       `json:"generated_at"`
	LifeCycleStages       LifeCycleStages `json:"life_cycle_stages"`
	TotalEmbodiedCarbonKg float64         `json:"total_embodied_carbon_kg"`
	ComplianceStatus      string          `json:"compliance_status"`
	Methodology           string          `json:"methodology"`
}

// MethodologyStatement cites the frameworks and factor sources behind a
// project's audit trail.
type MethodologyStatement struct {
	ProjectID            string            `json:"project_id"`
	CalculationFramework string            `json:"calculation_framework"`
	FactorSources        []string          `json:"factor_sources"`
	MethodsApplied       []string          `json:"methods_applied"`
	DataQuality          map[string]string `json:"data_quality"`
	AuditTrail           string            `json:"audit_trail"`
	Uncertainty          string            `json:"uncertainty"`
	GeneratedAt          time.Time         `json:"generated_at"`
}
