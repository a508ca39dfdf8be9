package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Activity types recorded in the calculation log.
const (
	ActivityFuel     = "fuel"
	ActivityMaterial = "material"
	ActivityWaste    = "waste"
)

// CalculationRecord is one immutable row of the audit trail. Records are
// append-only: nothing in the service updates or deletes them once written.
// FactorSource carries the citation as text so revising a factor table never
// rewrites history.
type CalculationRecord struct {
	ID              int64             `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID       string            `gorm:"not null;index" json:"project_id"`
	Timestamp       time.Time         `gorm:"not null" json:"timestamp"`
	ActivityType    string            `gorm:"not null" json:"activity_type"`
	ItemDescription string            `json:"item_description"`
	Quantity        float64           `gorm:"not null" json:"quantity"`
	Unit            string            `json:"unit"`
	FactorApplied   float64           `json:"factor_applied"`
	FactorSource    string            `json:"factor_source"`
	ResultKgCO2e    float64           `gorm:"column:result_kg_co2e;not null" json:"result_kg_co2e"`
	UncertaintyPct  *float64          `json:"uncertainty_pct,omitempty"`
	Metadata        datatypes.JSONMap `json:"metadata"`
}

func (CalculationRecord) TableName() string { return "calculation_log" }

// ActivityAggregate is one GROUP BY activity_type row of a project rollup.
type ActivityAggregate struct {
	ActivityType      string   `json:"activity_type"`
	Count             int64    `json:"count"`
	TotalKgCO2e       float64  `json:"total_kg_co2e"`
	AvgUncertaintyPct *float64 `json:"avg_uncertainty_pct,omitempty"`
}
