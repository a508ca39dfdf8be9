package domain

// OperationalFactor is one row of the NGER operational (fuel/energy) factor
// table. Rows are loaded once at startup and never modified: calculation
// records cite them by text so revising the table cannot invalidate history.
type OperationalFactor struct {
	ID          int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Scope       int      `gorm:"not null;uniqueIndex:ux_nger_ops_lookup,priority:1" json:"scope"`
	Category    string   `gorm:"not null;uniqueIndex:ux_nger_ops_lookup,priority:2" json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	FuelType    string   `gorm:"not null;uniqueIndex:ux_nger_ops_lookup,priority:3" json:"fuel_type"`
	Region      string   `gorm:"not null;uniqueIndex:ux_nger_ops_lookup,priority:4" json:"region"`
	Unit        string   `gorm:"not null" json:"unit"`
	CO2Factor   *float64 `gorm:"column:co2_factor" json:"co2_factor,omitempty"`
	CH4Factor   *float64 `gorm:"column:ch4_factor" json:"ch4_factor,omitempty"`
	N2OFactor   *float64 `gorm:"column:n2o_factor" json:"n2o_factor,omitempty"`
	TotalCO2e   float64  `gorm:"column:total_co2e;not null" json:"total_co2e"`
	ECGJPerUnit *float64 `gorm:"column:ec_gj_per_unit" json:"ec_gj_per_unit,omitempty"`
	Notes       string   `json:"notes,omitempty"`
	NGERMethod  string   `gorm:"column:nger_method" json:"nger_method,omitempty"`
	Source      string   `json:"source,omitempty"`
}

func (OperationalFactor) TableName() string { return "nger_operational_factors" }

// MaterialFactor is one row of the embodied-carbon materials table.
// The default A1-A3 per-unit intensity is always present; the min/max/avg
// variants and the per-kg mirrors are optional and fall back to the default.
// Carbon storage is signed: negative values record biogenic sequestration.
type MaterialFactor struct {
	ID                   int64    `gorm:"primaryKey;autoIncrement" json:"id"`
	MaterialType         string   `gorm:"not null;uniqueIndex:ux_nger_mat_lookup,priority:1" json:"material_type"`
	MaterialCategory     string   `gorm:"not null;uniqueIndex:ux_nger_mat_lookup,priority:2" json:"material_category"`
	Unit                 string   `gorm:"not null" json:"unit"`
	DataQuality          string   `json:"data_quality,omitempty"`
	UncertaintyPct       *float64 `json:"uncertainty_pct,omitempty"`
	A1A3DefaultPerUnit   float64  `gorm:"column:a1a3_default_per_unit;not null" json:"a1a3_default_per_unit"`
	A1A3MaxPerUnit       *float64 `gorm:"column:a1a3_max_per_unit" json:"a1a3_max_per_unit,omitempty"`
	A1A3MinPerUnit       *float64 `gorm:"column:a1a3_min_per_unit" json:"a1a3_min_per_unit,omitempty"`
	A1A3AvgPerUnit       *float64 `gorm:"column:a1a3_avg_per_unit" json:"a1a3_avg_per_unit,omitempty"`
	A1A3DefaultPerKg     *float64 `gorm:"column:a1a3_default_per_kg" json:"a1a3_default_per_kg,omitempty"`
	A1A3MaxPerKg         *float64 `gorm:"column:a1a3_max_per_kg" json:"a1a3_max_per_kg,omitempty"`
	A1A3MinPerKg         *float64 `gorm:"column:a1a3_min_per_kg" json:"a1a3_min_per_kg,omitempty"`
	A1A3AvgPerKg         *float64 `gorm:"column:a1a3_avg_per_kg" json:"a1a3_avg_per_kg,omitempty"`
	CarbonStoragePerUnit float64  `gorm:"not null;default:0" json:"carbon_storage_per_unit"`
	CarbonStoragePerKg   float64  `gorm:"not null;default:0" json:"carbon_storage_per_kg"`
	ConversionFactor     *float64 `json:"conversion_factor,omitempty"`
	ConversionUnit       string   `json:"conversion_unit,omitempty"`
}

func (MaterialFactor) TableName() string { return "nger_materials" }

// PerUnitValue returns the A1-A3 per-unit intensity for a tier field name.
// Only per-unit variants participate; per-kg values are a separate basis.
func (m MaterialFactor) PerUnitValue(field string) *float64 {
	switch field {
	case "default":
		v := m.A1A3DefaultPerUnit
		return &v
	case "min":
		return m.A1A3MinPerUnit
	case "max":
		return m.A1A3MaxPerUnit
	case "avg":
		return m.A1A3AvgPerUnit
	default:
		return nil
	}
}
