package seed

import (
	"bytes"
	"context"
	"embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	factordomain "github.com/carbonconstruct/ledger/internal/factor/domain"
	"gorm.io/gorm"
)

//go:embed data/*.csv
var dataFiles embed.FS

const (
	operationalFactorsFile = "data/nger_operational_factors_2024.csv"
	materialsFile          = "data/nger_materials_database_v2025_1.csv"
)

// EnsureFactorTables loads the embedded NGER reference data on first start.
// The load is idempotent: a populated operational-factor table means the
// reference data is already in place and the whole load is skipped, so a
// restart never duplicates rows. Runs before the HTTP server accepts traffic.
func EnsureFactorTables(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	ctx := context.Background()

	var count int64
	if err := db.WithContext(ctx).Model(&factordomain.OperationalFactor{}).Count(&count).Error; err != nil {
		return fmt.Errorf("check factor tables: %w", err)
	}
	if count > 0 {
		return nil
	}

	factors, err := loadOperationalFactors()
	if err != nil {
		return err
	}
	materials, err := loadMaterials()
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&factors).Error; err != nil {
			return fmt.Errorf("seed operational factors: %w", err)
		}
		if err := tx.Create(&materials).Error; err != nil {
			return fmt.Errorf("seed materials: %w", err)
		}
		return nil
	})
}

func loadOperationalFactors() ([]factordomain.OperationalFactor, error) {
	rows, err := readCSV(operationalFactorsFile)
	if err != nil {
		return nil, err
	}

	factors := make([]factordomain.OperationalFactor, 0, len(rows))
	for _, row := range rows {
		scope, err := strconv.Atoi(row["scope"])
		if err != nil {
			return nil, fmt.Errorf("parse scope %q: %w", row["scope"], err)
		}
		total, err := strconv.ParseFloat(row["total_co2e"], 64)
		if err != nil {
			return nil, fmt.Errorf("parse total_co2e %q: %w", row["total_co2e"], err)
		}

		factors = append(factors, factordomain.OperationalFactor{
			Scope:       scope,
			Category:    row["category"],
			Subcategory: row["subcategory"],
			FuelType:    row["fuel_type"],
			Region:      row["region"],
			Unit:        row["unit"],
			CO2Factor:   optionalFloat(row["co2_factor"]),
			CH4Factor:   optionalFloat(row["ch4_factor"]),
			N2OFactor:   optionalFloat(row["n2o_factor"]),
			TotalCO2e:   total,
			ECGJPerUnit: optionalFloat(row["ec_gj_per_unit"]),
			Notes:       row["notes"],
			NGERMethod:  row["nger_method"],
			Source:      row["source"],
		})
	}
	return factors, nil
}

func loadMaterials() ([]factordomain.MaterialFactor, error) {
	rows, err := readCSV(materialsFile)
	if err != nil {
		return nil, err
	}

	materials := make([]factordomain.MaterialFactor, 0, len(rows))
	for _, row := range rows {
		defaultPerUnit, err := strconv.ParseFloat(row["a1a3_default_per_unit"], 64)
		if err != nil {
			return nil, fmt.Errorf("parse a1a3_default_per_unit %q: %w", row["a1a3_default_per_unit"], err)
		}

		quality := row["data_quality"]
		if quality == "" {
			quality = "Tier 3"
		}

		materials = append(materials, factordomain.MaterialFactor{
			MaterialType:         row["material_type"],
			MaterialCategory:     row["material_category"],
			Unit:                 row["unit"],
			DataQuality:          quality,
			UncertaintyPct:       optionalFloat(row["uncertainty_pct"]),
			A1A3DefaultPerUnit:   defaultPerUnit,
			A1A3MaxPerUnit:       optionalFloat(row["a1a3_max_per_unit"]),
			A1A3MinPerUnit:       optionalFloat(row["a1a3_min_per_unit"]),
			A1A3AvgPerUnit:       optionalFloat(row["a1a3_avg_per_unit"]),
			A1A3DefaultPerKg:     optionalFloat(row["a1a3_default_per_kg"]),
			A1A3MaxPerKg:         optionalFloat(row["a1a3_max_per_kg"]),
			A1A3MinPerKg:         optionalFloat(row["a1a3_min_per_kg"]),
			A1A3AvgPerKg:         optionalFloat(row["a1a3_avg_per_kg"]),
			CarbonStoragePerUnit: floatOrZero(row["carbon_storage_per_unit"]),
			CarbonStoragePerKg:   floatOrZero(row["carbon_storage_per_kg"]),
			ConversionFactor:     optionalFloat(row["conversion_factor"]),
			ConversionUnit:       row["conversion_unit"],
		})
	}
	return materials, nil
}

// readCSV returns the file as header-keyed rows.
func readCSV(name string) ([]map[string]string, error) {
	raw, err := dataFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	var rows []map[string]string
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		row := make(map[string]string, len(header))
		for i, column := range header {
			row[column] = strings.TrimSpace(record[i])
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func optionalFloat(raw string) *float64 {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

func floatOrZero(raw string) float64 {
	if v := optionalFloat(raw); v != nil {
		return *v
	}
	return 0
}
