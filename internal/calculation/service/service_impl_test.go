package service

import (
	"context"
	"fmt"
	"testing"

	auditdomain "github.com/carbonconstruct/ledger/internal/audit/domain"
	auditrepo "github.com/carbonconstruct/ledger/internal/audit/repository"
	"github.com/carbonconstruct/ledger/internal/calculation/domain"
	"github.com/carbonconstruct/ledger/internal/config"
	factordomain "github.com/carbonconstruct/ledger/internal/factor/domain"
	factorrepo "github.com/carbonconstruct/ledger/internal/factor/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&factordomain.OperationalFactor{},
		&factordomain.MaterialFactor{},
		&auditdomain.CalculationRecord{},
	))

	return db
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()

	svc := New(Params{
		DB:      db,
		Log:     zap.NewNop(),
		Rules:   config.NewStaticRulesHolder(config.DefaultCalculationRules()),
		Factors: factorrepo.Provide(),
		Audit:   auditrepo.Provide(),
	})
	return svc.(*Service)
}

func floatPtr(v float64) *float64 { return &v }

func boolPtr(v bool) *bool { return &v }

func seedDieselFactors(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&factordomain.OperationalFactor{
		Scope:       1,
		Category:    "Stationary",
		FuelType:    "Diesel",
		Region:      "NSW",
		Unit:        "L",
		CO2Factor:   floatPtr(2.698),
		CH4Factor:   floatPtr(0.0039),
		N2OFactor:   floatPtr(0.0021),
		TotalCO2e:   2.704,
		ECGJPerUnit: floatPtr(0.0386),
		NGERMethod:  "Method 1",
	}).Error)

	require.NoError(t, db.Create(&factordomain.OperationalFactor{
		Scope:       1,
		Category:    "Transport",
		FuelType:    "Diesel",
		Region:      "NSW",
		Unit:        "L",
		CO2Factor:   floatPtr(2.698),
		CH4Factor:   floatPtr(0.0023),
		N2OFactor:   floatPtr(0.0057),
		TotalCO2e:   2.706,
		ECGJPerUnit: floatPtr(0.0386),
		NGERMethod:  "Method 1",
	}).Error)
}

func auditRecords(t *testing.T, db *gorm.DB, projectID string) []auditdomain.CalculationRecord {
	t.Helper()

	var records []auditdomain.CalculationRecord
	require.NoError(t, db.Where("project_id = ?", projectID).Order("id asc").Find(&records).Error)
	return records
}

func TestCalculateFuelDieselRequiresCombustionFlag(t *testing.T) {
	db := newTestDB(t)
	seedDieselFactors(t, db)
	svc := newTestService(t, db)

	_, err := svc.CalculateFuel(context.Background(), domain.FuelRequest{
		ProjectID: "P-001",
		FuelType:  "Diesel",
		Quantity:  100,
		Unit:      "L",
		State:     "NSW",
	})
	require.ErrorIs(t, err, domain.ErrCombustionContextRequired)

	// A rejected request must not leave an audit record behind.
	assert.Empty(t, auditRecords(t, db, "P-001"))
}

func TestCalculateFuelStationaryDiesel(t *testing.T) {
	db := newTestDB(t)
	seedDieselFactors(t, db)
	svc := newTestService(t, db)

	result, err := svc.CalculateFuel(context.Background(), domain.FuelRequest{
		ProjectID:    "P-001",
		FuelType:     "Diesel",
		Quantity:     100,
		Unit:         "L",
		State:        "NSW",
		IsStationary: boolPtr(true),
		Year:         2024,
	})
	require.NoError(t, err)

	// co2e comes from total_co2e, not the sum of the gas components.
	assert.InDelta(t, 270.40, result.CO2eKg, 0.001)
	assert.InDelta(t, 269.80, result.Breakdown.CO2Kg, 0.001)
	assert.InDelta(t, 0.39, result.Breakdown.CH4Kg, 0.001)
	assert.InDelta(t, 0.21, result.Breakdown.N2OKg, 0.000001)
	assert.InDelta(t, 3.86, result.EnergyGJ, 0.001)
	assert.Equal(t, "NGER 2024, Table 1, Diesel (Stationary), NSW, Method: Method 1", result.FactorSource)
	assert.Equal(t, 5.0, result.UncertaintyPct)
	assert.Equal(t, domain.ComplianceFuel, result.Compliance)

	records := auditRecords(t, db, "P-001")
	require.Len(t, records, 1)
	assert.Equal(t, auditdomain.ActivityFuel, records[0].ActivityType)
	assert.Equal(t, "Diesel (Stationary)", records[0].ItemDescription)
	assert.InDelta(t, 270.40, records[0].ResultKgCO2e, 0.001)
	require.NotNil(t, records[0].UncertaintyPct)
	assert.Equal(t, 5.0, *records[0].UncertaintyPct)
}

func TestCalculateFuelTransportDieselDiffersFromStationary(t *testing.T) {
	db := newTestDB(t)
	seedDieselFactors(t, db)
	svc := newTestService(t, db)

	result, err := svc.CalculateFuel(context.Background(), domain.FuelRequest{
		ProjectID:    "P-001",
		FuelType:     "Diesel",
		Quantity:     100,
		Unit:         "L",
		State:        "NSW",
		IsStationary: boolPtr(false),
		Year:         2024,
	})
	require.NoError(t, err)

	assert.InDelta(t, 270.60, result.CO2eKg, 0.001)
	assert.InDelta(t, 0.57, result.Breakdown.N2OKg, 0.000001)
	assert.Contains(t, result.FactorSource, "Diesel (Transport)")
}

func TestCalculateFuelNonDieselWithoutFlagDefaultsToTransport(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&factordomain.OperationalFactor{
		Scope:      1,
		Category:   "Transport",
		FuelType:   "Petrol",
		Region:     "VIC",
		Unit:       "L",
		CO2Factor:  floatPtr(2.289),
		TotalCO2e:  2.298,
		NGERMethod: "Method 1",
	}).Error)
	svc := newTestService(t, db)

	result, err := svc.CalculateFuel(context.Background(), domain.FuelRequest{
		ProjectID: "P-002",
		FuelType:  "Petrol",
		Quantity:  50,
		Unit:      "L",
		State:     "vic",
		Year:      2024,
	})
	require.NoError(t, err)
	assert.InDelta(t, 114.90, result.CO2eKg, 0.001)
	assert.Contains(t, result.FactorSource, "Petrol (Transport)")
}

func TestCalculateFuelValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.CalculateFuel(ctx, domain.FuelRequest{FuelType: "Petrol", Quantity: 1, State: "NSW"})
	assert.ErrorIs(t, err, domain.ErrInvalidProjectID)

	_, err = svc.CalculateFuel(ctx, domain.FuelRequest{ProjectID: "P", Quantity: 1, State: "NSW"})
	assert.ErrorIs(t, err, domain.ErrInvalidFuelType)

	_, err = svc.CalculateFuel(ctx, domain.FuelRequest{ProjectID: "P", FuelType: "Petrol", Quantity: 0, State: "NSW"})
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = svc.CalculateFuel(ctx, domain.FuelRequest{ProjectID: "P", FuelType: "Petrol", Quantity: 1, State: "XX"})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCalculateFuelFactorNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	_, err := svc.CalculateFuel(context.Background(), domain.FuelRequest{
		ProjectID: "P-001",
		FuelType:  "Petrol",
		Quantity:  10,
		Unit:      "L",
		State:     "TAS",
	})
	require.ErrorIs(t, err, factordomain.ErrFactorNotFound)
	assert.Contains(t, err.Error(), "NSW, VIC, QLD, SA, WA, TAS, NT, ACT")
}

func TestCalculateMaterialBiogenicStorage(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&factordomain.MaterialFactor{
		MaterialType:         "Structural timber - Softwood",
		MaterialCategory:     "Timber",
		Unit:                 "m3",
		DataQuality:          "Tier 2",
		UncertaintyPct:       floatPtr(20),
		A1A3DefaultPerUnit:   1.0,
		CarbonStoragePerUnit: -3.0,
	}).Error)
	svc := newTestService(t, db)

	result, err := svc.CalculateMaterial(context.Background(), domain.MaterialRequest{
		ProjectID:    "P-003",
		MaterialType: "Structural timber - Softwood",
		Quantity:     3,
		Unit:         "m3",
	})
	require.NoError(t, err)

	// Net is gross plus signed storage; negative storage pulls net below zero.
	assert.Equal(t, 3.0, result.GrossCO2eKg)
	assert.Equal(t, -9.0, result.CarbonStorageKg)
	assert.Equal(t, -6.0, result.NetCO2eKg)
	assert.Equal(t, "Tier 2", result.DataQuality)
	assert.Equal(t, domain.ComplianceMaterial, result.Compliance)
	require.NotNil(t, result.UncertaintyPct)
	assert.Equal(t, 20.0, *result.UncertaintyPct)

	records := auditRecords(t, db, "P-003")
	require.Len(t, records, 1)
	assert.Equal(t, auditdomain.ActivityMaterial, records[0].ActivityType)
	assert.InDelta(t, -6.0, records[0].ResultKgCO2e, 0.001)
}

func TestCalculateMaterialTierFallback(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Create(&factordomain.MaterialFactor{
		MaterialType:       "Concrete - 32 MPa",
		MaterialCategory:   "Concrete",
		Unit:               "m3",
		DataQuality:        "Tier 2",
		A1A3DefaultPerUnit: 298,
		A1A3MaxPerUnit:     floatPtr(352),
	}).Error)
	svc := newTestService(t, db)
	ctx := context.Background()

	// Tier value present: used directly.
	result, err := svc.CalculateMaterial(ctx, domain.MaterialRequest{
		ProjectID:    "P-004",
		MaterialType: "Concrete - 32 MPa",
		Quantity:     2,
		Unit:         "m3",
		DataQuality:  "max",
	})
	require.NoError(t, err)
	assert.Equal(t, 704.0, result.GrossCO2eKg)

	// Tier value absent: falls back to default, never to another tier.
	result, err = svc.CalculateMaterial(ctx, domain.MaterialRequest{
		ProjectID:    "P-004",
		MaterialType: "Concrete - 32 MPa",
		Quantity:     2,
		Unit:         "m3",
		DataQuality:  "min",
	})
	require.NoError(t, err)
	assert.Equal(t, 596.0, result.GrossCO2eKg)
}

func TestCalculateMaterialErrors(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	_, err := svc.CalculateMaterial(ctx, domain.MaterialRequest{
		ProjectID:    "P-004",
		MaterialType: "Unobtainium",
		Quantity:     1,
	})
	assert.ErrorIs(t, err, factordomain.ErrFactorNotFound)

	_, err = svc.CalculateMaterial(ctx, domain.MaterialRequest{
		ProjectID:    "P-004",
		MaterialType: "Concrete - 32 MPa",
		Quantity:     1,
		DataQuality:  "bogus",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidDataQuality)

	_, err = svc.CalculateMaterial(ctx, domain.MaterialRequest{ProjectID: "P-004", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidMaterial)
}

func TestCalculateWasteTimberDOCMethod(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	result, err := svc.CalculateWaste(context.Background(), domain.WasteRequest{
		ProjectID: "P-005",
		WasteType: "Recycled Timber Offcuts",
		Quantity:  2,
	})
	require.NoError(t, err)

	assert.Equal(t, 3000.0, result.CO2eKg)
	assert.Equal(t, 1.5, result.FactorTCO2ePerT)
	assert.Equal(t, 15.0, result.UncertaintyPct)
	assert.Equal(t, "NGER Waste Method 2, DOC factor for timber/wood", result.FactorSource)
	assert.Equal(t, domain.ComplianceWaste, result.Compliance)

	records := auditRecords(t, db, "P-005")
	require.Len(t, records, 1)
	assert.Equal(t, auditdomain.ActivityWaste, records[0].ActivityType)
	assert.Equal(t, "t", records[0].Unit)
	assert.InDelta(t, 3000.0, records[0].ResultKgCO2e, 0.001)
}

func TestCalculateWasteCompositeDescription(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	result, err := svc.CalculateWaste(context.Background(), domain.WasteRequest{
		ProjectID: "P-005",
		WasteType: "Steel waste mixed with concrete",
		Quantity:  2,
	})
	require.NoError(t, err)

	// Concrete bucket precedes steel in the classification order.
	assert.Equal(t, 0.05, result.FactorTCO2ePerT)
	assert.Equal(t, 100.0, result.CO2eKg)
}

func TestCalculateWasteGenericFallback(t *testing.T) {
	db := newTestDB(t)
	svc := newTestService(t, db)

	result, err := svc.CalculateWaste(context.Background(), domain.WasteRequest{
		ProjectID: "P-005",
		WasteType: "Mixed site refuse",
		Quantity:  1.5,
	})
	require.NoError(t, err)

	assert.Equal(t, 0.2, result.FactorTCO2ePerT)
	assert.Equal(t, 300.0, result.CO2eKg)
	assert.Equal(t, 20.0, result.UncertaintyPct)
}
