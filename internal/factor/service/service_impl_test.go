package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/carbonconstruct/ledger/internal/factor/domain"
	"github.com/carbonconstruct/ledger/internal/factor/repository"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.OperationalFactor{}, &domain.MaterialFactor{}))

	svc := New(Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: repository.Provide(),
	})
	return svc, db
}

func fPtr(v float64) *float64 { return &v }

func seedFactors(t *testing.T, db *gorm.DB) {
	t.Helper()

	operational := []domain.OperationalFactor{
		{Scope: 1, Category: "Stationary", FuelType: "Diesel", Region: "NSW", Unit: "L", CO2Factor: fPtr(2.698), CH4Factor: fPtr(0.0039), N2OFactor: fPtr(0.0021), TotalCO2e: 2.704, ECGJPerUnit: fPtr(0.0386), NGERMethod: "Method 1"},
		{Scope: 1, Category: "Transport", FuelType: "Diesel", Region: "NSW", Unit: "L", CO2Factor: fPtr(2.698), CH4Factor: fPtr(0.0023), N2OFactor: fPtr(0.0057), TotalCO2e: 2.706, ECGJPerUnit: fPtr(0.0386), NGERMethod: "Method 1"},
		{Scope: 1, Category: "Transport", FuelType: "Petrol", Region: "VIC", Unit: "L", CO2Factor: fPtr(2.289), CH4Factor: fPtr(0.0047), N2OFactor: fPtr(0.0047), TotalCO2e: 2.298, ECGJPerUnit: fPtr(0.0342), NGERMethod: "Method 1"},
		{Scope: 2, Category: "Electricity", FuelType: "Grid Electricity", Region: "NSW", Unit: "kWh", TotalCO2e: 0.66, NGERMethod: "Method 1"},
	}
	for i := range operational {
		require.NoError(t, db.Create(&operational[i]).Error)
	}

	materials := []domain.MaterialFactor{
		{MaterialType: "Concrete - 32 MPa", MaterialCategory: "Concrete", Unit: "m3", A1A3DefaultPerUnit: 298, DataQuality: "Tier 2"},
		{MaterialType: "Softwood Framing Timber", MaterialCategory: "Timber", Unit: "m3", A1A3DefaultPerUnit: 263, CarbonStoragePerUnit: -716, DataQuality: "Tier 2"},
		{MaterialType: "Structural Steel Sections", MaterialCategory: "Steel", Unit: "t", A1A3DefaultPerUnit: 2320, DataQuality: "Tier 2"},
	}
	for i := range materials {
		require.NoError(t, db.Create(&materials[i]).Error)
	}
}

func TestLookupOperational(t *testing.T) {
	svc, db := newTestService(t)
	seedFactors(t, db)
	ctx := context.Background()

	factor, err := svc.LookupOperational(ctx, domain.OperationalKey{
		Scope:    1,
		Category: "Stationary",
		FuelType: "Diesel",
		Region:   "NSW",
	})
	require.NoError(t, err)
	assert.Equal(t, 2.704, factor.TotalCO2e)
	require.NotNil(t, factor.N2OFactor)
	assert.Equal(t, 0.0021, *factor.N2OFactor)

	_, err = svc.LookupOperational(ctx, domain.OperationalKey{
		Scope:    1,
		Category: "Stationary",
		FuelType: "Diesel",
		Region:   "SA",
	})
	assert.ErrorIs(t, err, domain.ErrFactorNotFound)
}

func TestLookupMaterial(t *testing.T) {
	svc, db := newTestService(t)
	seedFactors(t, db)
	ctx := context.Background()

	material, err := svc.LookupMaterial(ctx, "Concrete - 32 MPa")
	require.NoError(t, err)
	assert.Equal(t, 298.0, material.A1A3DefaultPerUnit)

	_, err = svc.LookupMaterial(ctx, "Unobtainium")
	assert.ErrorIs(t, err, domain.ErrFactorNotFound)
}

func TestListFuelsScopedAndFiltered(t *testing.T) {
	svc, db := newTestService(t)
	seedFactors(t, db)
	ctx := context.Background()

	// Scope 2 electricity never shows up in the fuel listing.
	all, err := svc.ListFuels(ctx, domain.ListFuelsRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for _, f := range all {
		assert.Equal(t, 1, f.Scope)
	}

	nsw, err := svc.ListFuels(ctx, domain.ListFuelsRequest{Region: "nsw"})
	require.NoError(t, err)
	assert.Len(t, nsw, 2)

	transport, err := svc.ListFuels(ctx, domain.ListFuelsRequest{Category: "Transport"})
	require.NoError(t, err)
	assert.Len(t, transport, 2)
}

func TestListMaterials(t *testing.T) {
	svc, db := newTestService(t)
	seedFactors(t, db)
	ctx := context.Background()

	all, err := svc.ListMaterials(ctx, domain.ListMaterialsRequest{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	timber, err := svc.ListMaterials(ctx, domain.ListMaterialsRequest{Category: "Timber"})
	require.NoError(t, err)
	require.Len(t, timber, 1)
	assert.Equal(t, "Softwood Framing Timber", timber[0].MaterialType)

	steel, err := svc.ListMaterials(ctx, domain.ListMaterialsRequest{Search: "steel"})
	require.NoError(t, err)
	require.Len(t, steel, 1)
	assert.Equal(t, "Structural Steel Sections", steel[0].MaterialType)
}

func TestListMaterialCategories(t *testing.T) {
	svc, db := newTestService(t)
	seedFactors(t, db)

	categories, err := svc.ListMaterialCategories(context.Background())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Concrete", "Steel", "Timber"}, categories)
}
