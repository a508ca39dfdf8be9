package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	auditdomain "github.com/carbonconstruct/ledger/internal/audit/domain"
	auditrepo "github.com/carbonconstruct/ledger/internal/audit/repository"
	auditservice "github.com/carbonconstruct/ledger/internal/audit/service"
	"github.com/carbonconstruct/ledger/internal/config"
	"github.com/carbonconstruct/ledger/internal/report/domain"
	"github.com/carbonconstruct/ledger/internal/report/pdf"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&auditdomain.CalculationRecord{}))

	auditSvc := auditservice.New(auditservice.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Repo: auditrepo.Provide(),
	})

	svc := New(Params{
		Config:   config.Config{AppName: "carbonledger", AppVersion: "2.0.0"},
		Log:      zap.NewNop(),
		Audit:    auditSvc,
		Renderer: pdf.NewRenderer(),
	})
	return svc.(*Service), db
}

func floatPtr(v float64) *float64 { return &v }

func seedTrail(t *testing.T, db *gorm.DB) {
	t.Helper()

	base := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	records := []auditdomain.CalculationRecord{
		{ProjectID: "P-1", Timestamp: base, ActivityType: auditdomain.ActivityFuel, ItemDescription: "Diesel (Stationary)", Quantity: 100, Unit: "L", FactorApplied: 2.704, FactorSource: "NGER 2024, Table 1, Diesel (Stationary), NSW, Method: Method 1", ResultKgCO2e: 270.4, UncertaintyPct: floatPtr(5), Metadata: datatypes.JSONMap{}},
		{ProjectID: "P-1", Timestamp: base.Add(time.Hour), ActivityType: auditdomain.ActivityFuel, ItemDescription: "Diesel (Stationary)", Quantity: 200, Unit: "L", FactorApplied: 2.704, FactorSource: "NGER 2024, Table 1, Diesel (Stationary), NSW, Method: Method 1", ResultKgCO2e: 540.8, UncertaintyPct: floatPtr(5), Metadata: datatypes.JSONMap{}},
		{ProjectID: "P-1", Timestamp: base.Add(2 * time.Hour), ActivityType: auditdomain.ActivityMaterial, ItemDescription: "Concrete - 32 MPa", Quantity: 2, Unit: "m3", FactorApplied: 298, FactorSource: "NGER Materials Database v2025.1, Concrete - 32 MPa, Data Quality: Tier 2, Factor: default", ResultKgCO2e: 596, UncertaintyPct: floatPtr(20), Metadata: datatypes.JSONMap{}},
		{ProjectID: "P-1", Timestamp: base.Add(3 * time.Hour), ActivityType: auditdomain.ActivityWaste, ItemDescription: "Timber waste", Quantity: 2, Unit: "t", FactorApplied: 1.5, FactorSource: "NGER Waste Method 2, DOC factor for timber/wood", ResultKgCO2e: 3000, UncertaintyPct: floatPtr(15), Metadata: datatypes.JSONMap{}},
	}
	for i := range records {
		require.NoError(t, db.Create(&records[i]).Error)
	}
}

func TestProjectSummaryTotals(t *testing.T) {
	svc, db := newTestService(t)
	seedTrail(t, db)

	summary, err := svc.ProjectSummary(context.Background(), "P-1")
	require.NoError(t, err)

	assert.Equal(t, "P-1", summary.ProjectID)
	assert.InDelta(t, 4407.2, summary.TotalCO2eKg, 0.001)
	assert.InDelta(t, 4.41, summary.TotalCO2eTonnes, 0.001)
	assert.Equal(t, domain.ComplianceSummary, summary.Compliance)

	fuel := summary.Breakdown[auditdomain.ActivityFuel]
	assert.Equal(t, int64(2), fuel.Count)
	assert.InDelta(t, 811.2, fuel.CO2eKg, 0.001)
	require.NotNil(t, fuel.UncertaintyPct)
	assert.Equal(t, 5.0, *fuel.UncertaintyPct)

	require.Len(t, summary.RecentCalculations, 4)
	assert.Equal(t, "Timber waste", summary.RecentCalculations[0].Description)
}

func TestProjectSummaryUnknownProjectIsZero(t *testing.T) {
	svc, db := newTestService(t)
	seedTrail(t, db)

	summary, err := svc.ProjectSummary(context.Background(), "missing")
	require.NoError(t, err)

	assert.Zero(t, summary.TotalCO2eKg)
	assert.Zero(t, summary.TotalCO2eTonnes)
	assert.Empty(t, summary.Breakdown)
	assert.Empty(t, summary.RecentCalculations)
}

func TestNGERExportScopeSplit(t *testing.T) {
	svc, db := newTestService(t)
	seedTrail(t, db)

	report, err := svc.NGERExport(context.Background(), "P-1")
	require.NoError(t, err)

	assert.Equal(t, "P-1", report.ReportMetadata.ProjectID)
	assert.Equal(t, "carbonledger v2.0.0", report.ReportMetadata.Software)
	assert.Equal(t, domain.ComplianceFrameworkNGER, report.ReportMetadata.ComplianceFramework)

	assert.InDelta(t, 0.8112, report.EmissionsSummary.Scope1, 0.0001)
	assert.Zero(t, report.EmissionsSummary.Scope2)
	assert.InDelta(t, 3.596, report.EmissionsSummary.Scope3, 0.0001)

	require.Len(t, report.CalculationLog, 4)
	assert.Equal(t, "Timber waste", report.CalculationLog[0].Description)
	assert.NotEmpty(t, report.MethodologyStatement)
}

func TestNCCExportLifeCycleStages(t *testing.T) {
	svc, db := newTestService(t)
	seedTrail(t, db)

	report, err := svc.NCCExport(context.Background(), "P-1")
	require.NoError(t, err)

	assert.Equal(t, domain.ComplianceSummary, report.ReportType)
	assert.InDelta(t, 596.0, report.LifeCycleStages.A1A3ProductStage.CO2eKg, 0.001)
	assert.Zero(t, report.LifeCycleStages.A4Transport.CO2eKg)
	assert.InDelta(t, 811.2, report.LifeCycleStages.A5Construction.CO2eKg, 0.001)
	assert.InDelta(t, 3000.0, report.LifeCycleStages.CEndOfLife.CO2eKg, 0.001)
	assert.InDelta(t, 4407.2, report.TotalEmbodiedCarbonKg, 0.001)
}

func TestMethodologyDeduplicatesFactorSources(t *testing.T) {
	svc, db := newTestService(t)
	seedTrail(t, db)

	statement, err := svc.Methodology(context.Background(), "P-1")
	require.NoError(t, err)

	// Two diesel records share a citation; the list carries it once.
	require.Len(t, statement.FactorSources, 3)
	assert.Equal(t, "4 calculations logged with timestamps and factor sources", statement.AuditTrail)
	assert.Equal(t, domain.CalculationFramework, statement.CalculationFramework)
	assert.Len(t, statement.MethodsApplied, 4)
}

func TestMethodologyPDFRenders(t *testing.T) {
	svc, db := newTestService(t)
	seedTrail(t, db)

	doc, err := svc.MethodologyPDF(context.Background(), "P-1")
	require.NoError(t, err)
	assert.NotEmpty(t, doc)
	assert.Equal(t, "%PDF", string(doc[:4]))
}
