package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	auditdomain "github.com/carbonconstruct/ledger/internal/audit/domain"
	"github.com/carbonconstruct/ledger/internal/config"
	"github.com/carbonconstruct/ledger/internal/observability/metrics"
	"github.com/carbonconstruct/ledger/internal/report/domain"
	"github.com/carbonconstruct/ledger/internal/report/pdf"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const recentLimit = 10

const ngerMethodologyStatement = "Emissions calculated using NGER (Measurement) Determination 2008 methods. " +
	"Operational factors from National Greenhouse Accounts Factors 2024. " +
	"Material factors from NGER Materials Database v2025.1. " +
	"All calculations logged with factor sources for audit trail."

type Params struct {
	fx.In

	Config   config.Config
	Log      *zap.Logger
	Audit    auditdomain.Service
	Metrics  *metrics.Metrics
	Renderer *pdf.Renderer
}

type Service struct {
	cfg      config.Config
	log      *zap.Logger
	audit    auditdomain.Service
	metrics  *metrics.Metrics
	renderer *pdf.Renderer
}

func New(p Params) domain.Service {
	return &Service{
		cfg:      p.Config,
		log:      p.Log.Named("report.service"),
		audit:    p.Audit,
		metrics:  p.Metrics,
		renderer: p.Renderer,
	}
}

func (s *Service) ProjectSummary(ctx context.Context, projectID string) (domain.ProjectSummary, error) {
	projectID = strings.TrimSpace(projectID)

	aggregates, err := s.audit.Aggregate(ctx, projectID)
	if err != nil {
		return domain.ProjectSummary{}, err
	}

	recent, err := s.audit.List(ctx, auditdomain.ListRecordsRequest{
		ProjectID: projectID,
		Limit:     recentLimit,
	})
	if err != nil {
		return domain.ProjectSummary{}, err
	}

	var totalKg float64
	breakdown := make(map[string]domain.ActivityBreakdown, len(aggregates))
	for _, agg := range aggregates {
		totalKg += agg.TotalKgCO2e
		entry := domain.ActivityBreakdown{
			Count:  agg.Count,
			CO2eKg: round2(agg.TotalKgCO2e),
		}
		if agg.AvgUncertaintyPct != nil {
			avg := round1(*agg.AvgUncertaintyPct)
			entry.UncertaintyPct = &avg
		}
		breakdown[agg.ActivityType] = entry
	}

	recentCalculations := make([]domain.RecentCalculation, 0, len(recent))
	for _, record := range recent {
		recentCalculations = append(recentCalculations, domain.RecentCalculation{
			Timestamp:   record.Timestamp,
			Activity:    record.ActivityType,
			Description: record.ItemDescription,
			CO2eKg:      round2(record.ResultKgCO2e),
		})
	}

	return domain.ProjectSummary{
		ProjectID:          projectID,
		TotalCO2eKg:        round2(totalKg),
		TotalCO2eTonnes:    round2(totalKg / 1000),
		Breakdown:          breakdown,
		RecentCalculations: recentCalculations,
		Timestamp:          time.Now().UTC(),
		Compliance:         domain.ComplianceSummary,
	}, nil
}

func (s *Service) NGERExport(ctx context.Context, projectID string) (domain.NGERReport, error) {
	summary, err := s.ProjectSummary(ctx, projectID)
	if err != nil {
		return domain.NGERReport{}, err
	}

	trail, err := s.audit.List(ctx, auditdomain.ListRecordsRequest{ProjectID: summary.ProjectID})
	if err != nil {
		return domain.NGERReport{}, err
	}

	entries := make([]domain.CalculationLogEntry, 0, len(trail))
	for _, record := range trail {
		entries = append(entries, domain.CalculationLogEntry{
			Timestamp:      record.Timestamp,
			ActivityType:   record.ActivityType,
			Description:    record.ItemDescription,
			Quantity:       record.Quantity,
			Unit:           record.Unit,
			EmissionFactor: record.FactorApplied,
			FactorSource:   record.FactorSource,
			ResultKgCO2e:   record.ResultKgCO2e,
			UncertaintyPct: record.UncertaintyPct,
		})
	}

	now := time.Now().UTC()
	report := domain.NGERReport{
		ReportMetadata: domain.ReportMetadata{
			ProjectID:           summary.ProjectID,
			GeneratedAt:         now,
			ReportingYear:       now.Year(),
			Software:            fmt.Sprintf("%s v%s", s.cfg.AppName, s.cfg.AppVersion),
			ComplianceFramework: domain.ComplianceFrameworkNGER,
		},
		EmissionsSummary: domain.EmissionsSummary{
			TotalCO2eTonnes: summary.TotalCO2eTonnes,
			Scope1:          summary.Breakdown[auditdomain.ActivityFuel].CO2eKg / 1000,
			Scope2:          0,
			Scope3: (summary.Breakdown[auditdomain.ActivityMaterial].CO2eKg +
				summary.Breakdown[auditdomain.ActivityWaste].CO2eKg) / 1000,
		},
		CalculationLog:       entries,
		MethodologyStatement: ngerMethodologyStatement,
	}

	s.metrics.RecordReportExport(ctx, "nger-json")
	return report, nil
}

func (s *Service) NCCExport(ctx context.Context, projectID string) (domain.NCCReport, error) {
	summary, err := s.ProjectSummary(ctx, projectID)
	if err != nil {
		return domain.NCCReport{}, err
	}

	report := domain.NCCReport{
		ProjectID:   summary.ProjectID,
		ReportType:  domain.ComplianceSummary,
		GeneratedAt: time.Now().UTC(),
		LifeCycleStages: domain.LifeCycleStages{
			A1A3ProductStage: domain.LifeCycleStage{
				Description: "Material extraction, transport, manufacturing",
				CO2eKg:      summary.Breakdown[auditdomain.ActivityMaterial].CO2eKg,
				DataQuality: "NGER Materials Database v2025.1",
			},
			A4Transport: domain.LifeCycleStage{
				Description: "Transport to site",
				CO2eKg:      summary.Breakdown["transport"].CO2eKg,
				DataQuality: "NGER Transport factors",
			},
			A5Construction: domain.LifeCycleStage{
				Description: "Construction process",
				CO2eKg:      summary.Breakdown[auditdomain.ActivityFuel].CO2eKg,
				DataQuality: "NGER Scope 1 factors",
			},
			CEndOfLife: domain.LifeCycleStage{
				Description: "Waste disposal",
				CO2eKg:      summary.Breakdown[auditdomain.ActivityWaste].CO2eKg,
				DataQuality: "NGER Waste DOC method",
			},
		},
		TotalEmbodiedCarbonKg: summary.TotalCO2eKg,
		ComplianceStatus:      "Calculated per NCC 2025 requirements",
		Methodology:           "AS/NZS ISO 14040:2021 Life cycle assessment - Principles and framework",
	}

	s.metrics.RecordReportExport(ctx, "ncc-summary")
	return report, nil
}

func (s *Service) Methodology(ctx context.Context, projectID string) (domain.MethodologyStatement, error) {
	trail, err := s.audit.List(ctx, auditdomain.ListRecordsRequest{ProjectID: strings.TrimSpace(projectID)})
	if err != nil {
		return domain.MethodologyStatement{}, err
	}

	seen := make(map[string]struct{}, len(trail))
	sources := make([]string, 0, len(trail))
	for _, record := range trail {
		if _, ok := seen[record.FactorSource]; ok {
			continue
		}
		seen[record.FactorSource] = struct{}{}
		sources = append(sources, record.FactorSource)
	}
	sort.Strings(sources)

	statement := domain.MethodologyStatement{
		ProjectID:            strings.TrimSpace(projectID),
		CalculationFramework: domain.CalculationFramework,
		FactorSources:        sources,
		MethodsApplied: []string{
			"NGER Method 1 - Fuel combustion (Scope 1)",
			"NGER Materials Database v2025.1 - Embodied carbon (A1-A3)",
			"NGER Waste Method 2 - DOC method for timber waste",
			"State-specific electricity factors (Scope 2)",
		},
		DataQuality: map[string]string{
			"Tier 1": "Supplier-specific data with EPDs",
			"Tier 2": "Industry-average data from NGER database",
			"Tier 3": "Generic default factors",
		},
		AuditTrail:  fmt.Sprintf("%d calculations logged with timestamps and factor sources", len(trail)),
		Uncertainty: "Quantified per NGER guidelines (5-20% depending on data tier)",
		GeneratedAt: time.Now().UTC(),
	}

	return statement, nil
}

func (s *Service) MethodologyPDF(ctx context.Context, projectID string) ([]byte, error) {
	statement, err := s.Methodology(ctx, projectID)
	if err != nil {
		return nil, err
	}

	summary, err := s.ProjectSummary(ctx, projectID)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderer.RenderMethodology(statement, summary)
	if err != nil {
		return nil, err
	}

	s.metrics.RecordReportExport(ctx, "methodology-pdf")
	s.log.Info("methodology statement rendered",
		zap.String("project_id", statement.ProjectID),
		zap.Int("bytes", len(doc)),
	)

	return doc, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
