package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	auditdomain "github.com/carbonconstruct/ledger/internal/audit/domain"
	"github.com/carbonconstruct/ledger/internal/calculation/domain"
	"github.com/carbonconstruct/ledger/internal/config"
	factordomain "github.com/carbonconstruct/ledger/internal/factor/domain"
	"github.com/carbonconstruct/ledger/internal/observability/metrics"
	projectdomain "github.com/carbonconstruct/ledger/internal/project/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	Rules   *config.RulesHolder
	Factors factordomain.Repository
	Audit   auditdomain.Repository
	Metrics *metrics.Metrics
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	rules   *config.RulesHolder
	factors factordomain.Repository
	audit   auditdomain.Repository
	metrics *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("calculation.service"),
		rules:   p.Rules,
		factors: p.Factors,
		audit:   p.Audit,
		metrics: p.Metrics,
	}
}

func (s *Service) CalculateFuel(ctx context.Context, req domain.FuelRequest) (domain.FuelResult, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return domain.FuelResult{}, domain.ErrInvalidProjectID
	}
	fuelType := strings.TrimSpace(req.FuelType)
	if fuelType == "" {
		return domain.FuelResult{}, domain.ErrInvalidFuelType
	}
	if req.Quantity <= 0 {
		return domain.FuelResult{}, domain.ErrInvalidQuantity
	}
	state := strings.ToUpper(strings.TrimSpace(req.State))
	if !projectdomain.IsValidState(state) {
		return domain.FuelResult{}, domain.ErrInvalidState
	}

	rules := s.rules.Get()
	if rules.RequiresCombustionContext(fuelType) && req.IsStationary == nil {
		return domain.FuelResult{}, fmt.Errorf("fuel_type %q: %w", fuelType, domain.ErrCombustionContextRequired)
	}

	category := "Transport"
	if req.IsStationary != nil && *req.IsStationary {
		category = "Stationary"
	}

	year := req.Year
	if year == 0 {
		year = time.Now().UTC().Year()
	}

	var result domain.FuelResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		factor, err := s.factors.FindOperational(ctx, tx, factordomain.OperationalKey{
			Scope:    1,
			Category: category,
			FuelType: fuelType,
			Region:   state,
		})
		if err != nil {
			return err
		}
		if factor == nil {
			return fmt.Errorf("no NGER factor for %s (%s) in %s, available states: NSW, VIC, QLD, SA, WA, TAS, NT, ACT: %w",
				fuelType, category, state, factordomain.ErrFactorNotFound)
		}

		co2Kg := req.Quantity * deref(factor.CO2Factor)
		ch4Kg := req.Quantity * deref(factor.CH4Factor)
		n2oKg := req.Quantity * deref(factor.N2OFactor)
		// total_co2e is the authoritative figure; it may include GWP-weighted
		// contributions beyond the three tracked gases, so it is never derived
		// by summing the components.
		co2eKg := req.Quantity * factor.TotalCO2e
		energyGJ := req.Quantity * deref(factor.ECGJPerUnit)

		factorSource := fmt.Sprintf("NGER %d, Table 1, %s (%s), %s, Method: %s",
			year, factor.FuelType, category, factor.Region, factor.NGERMethod)

		uncertainty := 5.0
		record := auditdomain.CalculationRecord{
			ProjectID:       projectID,
			Timestamp:       time.Now().UTC(),
			ActivityType:    auditdomain.ActivityFuel,
			ItemDescription: fmt.Sprintf("%s (%s)", fuelType, category),
			Quantity:        req.Quantity,
			Unit:            req.Unit,
			FactorApplied:   factor.TotalCO2e,
			FactorSource:    factorSource,
			ResultKgCO2e:    co2eKg,
			UncertaintyPct:  &uncertainty,
			Metadata: datatypes.JSONMap{
				"co2_kg":    co2Kg,
				"ch4_kg":    ch4Kg,
				"n2o_kg":    n2oKg,
				"energy_gj": energyGJ,
			},
		}
		if err := s.audit.Insert(ctx, tx, &record); err != nil {
			return err
		}

		result = domain.FuelResult{
			CO2eKg: round2(co2eKg),
			Breakdown: domain.GasBreakdown{
				CO2Kg: round2(co2Kg),
				CH4Kg: round2(ch4Kg),
				N2OKg: round6(n2oKg),
			},
			EnergyGJ:       round2(energyGJ),
			FactorSource:   factorSource,
			UncertaintyPct: uncertainty,
			Compliance:     domain.ComplianceFuel,
		}
		return nil
	})
	if err != nil {
		return domain.FuelResult{}, err
	}

	s.metrics.RecordCalculation(ctx, auditdomain.ActivityFuel)
	s.metrics.RecordFactorLookup(ctx, "nger_operational_factors")
	s.log.Info("fuel calculation recorded",
		zap.String("project_id", projectID),
		zap.String("fuel_type", fuelType),
		zap.String("category", category),
		zap.Float64("co2e_kg", result.CO2eKg),
	)

	return result, nil
}

func (s *Service) CalculateMaterial(ctx context.Context, req domain.MaterialRequest) (domain.MaterialResult, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return domain.MaterialResult{}, domain.ErrInvalidProjectID
	}
	materialType := strings.TrimSpace(req.MaterialType)
	if materialType == "" {
		return domain.MaterialResult{}, domain.ErrInvalidMaterial
	}
	if req.Quantity <= 0 {
		return domain.MaterialResult{}, domain.ErrInvalidQuantity
	}

	rules := s.rules.Get()
	tier := strings.ToLower(strings.TrimSpace(req.DataQuality))
	if tier == "" {
		tier = "default"
	}
	if _, ok := rules.TierFallbacks[tier]; !ok {
		return domain.MaterialResult{}, fmt.Errorf("data_quality %q: %w", req.DataQuality, domain.ErrInvalidDataQuality)
	}

	var result domain.MaterialResult
	err := s.db.Transaction(func(tx *gorm.DB) error {
		factor, err := s.factors.FindMaterial(ctx, tx, materialType)
		if err != nil {
			return err
		}
		if factor == nil {
			return fmt.Errorf("material %q not found, use the materials listing to see available types: %w",
				materialType, factordomain.ErrFactorNotFound)
		}

		// Tier selection walks the fallback chain over per-unit values only;
		// per-kg variants are a different basis and never substitute.
		var perUnit float64
		for _, field := range rules.FallbackChain(tier) {
			if v := factor.PerUnitValue(field); v != nil {
				perUnit = *v
				break
			}
		}

		grossKg := req.Quantity * perUnit
		storageKg := req.Quantity * factor.CarbonStoragePerUnit
		// Storage is signed, negative for biogenic materials, so net is an
		// addition rather than a subtraction.
		netKg := grossKg + storageKg

		factorSource := fmt.Sprintf("NGER Materials Database v2025.1, %s, Data Quality: %s, Factor: %s",
			factor.MaterialType, factor.DataQuality, tier)

		record := auditdomain.CalculationRecord{
			ProjectID:       projectID,
			Timestamp:       time.Now().UTC(),
			ActivityType:    auditdomain.ActivityMaterial,
			ItemDescription: factor.MaterialType,
			Quantity:        req.Quantity,
			Unit:            req.Unit,
			FactorApplied:   perUnit,
			FactorSource:    factorSource,
			ResultKgCO2e:    netKg,
			UncertaintyPct:  factor.UncertaintyPct,
			Metadata: datatypes.JSONMap{
				"gross_co2e_kg":     grossKg,
				"carbon_storage_kg": storageKg,
				"data_quality_tier": factor.DataQuality,
			},
		}
		if err := s.audit.Insert(ctx, tx, &record); err != nil {
			return err
		}

		result = domain.MaterialResult{
			GrossCO2eKg:     round2(grossKg),
			CarbonStorageKg: round2(storageKg),
			NetCO2eKg:       round2(netKg),
			FactorSource:    factorSource,
			UncertaintyPct:  factor.UncertaintyPct,
			DataQuality:     factor.DataQuality,
			Compliance:      domain.ComplianceMaterial,
		}
		return nil
	})
	if err != nil {
		return domain.MaterialResult{}, err
	}

	s.metrics.RecordCalculation(ctx, auditdomain.ActivityMaterial)
	s.metrics.RecordFactorLookup(ctx, "nger_materials")
	s.log.Info("material calculation recorded",
		zap.String("project_id", projectID),
		zap.String("material_type", materialType),
		zap.Float64("net_co2e_kg", result.NetCO2eKg),
	)

	return result, nil
}

func (s *Service) CalculateWaste(ctx context.Context, req domain.WasteRequest) (domain.WasteResult, error) {
	projectID := strings.TrimSpace(req.ProjectID)
	if projectID == "" {
		return domain.WasteResult{}, domain.ErrInvalidProjectID
	}
	wasteType := strings.TrimSpace(req.WasteType)
	if wasteType == "" {
		return domain.WasteResult{}, domain.ErrInvalidWasteType
	}
	if req.Quantity <= 0 {
		return domain.WasteResult{}, domain.ErrInvalidQuantity
	}
	unit := strings.TrimSpace(req.Unit)
	if unit == "" {
		unit = "t"
	}

	bucket := s.rules.Get().ClassifyWaste(wasteType)

	// Quantity is tonnes of waste, the factor is t CO2e per tonne; the result
	// is reported in kilograms.
	co2eKg := req.Quantity * 1000 * bucket.FactorTCO2ePerT

	uncertainty := bucket.UncertaintyPct
	record := auditdomain.CalculationRecord{
		ProjectID:       projectID,
		Timestamp:       time.Now().UTC(),
		ActivityType:    auditdomain.ActivityWaste,
		ItemDescription: wasteType,
		Quantity:        req.Quantity,
		Unit:            unit,
		FactorApplied:   bucket.FactorTCO2ePerT,
		FactorSource:    bucket.Method,
		ResultKgCO2e:    co2eKg,
		UncertaintyPct:  &uncertainty,
		Metadata: datatypes.JSONMap{
			"method": bucket.Method,
		},
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		return s.audit.Insert(ctx, tx, &record)
	})
	if err != nil {
		return domain.WasteResult{}, err
	}

	s.metrics.RecordCalculation(ctx, auditdomain.ActivityWaste)
	s.log.Info("waste calculation recorded",
		zap.String("project_id", projectID),
		zap.String("waste_type", wasteType),
		zap.String("method", bucket.Method),
		zap.Float64("co2e_kg", co2eKg),
	)

	return domain.WasteResult{
		CO2eKg:          round2(co2eKg),
		FactorSource:    bucket.Method,
		FactorTCO2ePerT: bucket.FactorTCO2ePerT,
		UncertaintyPct:  bucket.UncertaintyPct,
		Compliance:      domain.ComplianceWaste,
	}, nil
}

func deref(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
