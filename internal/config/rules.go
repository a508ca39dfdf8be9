package config

import (
	"errors"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// FuelRule marks a fuel type whose emission factors depend on the combustion
// context, so callers must state it explicitly instead of getting a default.
type FuelRule struct {
	FuelType                 string `mapstructure:"fuelType"`
	RequireCombustionContext bool   `mapstructure:"requireCombustionContext"`
}

// WasteBucket maps free-text waste descriptions onto a disposal factor by
// keyword match. Buckets are evaluated in order; first match wins.
type WasteBucket struct {
	Keywords        []string `mapstructure:"keywords"`
	FactorTCO2ePerT float64  `mapstructure:"factorTCO2ePerTonne"`
	Method          string   `mapstructure:"method"`
	UncertaintyPct  float64  `mapstructure:"uncertaintyPct"`
}

// CalculationRules carries the regulatory special-case tables used by the
// calculation engine. The defaults reproduce the NGER 2024 determination;
// a mounted rules.yml can extend them without a code change.
type CalculationRules struct {
	FuelRules     []FuelRule          `mapstructure:"fuelRules"`
	WasteBuckets  []WasteBucket       `mapstructure:"wasteBuckets"`
	DefaultWaste  WasteBucket         `mapstructure:"defaultWaste"`
	TierFallbacks map[string][]string `mapstructure:"tierFallbacks"`
}

func DefaultCalculationRules() CalculationRules {
	return CalculationRules{
		FuelRules: []FuelRule{
			{FuelType: "diesel", RequireCombustionContext: true},
		},
		WasteBuckets: []WasteBucket{
			{
				Keywords:        []string{"timber", "wood", "lumber"},
				FactorTCO2ePerT: 1.5,
				Method:          "NGER Waste Method 2, DOC factor for timber/wood",
				UncertaintyPct:  15.0,
			},
			{
				Keywords:        []string{"concrete"},
				FactorTCO2ePerT: 0.05,
				Method:          "NGER Waste Method 1, Inert waste",
				UncertaintyPct:  10.0,
			},
			{
				Keywords:        []string{"steel", "metal"},
				FactorTCO2ePerT: 0.1,
				Method:          "NGER Waste Method 1, Metal waste",
				UncertaintyPct:  10.0,
			},
		},
		DefaultWaste: WasteBucket{
			FactorTCO2ePerT: 0.2,
			Method:          "NGER Waste Method 1, Generic organic",
			UncertaintyPct:  20.0,
		},
		TierFallbacks: map[string][]string{
			"default": {"default"},
			"min":     {"min", "default"},
			"max":     {"max", "default"},
			"avg":     {"avg", "default"},
		},
	}
}

// RequiresCombustionContext reports whether the fuel needs an explicit
// stationary/transport flag before a factor can be selected.
func (r CalculationRules) RequiresCombustionContext(fuelType string) bool {
	needle := strings.ToLower(strings.TrimSpace(fuelType))
	for _, rule := range r.FuelRules {
		if rule.RequireCombustionContext && strings.ToLower(rule.FuelType) == needle {
			return true
		}
	}
	return false
}

// ClassifyWaste resolves a free-text waste description to a bucket. The
// bucket order is fixed for regulatory compatibility; composite descriptions
// ("steel-reinforced concrete waste") resolve to the earliest matching bucket.
func (r CalculationRules) ClassifyWaste(wasteType string) WasteBucket {
	needle := strings.ToLower(wasteType)
	for _, bucket := range r.WasteBuckets {
		for _, kw := range bucket.Keywords {
			if strings.Contains(needle, strings.ToLower(kw)) {
				return bucket
			}
		}
	}
	return r.DefaultWaste
}

// FallbackChain returns the ordered list of factor fields consulted for a
// data-quality tier. Unknown tiers fall back to the default chain.
func (r CalculationRules) FallbackChain(tier string) []string {
	if chain, ok := r.TierFallbacks[strings.ToLower(strings.TrimSpace(tier))]; ok {
		return chain
	}
	return r.TierFallbacks["default"]
}

// RulesHolder keeps the active rule set behind an atomic swap so reloads
// never tear a calculation in progress.
type RulesHolder struct {
	current atomic.Value // holds CalculationRules
}

func NewRulesHolder(log *zap.Logger) (*RulesHolder, error) {
	v := viper.New()

	v.SetConfigName("rules")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/carbonledger/config")
	v.AddConfigPath("/etc/carbonledger")
	v.AddConfigPath(".")

	v.SetEnvPrefix("CARBONLEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultCalculationRules()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		v.SetDefault("rules.fuelRules", defaults.FuelRules)
		v.SetDefault("rules.wasteBuckets", defaults.WasteBuckets)
		v.SetDefault("rules.defaultWaste", defaults.DefaultWaste)
		v.SetDefault("rules.tierFallbacks", defaults.TierFallbacks)
	}

	var rules CalculationRules
	if err := v.UnmarshalKey("rules", &rules); err != nil {
		return nil, err
	}
	if len(rules.WasteBuckets) == 0 && rules.DefaultWaste.Method == "" {
		rules = defaults
	}
	if err := validateRules(rules); err != nil {
		return nil, err
	}

	holder := &RulesHolder{}
	holder.current.Store(rules)

	reloadLog := log.Named("rules.config")
	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated CalculationRules
		if err := v.UnmarshalKey("rules", &updated); err != nil {
			reloadLog.Error("rules reload failed", zap.Error(err))
			return
		}
		if err := validateRules(updated); err != nil {
			reloadLog.Warn("invalid rules config ignored", zap.Error(err))
			return
		}
		holder.current.Store(updated)
		reloadLog.Info("rules reloaded", zap.String("file", e.Name))
	})

	return holder, nil
}

// NewStaticRulesHolder wraps a fixed rule set, for tests.
func NewStaticRulesHolder(rules CalculationRules) *RulesHolder {
	holder := &RulesHolder{}
	holder.current.Store(rules)
	return holder
}

func (h *RulesHolder) Get() CalculationRules {
	return h.current.Load().(CalculationRules)
}

func validateRules(rules CalculationRules) error {
	for _, bucket := range rules.WasteBuckets {
		if len(bucket.Keywords) == 0 {
			return errors.New("rules.wasteBuckets entries require keywords")
		}
		if bucket.FactorTCO2ePerT <= 0 {
			return errors.New("rules.wasteBuckets factors must be positive")
		}
	}
	if rules.DefaultWaste.FactorTCO2ePerT <= 0 {
		return errors.New("rules.defaultWaste factor must be positive")
	}
	if len(rules.TierFallbacks) == 0 {
		return errors.New("rules.tierFallbacks cannot be empty")
	}
	for tier, chain := range rules.TierFallbacks {
		if len(chain) == 0 {
			return errors.New("rules.tierFallbacks." + tier + " cannot be empty")
		}
		if chain[len(chain)-1] != "default" {
			return errors.New("rules.tierFallbacks." + tier + " must end with default")
		}
	}
	return nil
}
