package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	calculations  metric.Int64Counter
	factorLookups metric.Int64Counter
	reportExports metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	return provider, nil
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch strings.ToLower(strings.TrimSpace(protocol)) {
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}

// New builds the application instruments on the configured provider.
func New(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter("carbonledger")

	calculations, err := meter.Int64Counter("carbonledger_calculations_total",
		metric.WithDescription("Calculations performed, by activity type"))
	if err != nil {
		return nil, err
	}

	factorLookups, err := meter.Int64Counter("carbonledger_factor_lookups_total",
		metric.WithDescription("Emission factor lookups, by table"))
	if err != nil {
		return nil, err
	}

	reportExports, err := meter.Int64Counter("carbonledger_report_exports_total",
		metric.WithDescription("Regulatory report exports, by format"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		calculations:  calculations,
		factorLookups: factorLookups,
		reportExports: reportExports,
	}, nil
}

func (m *Metrics) RecordCalculation(ctx context.Context, activityType string) {
	if m == nil || m.calculations == nil {
		return
	}
	m.calculations.Add(ctx, 1, metric.WithAttributes(attribute.String("activity_type", activityType)))
}

func (m *Metrics) RecordFactorLookup(ctx context.Context, table string) {
	if m == nil || m.factorLookups == nil {
		return
	}
	m.factorLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("table", table)))
}

func (m *Metrics) RecordReportExport(ctx context.Context, format string) {
	if m == nil || m.reportExports == nil {
		return
	}
	m.reportExports.Add(ctx, 1, metric.WithAttributes(attribute.String("format", format)))
}
