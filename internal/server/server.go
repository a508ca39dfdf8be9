package server

import (
	"context"
	"net/http"
	"time"

	"github.com/carbonconstruct/ledger/internal/audit"
	auditdomain "github.com/carbonconstruct/ledger/internal/audit/domain"
	"github.com/carbonconstruct/ledger/internal/calculation"
	calculationdomain "github.com/carbonconstruct/ledger/internal/calculation/domain"
	"github.com/carbonconstruct/ledger/internal/config"
	"github.com/carbonconstruct/ledger/internal/factor"
	factordomain "github.com/carbonconstruct/ledger/internal/factor/domain"
	"github.com/carbonconstruct/ledger/internal/observability"
	obslogger "github.com/carbonconstruct/ledger/internal/observability/logger"
	obsmetrics "github.com/carbonconstruct/ledger/internal/observability/metrics"
	obstracing "github.com/carbonconstruct/ledger/internal/observability/tracing"
	"github.com/carbonconstruct/ledger/internal/project"
	projectdomain "github.com/carbonconstruct/ledger/internal/project/domain"
	"github.com/carbonconstruct/ledger/internal/report"
	reportdomain "github.com/carbonconstruct/ledger/internal/report/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	factor.Module,
	project.Module,
	audit.Module,
	calculation.Module,
	report.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware(obslogger.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":     "healthy",
			"version":    cfg.AppVersion,
			"compliance": []string{"NGER Act 2007", "NCC 2025"},
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(cfg config.Config, obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(cfg, obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine         *gin.Engine
	cfg            config.Config
	db             *gorm.DB
	factorSvc      factordomain.Service
	projectSvc     projectdomain.Service
	auditSvc       auditdomain.Service
	calculationSvc calculationdomain.Service
	reportSvc      reportdomain.Service
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	DB             *gorm.DB
	FactorSvc      factordomain.Service
	ProjectSvc     projectdomain.Service
	AuditSvc       auditdomain.Service
	CalculationSvc calculationdomain.Service
	ReportSvc      reportdomain.Service
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		db:             p.DB,
		factorSvc:      p.FactorSvc,
		projectSvc:     p.ProjectSvc,
		auditSvc:       p.AuditSvc,
		calculationSvc: p.CalculationSvc,
		reportSvc:      p.ReportSvc,
	}

	svc.registerAPIRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api/v1")

	// -------- Calculator --------
	calculate := api.Group("/calculate")
	{
		calculate.POST("/fuel", s.CalculateFuel)
		calculate.POST("/material", s.CalculateMaterial)
		calculate.POST("/waste", s.CalculateWaste)
		calculate.GET("/materials", s.ListMaterials)
		calculate.GET("/fuels", s.ListFuels)
		calculate.GET("/categories", s.ListCategories)
	}

	// -------- Projects --------
	projects := api.Group("/projects")
	{
		projects.POST("", s.CreateProject)
		projects.GET("", s.ListProjects)
		projects.GET("/:id", s.GetProject)
		projects.GET("/:id/summary", s.GetProjectSummary)
		projects.GET("/:id/audit", s.GetAuditLog)
	}

	// -------- Reports --------
	reports := api.Group("/reports")
	{
		reports.GET("/:id/nger-json", s.ExportNGER)
		reports.GET("/:id/ncc-summary", s.ExportNCC)
		reports.GET("/:id/methodology", s.GetMethodology)
		reports.GET("/:id/methodology.pdf", s.GetMethodologyPDF)
	}
}
