package migration

import (
	auditdomain "github.com/carbonconstruct/ledger/internal/audit/domain"
	"github.com/carbonconstruct/ledger/internal/config"
	factordomain "github.com/carbonconstruct/ledger/internal/factor/domain"
	projectdomain "github.com/carbonconstruct/ledger/internal/project/domain"
	"github.com/carbonconstruct/ledger/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			err := conn.AutoMigrate(
				&factordomain.OperationalFactor{},
				&factordomain.MaterialFactor{},
				&projectdomain.Project{},
				&auditdomain.CalculationRecord{},
			)
			if err != nil {
				return err
			}
		}

		return seed.EnsureFactorTables(conn)
	}),
)
