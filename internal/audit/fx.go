package audit

import (
	"github.com/carbonconstruct/ledger/internal/audit/repository"
	"github.com/carbonconstruct/ledger/internal/audit/service"
	"go.uber.org/fx"
)

var Module = fx.Module("audit.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
