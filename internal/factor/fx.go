package factor

import (
	"github.com/carbonconstruct/ledger/internal/factor/repository"
	"github.com/carbonconstruct/ledger/internal/factor/service"
	"go.uber.org/fx"
)

var Module = fx.Module("factor.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
