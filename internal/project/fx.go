package project

import (
	"github.com/carbonconstruct/ledger/internal/project/repository"
	"github.com/carbonconstruct/ledger/internal/project/service"
	"go.uber.org/fx"
)

var Module = fx.Module("project.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
