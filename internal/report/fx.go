package report

import (
	"github.com/carbonconstruct/ledger/internal/report/pdf"
	"github.com/carbonconstruct/ledger/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(pdf.NewRenderer),
	fx.Provide(service.New),
)
