package main

import (
	"github.com/carbonconstruct/ledger/internal/config"
	"github.com/carbonconstruct/ledger/internal/migration"
	"github.com/carbonconstruct/ledger/internal/observability"
	"github.com/carbonconstruct/ledger/internal/server"
	"github.com/carbonconstruct/ledger/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		db.Module,
		migration.Module,
		server.Module,
	)

	app.Run()
}
