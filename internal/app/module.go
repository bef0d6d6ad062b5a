package app

import (
	"go.uber.org/fx"

	"tlog/internal/app/bus"
	"tlog/internal/app/cli"
	"tlog/internal/app/generator"
	"tlog/internal/app/plan"
	"tlog/internal/app/report"
	"tlog/internal/app/rules"
	"tlog/internal/app/ui/wire"
)

var Module = fx.Options(
	bus.Module,
	rules.Module,
	plan.Module,
	report.Module,
	generator.Module,
	wire.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
