package report

import (
	"context"

	"go.uber.org/fx"

	"tlog/internal/app/bus"
)

// Module provides the error reporter and flushes it on shutdown
var Module = fx.Module("report",
	fx.Provide(New),
	fx.Invoke(register),
)

func register(lc fx.Lifecycle, r Reporter, b bus.Bus) {
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			r.Watch(ctx, b)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			r.Flush()

			return nil
		},
	})
}
