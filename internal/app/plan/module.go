package plan

import "go.uber.org/fx"

// Module provides the plan runner
var Module = fx.Module("plan",
	fx.Provide(NewRunner),
)
