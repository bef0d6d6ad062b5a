package rules

import "go.uber.org/fx"

// Module provides the classifier compiled from the configured rules
var Module = fx.Module("rules",
	fx.Provide(NewFromConfig),
)
