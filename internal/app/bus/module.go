package bus

import (
	"go.uber.org/fx"

	"tlog/internal/config/logger"
)

// BufferSize is the capacity of each subscriber channel
const BufferSize = 256

// Module provides bus for dependency injection
var Module = fx.Module("bus",
	fx.Provide(func(log logger.Logger) Bus {
		return New(BufferSize, log.WithComponent("BUS"))
	}),
)
