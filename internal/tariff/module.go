package tariff

import "go.uber.org/fx"

// Module exposes the tariff catalog to the fx graph.
var Module = fx.Provide(Default)
