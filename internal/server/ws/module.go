package ws

import "go.uber.org/fx"

// Module provides the event hub and its HTTP handler.
var Module = fx.Provide(NewHub, NewHandler)
