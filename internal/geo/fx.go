package geo

import "go.uber.org/fx"

var Module = fx.Module("geo",
	fx.Provide(
		fx.Annotate(NewClient, fx.As(new(Service))),
	),
)
