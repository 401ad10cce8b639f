package report

import (
	"go.uber.org/fx"

	"github.com/HenryKun55/ponto/internal/report/service"
)

var Module = fx.Module("report",
	fx.Provide(service.NewService),
)
