package timeentry

import (
	"go.uber.org/fx"

	"github.com/HenryKun55/ponto/internal/timeentry/repository"
	"github.com/HenryKun55/ponto/internal/timeentry/service"
)

var Module = fx.Module("timeentry",
	fx.Provide(repository.NewEntryStore),
	fx.Provide(service.NewService),
)
