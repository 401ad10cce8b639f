package main

import (
	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/HenryKun55/ponto/internal/clock"
	"github.com/HenryKun55/ponto/internal/config"
	"github.com/HenryKun55/ponto/internal/events"
	"github.com/HenryKun55/ponto/internal/geo"
	"github.com/HenryKun55/ponto/internal/migration"
	"github.com/HenryKun55/ponto/internal/observability/logger"
	"github.com/HenryKun55/ponto/internal/report"
	"github.com/HenryKun55/ponto/internal/seed"
	"github.com/HenryKun55/ponto/internal/server"
	"github.com/HenryKun55/ponto/internal/timeentry"
	"github.com/HenryKun55/ponto/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() (*snowflake.Node, error) {
			return snowflake.NewNode(1)
		}),
		db.Module,
		fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureDemoEntries(conn, cfg)
		}),
		clock.Module,
		events.Module,
		geo.Module,
		timeentry.Module,
		report.Module,
		server.Module,
	)
	app.Run()
}
