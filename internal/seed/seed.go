// Package seed fills an empty database with demo punches so the
// dashboard has data to render on a fresh local install.
package seed

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HenryKun55/ponto/internal/config"
	"github.com/HenryKun55/ponto/internal/datekey"
	"github.com/HenryKun55/ponto/internal/timeentry/domain"
)

const demoDays = 25

// EnsureDemoEntries seeds a month of demo punches for the configured
// demo employee. A database that already holds any entry is left alone.
func EnsureDemoEntries(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if !cfg.Bootstrap.SeedDemoEntries || cfg.IsProduction() {
		return nil
	}
	employee := cfg.Bootstrap.DemoEmployee
	if employee == "" {
		return nil
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&domain.Entry{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		start := datekey.FromTime(time.Now().UTC()).AddDays(-(demoDays - 1))
		for i := 0; i < demoDays; i++ {
			day := start.AddDays(i)
			entry := demoEntry(node, employee, day)
			for _, snap := range entry.Snapshots() {
				if err := tx.Create(snap).Error; err != nil {
					return err
				}
			}
			if err := tx.Omit(clause.Associations).Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// demoEntry builds one full worked day: a morning block starting around
// 08:00 and an afternoon block ending around 17:00, with real times a
// few seconds after the submitted ones.
func demoEntry(node *snowflake.Node, employee string, day datekey.Key) domain.Entry {
	base := day.Time()

	morningIn := base.Add(time.Duration(8)*time.Hour + time.Duration(rand.Intn(60))*time.Minute)
	morningOut := base.Add(12 * time.Hour)
	afternoonIn := base.Add(13 * time.Hour)
	afternoonOut := base.Add(time.Duration(17)*time.Hour + time.Duration(rand.Intn(60))*time.Minute)

	morningInReal := morningIn.Add(time.Second)
	morningOutReal := morningOut.Add(time.Second)
	afternoonInReal := afternoonIn.Add(time.Second)
	afternoonOutReal := afternoonOut.Add(2 * time.Second)

	inLocation := demoSnapshot(node, morningInReal)
	outLocation := demoSnapshot(node, afternoonOutReal)

	return domain.Entry{
		ID:       node.Generate(),
		Employee: employee,
		Date:     day.String(),

		MorningIn:    &morningIn,
		MorningOut:   &morningOut,
		AfternoonIn:  &afternoonIn,
		AfternoonOut: &afternoonOut,

		MorningInReal:    &morningInReal,
		MorningOutReal:   &morningOutReal,
		AfternoonInReal:  &afternoonInReal,
		AfternoonOutReal: &afternoonOutReal,

		MorningInLocationID:    &inLocation.ID,
		AfternoonOutLocationID: &outLocation.ID,
		MorningInLocation:      inLocation,
		AfternoonOutLocation:   outLocation,

		CreatedAt: afternoonOutReal.Add(10 * time.Second),
		UpdatedAt: afternoonOutReal.Add(10 * time.Second),
	}
}

func demoSnapshot(node *snowflake.Node, capturedAt time.Time) *domain.GeoSnapshot {
	return &domain.GeoSnapshot{
		ID:          node.Generate(),
		IP:          "179.127.35.225",
		City:        "Belo Jardim",
		Region:      "State of Pernambuco",
		RegionCode:  "PE",
		Country:     "Brazil",
		CountryCode: "BR",
		Postal:      "55150-000",
		Latitude:    -8.3357786,
		Longitude:   -36.4235973,
		Timezone:    "America/Recife",
		ISP:         "DIGITAL TECNOLOGIA TELECOMUNICACAO LTDA",
		Org:         "DIGITAL TECNOLOGIA TELECOMUNICACAO LTDA",
		Raw:         datatypes.JSONMap{"ip": "179.127.35.225", "success": true},
		CapturedAt:  capturedAt,
	}
}
