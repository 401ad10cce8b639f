package migration

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRunMigrations(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:migrate?mode=memory&cache=shared"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}

	if err := RunMigrations(sqlDB); err != nil {
		t.Fatalf("run migrations: %v", err)
	}
	// Running twice must be a no-op.
	if err := RunMigrations(sqlDB); err != nil {
		t.Fatalf("rerun migrations: %v", err)
	}

	for _, table := range []string{"time_entries", "geo_snapshots", "punch_events", "schema_migrations"} {
		var count int64
		if err := db.Table(table).Count(&count).Error; err != nil {
			t.Fatalf("expected table %s: %v", table, err)
		}
	}

	var applied int64
	if err := db.Table("schema_migrations").Count(&applied).Error; err != nil {
		t.Fatalf("count applied: %v", err)
	}
	if applied != 1 {
		t.Fatalf("expected 1 applied migration, got %d", applied)
	}
}
