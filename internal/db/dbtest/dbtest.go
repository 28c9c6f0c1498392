// Package dbtest provides throwaway databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	database "radio-charts/internal/db"
)

// SetupInMemoryDB returns a migrated Client backed by a private in-memory
// SQLite database that disappears when the test ends.
func SetupInMemoryDB(t testing.TB) *database.Client {
	t.Helper()

	// A unique name keeps tests from sharing the cached in-memory database.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	d, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := d.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	client := &database.Client{DB: d}
	if err := client.AutoMigrate(); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return client
}
