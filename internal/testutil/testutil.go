// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"strings"
	"testing"

	"github.com/sangkips/salesdocs-api/internal/config"
	"github.com/sangkips/salesdocs-api/internal/infrastructure/database"
	"gorm.io/gorm"
)

// NewTestDB opens a migrated in-memory sqlite database private to t
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	db, err := database.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		Path:   "file:" + name + "?mode=memory&cache=shared",
	}, false)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		_ = database.Close(db)
	})
	return db
}
