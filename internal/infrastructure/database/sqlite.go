package database

import (
	"github.com/sangkips/salesdocs-api/internal/config"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func sqliteDialector(cfg *config.DatabaseConfig) gorm.Dialector {
	return sqlite.Open(cfg.DSN())
}
