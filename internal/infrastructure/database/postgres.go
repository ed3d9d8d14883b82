package database

import (
	"github.com/sangkips/salesdocs-api/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func postgresDialector(cfg *config.DatabaseConfig) gorm.Dialector {
	return postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	})
}
