package database

import (
	"github.com/sangkips/salesdocs-api/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func mysqlDialector(cfg *config.DatabaseConfig) gorm.Dialector {
	return mysql.Open(cfg.DSN())
}
