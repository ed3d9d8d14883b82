package database

import (
	"fmt"
	"log"

	"github.com/sangkips/salesdocs-api/internal/config"
	"github.com/sangkips/salesdocs-api/internal/domain/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured driver and applies pool settings.
// Unique violations surface as gorm.ErrDuplicatedKey on every driver.
func Open(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case "postgres":
		dialector = postgresDialector(cfg)
	case "mysql":
		dialector = mysqlDialector(cfg)
	case "sqlite", "":
		dialector = sqliteDialector(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying SQL DB to set connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	if cfg.Driver == "sqlite" || cfg.Driver == "" {
		// sqlite serialises writers; one connection avoids "database is locked"
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	log.Printf("Successfully connected to %s database", driverName(cfg.Driver))
	return db, nil
}

// Close releases the underlying connection pool
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB) error {
	log.Println("Running database migrations...")

	err := db.AutoMigrate(Models()...)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	log.Println("Database migrations completed successfully")
	return nil
}

// Models lists every persisted entity in dependency order
func Models() []interface{} {
	return []interface{}{
		&entity.Customer{},

		// Sales documents
		&entity.Quotation{},
		&entity.QuotationItem{},
		&entity.Invoice{},
		&entity.InvoiceItem{},
		&entity.Purchase{},

		// System entities
		&entity.IdempotencyKey{},
	}
}

func driverName(driver string) string {
	if driver == "" {
		return "sqlite"
	}
	return driver
}
