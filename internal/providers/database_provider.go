package providers

import (
	"carhoot/internal/models"
	"carhoot/internal/structures"
	"database/sql"
	"fmt"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	"strings"
)

// NewDatabaseProvider opens the catalog database and migrates its tables.
func NewDatabaseProvider(conf *structures.Config, logger Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch conf.Database.Driver {
	case "postgres":
		dialector = postgres.New(postgres.Config{
			DSN:                  conf.Database.DSN,
			PreferSimpleProtocol: true,
		})
	case "sqlite", "":
		dialector = sqlite.Open(conf.Database.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", conf.Database.Driver)
	}

	level := gormlogger.Silent
	if conf.Debug {
		level = gormlogger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open %s database: %w", conf.Database.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql interface: %w", err)
	}
	if err = sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	// every connection to a private in-memory sqlite sees its own empty database
	if conf.Database.Driver != "postgres" && strings.Contains(conf.Database.DSN, ":memory:") {
		sqlDB.SetMaxOpenConns(1)
	}

	if err = db.AutoMigrate(&models.Vehicle{}, &models.RankingEntry{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	logger.Infof(TypeApp, "Database ready (%s)", conf.Database.Driver)
	return db, nil
}

// NewSQLHandle exposes the pool behind db for health checks.
func NewSQLHandle(db *gorm.DB) (*sql.DB, error) {
	return db.DB()
}
