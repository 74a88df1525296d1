// Package gorm opens the main application database.
package gorm

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/alphacoop/gateway-settings-api/configs"
)

const (
	dbTypePostgresql = "psql"
	dbTypeMysql      = "mysql"
	dbTypeSqlite     = "sqlite"
)

func New(cfg *configs.Config) (*gorm.DB, error) {
	var d gorm.Dialector

	switch cfg.DatabaseType {
	case dbTypePostgresql:
		d = postgres.Open(cfg.DatabaseDSN)
	case dbTypeMysql:
		d = mysql.Open(cfg.DatabaseDSN)
	case dbTypeSqlite:
		d = sqlite.Open(cfg.DatabaseDSN)
	default:
		return nil, fmt.Errorf("database type '%s' not supported", cfg.DatabaseType)
	}

	options := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(d, options)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Close(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		panic("unable to close database")
	}
	if err := sqlDB.Close(); err != nil {
		panic("unable to close database")
	}
}
