// Package db opens the database connections used by the store
package db

import (
	"errors"
	"fmt"
	"os"

	"bitwise74/social-api/config"
	"bitwise74/social-api/internal/model"
	"bitwise74/social-api/pkg/util"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// New opens the SQL database selected by cfg and migrates every table
func New(cfg config.Storage) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		// If running in a container don't allow the sqlite file to be created.
		// The host should instead mount it using volumes
		if util.InContainer() {
			if _, err := os.Stat(cfg.DSN); errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("SQLite database file %s not mounted, please use volumes to mount it", cfg.DSN)
			}
		}

		dialector = sqlite.Open(cfg.DSN)
	case "postgres":
		dialector = postgres.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported SQL driver %q", cfg.Driver)
	}

	return Open(dialector)
}

// Open connects through dialector and runs the migrations
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database, %w", err)
	}

	if err := db.AutoMigrate(model.User{}, model.Relationship{}, model.Article{}, model.Comment{}); err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
