// Package database bootstraps the process-wide GORM connection. The
// connection is established once at startup and handed to repositories;
// a failure here is fatal for the service.
package database

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"userbase/internal/models"
)

// Connect opens the database named by dsn and migrates the user table.
// DSNs with a postgres:// or postgresql:// scheme use the Postgres driver;
// anything else is treated as a SQLite path (including the in-memory
// "file::memory:?cache=shared" form used in tests).
func Connect(dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	return db, nil
}
