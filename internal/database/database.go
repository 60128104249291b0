// Package database opens the relational store and runs schema migration.
//
// Two interchangeable backends sit behind the same *gorm.DB handle: SQLite
// for local development and PostgreSQL in production. The choice is made once
// at startup from DATABASE_URL; nothing else in the codebase knows which
// dialect is in use.
package database

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/imLaanui/Financeu-platform-sub000/internal/config"
	"github.com/imLaanui/Financeu-platform-sub000/internal/models"
)

// Connect opens the database selected by the configuration and migrates the
// schema.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if cfg.UsePostgres() {
		dialector = postgres.Open(cfg.DatabaseURL)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	// TranslateError maps driver-specific unique violations to
	// gorm.ErrDuplicatedKey on both backends.
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema for all models.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.PasswordResetToken{},
		&models.LessonProgress{},
		&models.Feedback{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	// Case-insensitive email uniqueness is enforced by the store itself, not
	// only by the pre-insert check in the registration path. Expression
	// indexes work on both SQLite and PostgreSQL.
	err = db.Exec(
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))",
	).Error
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}

	return nil
}
