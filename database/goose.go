package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
)

// MigrateUpDir applies the SQL migrations found in migrationsDir. It builds
// the sqlite fixtures that column introspection is tested against.
func MigrateUpDir(ctx context.Context, db *sql.DB, migrationsDir string) error {
	// Set the database dialect
	err := goose.SetDialect("sqlite3")
	if err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, migrationsDir); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
