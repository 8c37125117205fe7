package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// RunMigrations applies versioned migrations from the embedded migrations
// directory. Idempotent and safe to run on every startup.
//
// Migration files follow the naming convention:
//
//	000001_description.up.sql   - applies the migration
//	000001_description.down.sql - reverts the migration
func RunMigrations(database *sql.DB) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to load embedded migrations: %w", err)
	}
	driver, err := postgres.WithInstance(database, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			slog.Info("database schema is up to date", slog.String("component", "db_migrate"))
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil {
		slog.Warn("could not determine migration version", slog.Any("error", err), slog.String("component", "db_migrate"))
		return nil
	}
	if dirty {
		return fmt.Errorf("database is in dirty state at version %d - manual intervention required", version)
	}

	slog.Info("migrations applied successfully",
		slog.Uint64("version", uint64(version)),
		slog.String("component", "db_migrate"))
	return nil
}
