package infra

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var schemaFS embed.FS

//go:embed seed/*.sql
var seedFS embed.FS

const seedMigrationsTable = "seed_migrations"

// Migrate applies the schema migrations. With seed set it also applies the
// development fixtures, tracked in their own migrations table.
func Migrate(db *sql.DB, seed bool) error {
	if err := runMigrations(db, schemaFS, "migrations", pgxmigrate.DefaultMigrationsTable); err != nil {
		return fmt.Errorf("schema migrations: %w", err)
	}
	if !seed {
		return nil
	}
	if err := runMigrations(db, seedFS, "seed", seedMigrationsTable); err != nil {
		return fmt.Errorf("seed migrations: %w", err)
	}
	return nil
}

func runMigrations(db *sql.DB, fsys embed.FS, dir, table string) error {
	driver, err := pgxmigrate.WithInstance(db, &pgxmigrate.Config{MigrationsTable: table})
	if err != nil {
		return fmt.Errorf("init pgx driver: %w", err)
	}

	src, err := iofs.New(fsys, dir)
	if err != nil {
		return fmt.Errorf("iofs source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "pgx5", driver)
	if err != nil {
		return fmt.Errorf("migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("m.Up: %w", err)
	}
	return nil
}
