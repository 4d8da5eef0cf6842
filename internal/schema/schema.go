// Package schema creates the student, course and review tables the lookup
// catalog queries, using embedded goose migrations.
package schema

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// TablesVersion is the migration that creates the tables. Later migrations
// only load demo data.
const TablesVersion int64 = 1

// Options controls Migrate.
type Options struct {
	// Driver is the database/sql driver name the connection was opened with.
	Driver string
	// SkipDemoData stops after the table migration.
	SkipDemoData bool
}

// Migrate applies pending migrations to db.
func Migrate(ctx context.Context, db *sql.DB, opts Options) error {
	if err := configure(opts.Driver); err != nil {
		return err
	}

	var err error
	if opts.SkipDemoData {
		err = goose.UpToContext(ctx, db, "migrations", TablesVersion)
	} else {
		err = goose.UpContext(ctx, db, "migrations")
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Version returns the current migration version of db.
func Version(ctx context.Context, db *sql.DB, driver string) (int64, error) {
	if err := configure(driver); err != nil {
		return 0, err
	}
	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("failed to get migration version: %w", err)
	}
	return version, nil
}

func configure(driver string) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect(dialectFor(driver)); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	return nil
}

func dialectFor(driver string) string {
	switch driver {
	case "pgx", "postgres":
		return "postgres"
	default:
		return "sqlite3"
	}
}
