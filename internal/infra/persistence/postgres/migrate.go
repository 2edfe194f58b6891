package postgres

import (
	"context"
	"database/sql"

	"github.com/pressly/goose/v3"

	"bookreview/internal/errors"
	"bookreview/internal/infra/persistence/postgres/migrations"
)

// RunMigrations applies every pending embedded migration.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return errors.Wrap(err, "set goose dialect")
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "apply migrations")
	}

	return nil
}
