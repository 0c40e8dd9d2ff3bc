package migration

import (
	"context"
	"embed"
	"errors"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/pngfun/backend/pkg/xcontext"
)

//go:embed postgres/*.sql
var postgresFS embed.FS

func newMigrator(ctx context.Context) (*migrate.Migrate, error) {
	db, err := xcontext.DB(ctx).DB()
	if err != nil {
		return nil, err
	}

	source, err := iofs.New(postgresFS, "postgres")
	if err != nil {
		return nil, err
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return nil, err
	}

	return migrate.NewWithInstance("iofs", source, xcontext.Configs(ctx).Database.Database, driver)
}

// Migrate applies every pending migration of the embedded postgres
// directory.
func Migrate(ctx context.Context) error {
	m, err := newMigrator(ctx)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	xcontext.Logger(ctx).Infof("Database schema at version %d (dirty=%t)", version, dirty)
	return nil
}

// Rollback reverts the last applied migration.
func Rollback(ctx context.Context) error {
	m, err := newMigrator(ctx)
	if err != nil {
		return err
	}

	if err := m.Steps(-1); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}

	return nil
}
