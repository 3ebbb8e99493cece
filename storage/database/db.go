package database

import (
	"context"
	"database/sql"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	"github.com/MSTC-DAU/mstc/core"
	"github.com/MSTC-DAU/mstc/storage/database/migrations"
)

// Open connects to postgres and wraps the connection in a bun.DB.
func Open(conf *core.Config) *bun.DB {
	opts := []pgdriver.Option{
		pgdriver.WithAddr(conf.Database.Address()),
		pgdriver.WithUser(conf.Database.User),
		pgdriver.WithPassword(conf.Database.Password),
		pgdriver.WithDatabase(conf.Database.Name),
		pgdriver.WithApplicationName(conf.AppName),
		pgdriver.WithInsecure(conf.Database.DisableTLS),
	}
	sqldb := sql.OpenDB(pgdriver.NewConnector(opts...))
	return bun.NewDB(sqldb, pgdialect.New())
}

// Ping waits for the database to be ready. Waits 100ms longer between each attempt.
func Ping(db *bun.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

// Migrate applies all pending migrations.
func Migrate(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return errors.Wrap(err, "initializing migrations table")
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

// Rollback reverts the last migration group.
func Rollback(ctx context.Context, db *bun.DB) error {
	migrator := migrate.NewMigrator(db, migrations.Migrations)
	if _, err := migrator.Rollback(ctx); err != nil {
		return errors.Wrap(err, "rolling back database")
	}
	return nil
}
