// Package migrations holds the database schema history, applied through
// bun's migrator.
package migrations

import "github.com/uptrace/bun/migrate"

var Migrations = migrate.NewMigrations()
