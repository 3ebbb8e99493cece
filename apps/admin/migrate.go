package main

import (
	"context"

	"github.com/MSTC-DAU/mstc/storage/database"
)

func (cli *commandLine) migrate() error {
	if err := database.Migrate(context.Background(), cli.db); err != nil {
		return err
	}
	logger.Println("database migrated")
	return nil
}

func (cli *commandLine) rollback() error {
	if err := database.Rollback(context.Background(), cli.db); err != nil {
		return err
	}
	logger.Println("last migration group rolled back")
	return nil
}
