// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/urfave/cli/v3"

	"codeberg.org/diningguru/backend/internal/config"
	"codeberg.org/diningguru/backend/internal/database"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "Manage the database schema",
		Commands: []*cli.Command{
			{Name: "up", Usage: "Apply all pending migrations", Action: withDB(database.RunMigrations)},
			{Name: "down", Usage: "Roll back the last migration", Action: withDB(database.MigrateDown)},
			{Name: "reset", Usage: "Roll back all migrations", Action: withDB(database.MigrateReset)},
			{Name: "status", Usage: "Show migration status", Action: withDB(database.MigrationStatus)},
			{Name: "version", Usage: "Print the current schema version", Action: withDB(printVersion)},
		},
	}
}

// withDB runs fn against the configured database without auto-migrating.
func withDB(fn func(*sql.DB) error) cli.ActionFunc {
	return func(_ context.Context, cmd *cli.Command) error {
		cfg := config.NewFromCLI(cmd)

		db, err := database.Connect(cfg.Database.DSN)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() {
			_ = db.Close()
		}()

		return fn(db.DB)
	}
}

func printVersion(db *sql.DB) error {
	version, err := database.CurrentVersion(db)
	if err != nil {
		return err
	}
	fmt.Printf("schema version: %d\n", version)
	return nil
}
