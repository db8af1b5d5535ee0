// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package database

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vinovest/sqlx"
	_ "modernc.org/sqlite" // Pure-Go SQLite driver
)

// defaultParams are appended to the DSN unless the key is already present.
// Times are written in SQLite's own format so date() and julianday() can read them.
var defaultParams = []struct{ key, param string }{
	{"_txlock", "_txlock=immediate"},
	{"_time_format", "_time_format=sqlite"},
	{"busy_timeout", "_pragma=busy_timeout(5000)"},
	{"foreign_keys", "_pragma=foreign_keys(1)"},
}

// Open connects to the database and applies all pending migrations.
func Open(dsn string) (*sqlx.DB, error) {
	conn, err := Connect(dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(conn.DB); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

// Connect creates a new database connection with optimized SQLite settings
// without touching the schema.
func Connect(dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		dsn = "./data/diningguru.db"
	}

	inMemory := isInMemory(dsn)

	// Create directory for file-based databases
	if !inMemory {
		dir := filepath.Dir(dsn)
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, err
		}
	}

	dsn = addDefaultParams(dsn)

	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if inMemory {
		// Every connection to :memory: is a separate database.
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		conn.SetConnMaxLifetime(0)
	} else {
		conn.SetMaxOpenConns(10)
		conn.SetMaxIdleConns(5)
		conn.SetConnMaxLifetime(time.Hour)
	}

	ctx := context.Background()
	if err := configureSQLite(ctx, conn, inMemory); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return conn, nil
}

func isInMemory(dsn string) bool {
	return strings.HasPrefix(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

// addDefaultParams adds recommended SQLite parameters if not already present.
func addDefaultParams(dsn string) string {
	for _, p := range defaultParams {
		if strings.Contains(dsn, p.key) {
			continue
		}
		separator := "?"
		if strings.Contains(dsn, "?") {
			separator = "&"
		}
		dsn += separator + p.param
	}
	return dsn
}

// configureSQLite sets PRAGMAs for file databases. WAL is meaningless in memory.
func configureSQLite(ctx context.Context, db *sqlx.DB, inMemory bool) error {
	pragmas := []string{
		"PRAGMA synchronous = NORMAL",
		"PRAGMA temp_store = MEMORY",
		"PRAGMA cache_size = 2000",
	}
	if !inMemory {
		pragmas = append(pragmas,
			"PRAGMA journal_mode = WAL",
			"PRAGMA mmap_size = 134217728",
			"PRAGMA journal_size_limit = 27103364",
		)
	}

	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return err
		}
	}

	return nil
}
