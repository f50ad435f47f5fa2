package storage

import (
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed migrations
var migrationFiles embed.FS

func MigrateUp(db *sql.DB, dialect Dialect) error {
	return applyMigrations(dialect, ".up.sql", sort.Strings, execSQL(db))
}

func MigrateDown(db *sql.DB, dialect Dialect) error {
	return applyMigrations(dialect, ".down.sql", reverseStrings, execSQL(db))
}

func execSQL(db *sql.DB) func(string) error {
	return func(stmt string) error {
		_, err := db.Exec(stmt)
		return err
	}
}

func applyMigrations(dialect Dialect, suffix string, order func([]string), exec func(string) error) error {
	entries, err := fs.Glob(migrationFiles, "migrations/"+string(dialect)+"/*"+suffix)
	if err != nil {
		return fmt.Errorf("glob migrations: %w", err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("no %s migrations for dialect %q", suffix, dialect)
	}
	order(entries)
	for _, name := range entries {
		sqlBytes, readErr := migrationFiles.ReadFile(name)
		if readErr != nil {
			return fmt.Errorf("read migration %s: %w", name, readErr)
		}
		if execErr := exec(string(sqlBytes)); execErr != nil {
			return fmt.Errorf("apply migration %s: %w", name, execErr)
		}
	}
	return nil
}

func reverseStrings(items []string) {
	sort.Sort(sort.Reverse(sort.StringSlice(items)))
}
