// Package migrations keeps the SQLite schema at the version embedded in
// the binary. The on-disk version is SQLite's user_version pragma.
//
// Upgrades are lossy: when the file holds an older version, the target
// migration's down script drops the table and its up script recreates it.
// A file written by a newer binary is refused.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.sql
var migrationsFS embed.FS

// ErrDowngrade is returned when the database was written by a newer schema.
var ErrDowngrade = errors.New("cannot downgrade schema")

// Migration represents one schema version
type Migration struct {
	Version int
	Name    string
	Up      string
	Down    string
}

// Load returns every embedded migration ordered by version
func Load() ([]Migration, error) {
	entries, err := migrationsFS.ReadDir(".")
	if err != nil {
		return nil, err
	}

	var migrations []Migration
	for _, entry := range entries {
		if !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}

		version := extractVersion(entry.Name())
		if version == 0 {
			continue
		}

		upSQL, err := migrationsFS.ReadFile(entry.Name())
		if err != nil {
			return nil, err
		}

		downFile := strings.Replace(entry.Name(), ".up.sql", ".down.sql", 1)
		downSQL, err := migrationsFS.ReadFile(downFile)
		if err != nil {
			return nil, err
		}

		migrations = append(migrations, Migration{
			Version: version,
			Name:    extractName(entry.Name()),
			Up:      string(upSQL),
			Down:    string(downSQL),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}

// Current returns the newest embedded migration
func Current() (Migration, error) {
	migrations, err := Load()
	if err != nil {
		return Migration{}, err
	}
	if len(migrations) == 0 {
		return Migration{}, errors.New("no migrations embedded")
	}
	return migrations[len(migrations)-1], nil
}

// Ensure brings db to the current schema version
func Ensure(ctx context.Context, db *sql.DB) error {
	target, err := Current()
	if err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	return Apply(ctx, db, target)
}

// Apply brings db to the target schema version in a single transaction.
func Apply(ctx context.Context, db *sql.DB, target Migration) error {
	version, err := UserVersion(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if version == target.Version {
		return nil
	}
	if version > target.Version {
		return fmt.Errorf("%w: database is at version %d, binary supports %d", ErrDowngrade, version, target.Version)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if version > 0 {
		if _, err := tx.ExecContext(ctx, target.Down); err != nil {
			return fmt.Errorf("failed to drop schema version %d: %w", version, err)
		}
	}

	if _, err := tx.ExecContext(ctx, target.Up); err != nil {
		return fmt.Errorf("failed to apply migration %d: %w", target.Version, err)
	}

	// PRAGMA does not accept bound parameters.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", target.Version)); err != nil {
		return fmt.Errorf("failed to record schema version %d: %w", target.Version, err)
	}

	return tx.Commit()
}

// UserVersion reads the schema version stored in the database header
func UserVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	if err := db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, err
	}
	return version, nil
}

func extractVersion(filename string) int {
	var version int
	fmt.Sscanf(filename, "%d_", &version)
	return version
}

func extractName(filename string) string {
	name := strings.TrimSuffix(filename, ".up.sql")
	if idx := strings.Index(name, "_"); idx != -1 {
		return name[idx+1:]
	}
	return name
}
