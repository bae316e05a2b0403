package postgres

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ApplyMigrations executes every *up.sql file in dir in lexical order.
func ApplyMigrations(db *sql.DB, dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), "up.sql") {
			continue
		}
		if err := applyMigrationFile(db, filepath.Join(dir, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// ApplyMigration executes the single migration in dir whose file name
// matches name.
func ApplyMigration(db *sql.DB, dir, name string) error {
	pattern, err := regexp.Compile(fmt.Sprintf(`^.*%s\.sql`, regexp.QuoteMeta(name)))
	if err != nil {
		return fmt.Errorf("invalid migration name: %w", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !pattern.MatchString(entry.Name()) {
			continue
		}
		return applyMigrationFile(db, filepath.Join(dir, entry.Name()))
	}

	return fmt.Errorf("migration %q not found", name)
}

func applyMigrationFile(db *sql.DB, path string) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", filepath.Base(path), err)
	}
	if _, err := db.Exec(string(content)); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", filepath.Base(path), err)
	}
	return nil
}
