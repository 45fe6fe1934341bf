package db

import (
	"context"
	"database/sql"
	"fmt"
)

var productTables = map[string]string{
	DriverPostgres: `
		CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			quantity INTEGER NOT NULL
		)`,
	DriverSQLite: `
		CREATE TABLE IF NOT EXISTS products (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			price NUMERIC(12,2) NOT NULL,
			quantity INTEGER NOT NULL
		)`,
}

// EnsureSchema creates the products table if it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	ddl, ok := productTables[driver]
	if !ok {
		return fmt.Errorf("unsupported store driver %q", driver)
	}

	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("failed to create products table: %w", err)
	}
	return nil
}
