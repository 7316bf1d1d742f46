package testutil

import (
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
)

// SetupTestDB connects to the integration test database named by
// TEST_DATABASE_URL. Tests calling this are skipped when the variable is
// unset, so the unit suite runs without any infrastructure.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	t.Cleanup(func() { db.Close() })

	return db
}

// CleanupTables removes all rows from the application tables so each
// integration test starts empty. Order matters because of the FKs.
func CleanupTables(t *testing.T, db *sql.DB) {
	t.Helper()

	for _, table := range []string{"care_plans", "orders", "patients", "providers"} {
		if _, err := db.Exec("DELETE FROM " + table); err != nil {
			t.Logf("Warning: failed to clean table %s: %v", table, err)
		}
	}
}
