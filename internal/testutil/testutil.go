// Package testutil provides test utilities and helpers.
package testutil

import (
	"context"
	"os"
	"testing"

	"go.uber.org/zap"

	"weddash/internal/db"
)

// TestDB connects to the Postgres test database, migrates it and empties the
// documents table. Tests are skipped unless TEST_DATABASE_URL is set.
// The returned cleanup func empties the table again and closes the pool.
func TestDB(t *testing.T) (*db.DB, func()) {
	t.Helper()

	connString := os.Getenv("TEST_DATABASE_URL")
	if connString == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	database, err := db.New(ctx, connString, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	// Run migrations
	if err := database.RunMigrations(connString); err != nil {
		database.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	cleanupTestData(ctx, database)

	cleanup := func() {
		cleanupTestData(ctx, database)
		database.Close()
	}

	return database, cleanup
}

// cleanupTestData removes all documents.
func cleanupTestData(ctx context.Context, database *db.DB) {
	database.Pool.Exec(ctx, "DELETE FROM documents")
}

// PutDocument stores raw JSON at path, failing the test on error.
func PutDocument(t *testing.T, database *db.DB, path, doc string) {
	t.Helper()
	if err := database.Put(context.Background(), path, []byte(doc)); err != nil {
		t.Fatalf("failed to put %s: %v", path, err)
	}
}
