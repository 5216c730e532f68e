// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"linkhub/internal/database"
	"linkhub/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "linkhub")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "linkhub")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testAccount creates a throwaway user and profile, removed when the
// test finishes (links and analytics rows cascade).
func testAccount(t *testing.T, db *sql.DB, email, username string) (*models.User, *models.Profile) {
	t.Helper()

	users := NewUserStore(db)
	profiles := NewProfileStore(db)

	u, err := users.Create(email, "test-password")
	if err != nil {
		t.Fatalf("create test user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM users WHERE id = $1", u.ID)
	})

	p, err := profiles.CreateForUser(u.ID, username)
	if err != nil {
		t.Fatalf("create test profile: %v", err)
	}
	return u, p
}

// mustCreateLink inserts a link or fails the test.
func mustCreateLink(t *testing.T, links *LinkStore, profileID uuid.UUID, title string) *models.Link {
	t.Helper()
	l, err := links.Create(profileID, title, "https://example.com/"+title, "website")
	if err != nil {
		t.Fatalf("create link %q: %v", title, err)
	}
	return l
}
