// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Instead, use
// setupTestDB() and the seed* helpers.
package sqlite_test

import (
	"database/sql"
	"fmt"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/plenario/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// A single connection keeps every statement on the same in-memory database.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	testDB.SetMaxOpenConns(1)

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedPeriod inserts a period covering 2025-2028 and returns its ID.
func seedPeriod(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "PER-001"
	}
	_, err := db.Exec("INSERT INTO periods (id, name, starts_on, ends_on) VALUES (?, 'Test Period', '2025-01-01', '2028-12-31')", id)
	if err != nil {
		t.Fatalf("failed to seed period: %v", err)
	}
	return id
}

// seedLegislators inserts n legislators LEG-001..LEG-n as active members of periodID.
func seedLegislators(t *testing.T, db *sql.DB, periodID string, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		id := fmt.Sprintf("LEG-%03d", i)
		if _, err := db.Exec("INSERT INTO legislators (id, name) VALUES (?, ?)", id, "Legislator "+id); err != nil {
			t.Fatalf("failed to seed legislator: %v", err)
		}
		if _, err := db.Exec("INSERT INTO period_members (period_id, legislator_id, active) VALUES (?, ?, 1)", periodID, id); err != nil {
			t.Fatalf("failed to seed membership: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	at, err := time.Parse(time.RFC3339, s)
	if err != nil {
		t.Fatalf("bad timestamp %q: %v", s, err)
	}
	return at.UTC()
}

// seedMatter inserts a filed bill that requires a vote and returns its ID.
func seedMatter(t *testing.T, db *sql.DB, id string) string {
	t.Helper()
	if id == "" {
		id = "MAT-001"
	}
	_, err := db.Exec("INSERT INTO matters (id, kind, title, status, requires_vote, requires_opinion) VALUES (?, 'bill', ?, 'filed', 1, 0)", id, "Matter "+id)
	if err != nil {
		t.Fatalf("failed to seed matter: %v", err)
	}
	return id
}

// seedSitting inserts an ordinary sitting with the given status and returns its ID.
func seedSitting(t *testing.T, db *sql.DB, id, periodID, scheduledAt, status string) string {
	t.Helper()
	if id == "" {
		id = "SES-001"
	}
	if periodID == "" {
		periodID = "PER-001"
	}
	if scheduledAt == "" {
		scheduledAt = "2026-03-10T19:00:00Z"
	}
	if status == "" {
		status = "scheduled"
	}
	at := mustTime(t, scheduledAt)
	_, err := db.Exec("INSERT INTO sittings (id, period_id, kind, scheduled_at, status) VALUES (?, ?, 'ordinary', ?, ?)", id, periodID, at, status)
	if err != nil {
		t.Fatalf("failed to seed sitting: %v", err)
	}
	return id
}

// seedItem inserts a pending ordem_do_dia item and returns its ID.
func seedItem(t *testing.T, db *sql.DB, id, sittingID, matterID string, position int) string {
	t.Helper()
	_, err := db.Exec("INSERT INTO agenda_items (id, sitting_id, matter_id, section, position, status) VALUES (?, ?, ?, 'ordem_do_dia', ?, 'pending')",
		id, sittingID, matterID, position)
	if err != nil {
		t.Fatalf("failed to seed agenda item: %v", err)
	}
	return id
}

// openVoting moves a seeded item into voting_in_progress.
func openVoting(t *testing.T, db *sql.DB, itemID string) {
	t.Helper()
	if _, err := db.Exec("UPDATE agenda_items SET status = 'voting_in_progress' WHERE id = ?", itemID); err != nil {
		t.Fatalf("failed to open voting: %v", err)
	}
}
