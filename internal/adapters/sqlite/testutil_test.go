// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() so tests run against the
// authoritative schema. Do not hardcode CREATE TABLE statements in test files.
package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/mazeprobe/internal/adapters/sqlite"
	"github.com/example/mazeprobe/internal/db"
	"github.com/example/mazeprobe/internal/ports/secondary"
)

// setupTestDB creates an in-memory database with the authoritative schema.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	// Every pooled connection to :memory: would be a separate database.
	testDB.SetMaxOpenConns(1)

	if _, err := testDB.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedMaze inserts a 3x3 test maze through the repository and returns it.
func seedMaze(t *testing.T, repo *sqlite.MazeRepository, name string) *secondary.MazeRecord {
	t.Helper()
	ctx := context.Background()

	id, err := repo.GetNextID(ctx)
	if err != nil {
		t.Fatalf("GetNextID failed: %v", err)
	}
	record := &secondary.MazeRecord{
		ID:       id,
		Name:     name,
		Layout:   "#E#\n#S \n###",
		Rows:     3,
		Cols:     3,
		HasStart: true,
		StartRow: 1,
		StartCol: 1,
	}
	if err := repo.Create(ctx, record); err != nil {
		t.Fatalf("failed to seed maze: %v", err)
	}
	return record
}
