// Package testutil provides shared test helpers for directory storage.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/starford/phonebook/internal/storage"
)

// TestSQLite creates a temporary SQLite directory store that is
// automatically cleaned up.
func TestSQLite(t *testing.T) *storage.SQLite {
	t.Helper()
	dbFile, err := os.CreateTemp("", "phonebook-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := storage.OpenSQLite(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestJSONFile creates a db.json store in a temporary directory.
func TestJSONFile(t *testing.T) *storage.JSONFile {
	t.Helper()
	f, err := storage.OpenJSONFile(filepath.Join(t.TempDir(), "db.json"))
	if err != nil {
		t.Fatal(err)
	}
	return f
}
