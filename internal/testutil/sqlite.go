package testutil

import (
	"path/filepath"
	"testing"
)

// SQLitePath returns a database file path inside a per-test temporary directory.
func SQLitePath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), "alarms.db")
}
