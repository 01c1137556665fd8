package testutil

import (
	"path/filepath"
	"testing"

	"github.com/alexanderramin/studymaster/internal/store"
)

// NewTestStore creates an in-memory durable scope.
// The store is closed when the test completes.
func NewTestStore(t *testing.T) *store.SQLiteScope {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})
	return s
}

// TestStorePath returns a file path inside a per-test temp directory,
// for tests that reopen the store to check persistence across restarts.
func TestStorePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "studymaster.db")
}
