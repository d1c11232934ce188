package store

import (
	"context"
	"path/filepath"
	"testing"
)

// createTestStore creates a store backed by a temp-dir database.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), DBFileName))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// mustInsert appends a record, failing the test on error.
func mustInsert(t *testing.T, s *Store, env, key, value string) {
	t.Helper()
	if err := s.Insert(context.Background(), env, key, value); err != nil {
		t.Fatalf("Insert(%s, %s, %s) failed: %v", env, key, value, err)
	}
}

// countRows returns the physical number of rows in the log.
func countRows(t *testing.T, s *Store) int {
	t.Helper()
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM environments").Scan(&n); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

// liveMap returns env's live view as a key→value map.
func liveMap(t *testing.T, s *Store, env string) map[string]string {
	t.Helper()
	records, err := s.ListVariables(context.Background(), env)
	if err != nil {
		t.Fatalf("ListVariables(%s) failed: %v", env, err)
	}
	m := make(map[string]string, len(records))
	for _, r := range records {
		m[r.Key] = r.Value.String
	}
	return m
}
