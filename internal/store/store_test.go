package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_OpensExistingDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("first Open() failed: %v", err)
	}
	mustInsert(t, s1, "dev", "A", "1")
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer s2.Close()

	if got := liveMap(t, s2, "dev"); got["A"] != "1" {
		t.Errorf("reopened store lost data: %v", got)
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	for _, table := range []string{"environments", "meta"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_AppliesPragmas(t *testing.T) {
	s := createTestStore(t)

	if err := s.verifyPragma("journal_mode", "wal"); err != nil {
		t.Error(err)
	}
	if err := s.verifyPragma("busy_timeout", "5000"); err != nil {
		t.Error(err)
	}
}

func TestIsPresent(t *testing.T) {
	dir := t.TempDir()

	if IsPresent(dir) {
		t.Error("IsPresent() = true for empty directory")
	}

	s, err := Init(dir)
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	s.Close()

	if !IsPresent(dir) {
		t.Error("IsPresent() = false after Init()")
	}
}

func TestLoad_NotInitialized(t *testing.T) {
	_, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("Load() succeeded in uninitialized directory")
	}
	if !IsNotInitialized(err) {
		t.Errorf("Load() error = %v, want NOT_INITIALIZED", err)
	}
}

func TestLoad_AfterInit(t *testing.T) {
	dir := t.TempDir()

	s1, err := Init(dir)
	if err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	s1.Close()

	s2, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() failed after Init(): %v", err)
	}
	s2.Close()
}

func TestInfo(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	mustInsert(t, s, "dev", "A", "1")
	mustInsert(t, s, "prod", "A", "1")

	info, err := s.Info(ctx)
	if err != nil {
		t.Fatalf("Info() failed: %v", err)
	}
	if info.StoreID == "" {
		t.Error("Info() returned empty store id")
	}
	if info.SchemaVersion != currentSchemaVersion {
		t.Errorf("Info() schema version = %d, want %d", info.SchemaVersion, currentSchemaVersion)
	}
	if info.Environments != 2 {
		t.Errorf("Info() environments = %d, want 2", info.Environments)
	}
	if info.Path != s.Path() {
		t.Errorf("Info() path = %q, want %q", info.Path, s.Path())
	}
}

func TestInfo_StoreIDStableAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), DBFileName)
	ctx := context.Background()

	s1, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	info1, err := s1.Info(ctx)
	if err != nil {
		t.Fatalf("Info() failed: %v", err)
	}
	s1.Close()

	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer s2.Close()
	info2, err := s2.Info(ctx)
	if err != nil {
		t.Fatalf("Info() after reopen failed: %v", err)
	}

	if info1.StoreID != info2.StoreID {
		t.Errorf("store id changed across opens: %q != %q", info1.StoreID, info2.StoreID)
	}
}
