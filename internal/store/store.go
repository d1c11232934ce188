package store

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// DBFileName is the database file envelope keeps in the working directory.
const DBFileName = ".envelope"

// Schema version tracking:
// 1 - Initial schema (environments log + meta)
const currentSchemaVersion = 1

// Store provides durable storage for envelope variable records.
// Uses SQLite with WAL mode for concurrent read access.
type Store struct {
	db   *sql.DB
	path string
}

// IsPresent reports whether an envelope database exists in dir.
func IsPresent(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, DBFileName))
	return err == nil && info.Mode().IsRegular()
}

// Init creates (or opens) the envelope database in dir.
// Safe to call on an already-initialized directory.
func Init(dir string) (*Store, error) {
	return Open(filepath.Join(dir, DBFileName))
}

// Load opens the envelope database in dir, failing with a NotInitialized
// error when no database exists there. Use Init to create one.
func Load(dir string) (*Store, error) {
	if !IsPresent(dir) {
		return nil, NewNotInitializedError(dir)
	}
	return Open(filepath.Join(dir, DBFileName))
}

// Open creates or opens a SQLite database at the given path.
// Applies required pragmas and migrations automatically.
//
// The connection pool is capped at a single connection: SQLite only
// supports one writer at a time, and funneling every operation through
// one connection is also what keeps seq/created_at assignment strictly
// ordered across callers.
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}

	if err := applySchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the location of the database file.
func (s *Store) Path() string {
	return s.path
}

// Info describes an open store.
type Info struct {
	Path          string `json:"path"`
	StoreID       string `json:"store_id"`
	SchemaVersion int    `json:"schema_version"`
	Environments  int    `json:"environments"`
}

// Info returns the store's identity and basic shape.
func (s *Store) Info(ctx context.Context) (Info, error) {
	info := Info{Path: s.path}

	if err := s.db.QueryRowContext(ctx,
		`SELECT store_id FROM meta WHERE id = 1`,
	).Scan(&info.StoreID); err != nil {
		return Info{}, newStorageError("info", "", "", err)
	}

	if err := s.db.QueryRowContext(ctx, `PRAGMA user_version`).Scan(&info.SchemaVersion); err != nil {
		return Info{}, newStorageError("info", "", "", err)
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(DISTINCT env) FROM environments`,
	).Scan(&info.Environments); err != nil {
		return Info{}, newStorageError("info", "", "", err)
	}

	return info, nil
}

// applyPragmas sets required SQLite configuration.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	return nil
}

// applySchema creates tables if they don't exist and stamps store metadata.
// This function is idempotent.
func applySchema(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}

	// Assign the store identity once, on first creation.
	_, err := db.Exec(`
		INSERT INTO meta (id, store_id)
		SELECT 1, ?
		WHERE NOT EXISTS (SELECT 1 FROM meta WHERE id = 1)
	`, uuid.NewString())
	if err != nil {
		return fmt.Errorf("failed to stamp store id: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", currentSchemaVersion)); err != nil {
		return fmt.Errorf("set user_version: %w", err)
	}

	return nil
}

// verifyPragma checks that a pragma is set to the expected value.
// Used for testing.
func (s *Store) verifyPragma(name, expected string) error {
	var value string
	query := fmt.Sprintf("PRAGMA %s", name)
	if err := s.db.QueryRow(query).Scan(&value); err != nil {
		return fmt.Errorf("failed to query %s: %w", name, err)
	}
	if value != expected {
		return fmt.Errorf("%s = %q, expected %q", name, value, expected)
	}
	return nil
}
