package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CheckEnvExists fails with an ENV_NOT_FOUND error when no record, live
// or tombstoned, has ever been written for env. Callers use it as a
// precondition guard before mutating a named environment.
func (s *Store) CheckEnvExists(ctx context.Context, env string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `
		SELECT 1 FROM environments WHERE env = ? LIMIT 1
	`, env).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return NewEnvNotFoundError(env)
	}
	if err != nil {
		return newStorageError("check env", env, "", err)
	}
	return nil
}

// ListEnvironments returns every distinct environment appearing anywhere
// in the log, sorted ascending. Environments whose every key is
// tombstoned are included; this enumerates what was ever written, not
// what is live.
func (s *Store) ListEnvironments(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT env FROM environments ORDER BY env ASC
	`)
	if err != nil {
		return nil, newStorageError("list environments", "", "", err)
	}
	defer rows.Close()

	envs := []string{}
	for rows.Next() {
		var env string
		if err := rows.Scan(&env); err != nil {
			return nil, newStorageError("list environments", "", "", err)
		}
		envs = append(envs, env)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError("list environments", "", "", err)
	}

	return envs, nil
}

// ListVariables returns env's live view: for each key, the most recently
// appended record, with tombstoned pairs filtered out. Ordered by
// (env, key) descending.
func (s *Store) ListVariables(ctx context.Context, env string) ([]Record, error) {
	return s.ListVariablesTruncated(ctx, env, Truncate{})
}

// ListVariablesTruncated is ListVariables with an optional display window
// applied to each value. substr is 1-based and character-oriented, like
// the Truncate it mirrors; stored values are untouched.
func (s *Store) ListVariablesTruncated(ctx context.Context, env string, t Truncate) ([]Record, error) {
	query := `
		SELECT env, key, value, created_at, seq
		FROM (
			SELECT env, key, value, created_at, MAX(seq) AS seq
			FROM environments
			WHERE env = ?
			GROUP BY env, key
		)
		WHERE value IS NOT NULL
		ORDER BY env DESC, key DESC
	`
	args := []any{env}
	if t.Enabled() {
		query = `
			SELECT env, key, substr(value, ?, ?) AS value, created_at, seq
			FROM (
				SELECT env, key, value, created_at, MAX(seq) AS seq
				FROM environments
				WHERE env = ?
				GROUP BY env, key
			)
			WHERE value IS NOT NULL
			ORDER BY env DESC, key DESC
		`
		args = []any{t.Start, t.Length, env}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newStorageError("list variables", env, "", err)
	}
	defer rows.Close()

	return scanRecords(rows, "list variables", env)
}

// History returns the latest record per (environment, key) with
// tombstones kept, which is how callers tell "explicitly deleted" apart
// from "never set". An empty env means all environments.
func (s *Store) History(ctx context.Context, env string) ([]Record, error) {
	query := `
		SELECT env, key, value, created_at, MAX(seq) AS seq
		FROM environments
		GROUP BY env, key
		ORDER BY env DESC, key DESC
	`
	args := []any{}
	if env != "" {
		query = `
			SELECT env, key, value, created_at, MAX(seq) AS seq
			FROM environments
			WHERE env = ?
			GROUP BY env, key
			ORDER BY env DESC, key DESC
		`
		args = []any{env}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, newStorageError("history", env, "", err)
	}
	defer rows.Close()

	return scanRecords(rows, "history", env)
}

// scanRecords drains a (env, key, value, created_at, seq) result set.
// Returns an empty slice instead of nil.
func scanRecords(rows *sql.Rows, op, env string) ([]Record, error) {
	records := []Record{}
	for rows.Next() {
		var r Record
		if err := rows.Scan(&r.Env, &r.Key, &r.Value, &r.CreatedAt, &r.Seq); err != nil {
			return nil, newStorageError(op, env, "", fmt.Errorf("scan row: %w", err))
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, newStorageError(op, env, "", fmt.Errorf("iterate rows: %w", err))
	}
	return records, nil
}
