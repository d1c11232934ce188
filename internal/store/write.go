package store

import (
	"context"
)

// Insert appends a record for (env, key) with the given value.
//
// The key is normalized (see NormalizeKey) before writing. Insert has no
// existence precondition: the first append for a pair creates it, a later
// append supersedes it, and an unknown environment comes into being as a
// side effect of the first row written for it.
func (s *Store) Insert(ctx context.Context, env, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO environments (env, key, value)
		VALUES (?, ?, ?)
	`, env, NormalizeKey(key), value)
	if err != nil {
		return newStorageError("insert", env, key, err)
	}
	return nil
}

// Tombstone inserts share one shape: resolve the current record per pair
// (max seq within the group), keep only pairs that are currently live,
// and append a NULL-value row for each. Pairs whose latest record is
// already a tombstone produce no row, which makes soft deletes
// idempotent. Single statement, so multi-pair deletes are atomic.
//
// The inner SELECT leans on SQLite's bare-column rule: with a lone MAX()
// aggregate, non-aggregated columns come from the winning row.

// DeleteVar soft-deletes (env, key) by appending a tombstone record.
// No-op when the pair has no live value.
func (s *Store) DeleteVar(ctx context.Context, env, key string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO environments (env, key, value)
		SELECT env, key, NULL
		FROM (
			SELECT env, key, value, MAX(seq) AS seq
			FROM environments
			WHERE env = ? AND key = ?
			GROUP BY env, key
		)
		WHERE value IS NOT NULL
	`, env, NormalizeKey(key))
	if err != nil {
		return newStorageError("delete var", env, key, err)
	}
	return nil
}

// DeleteVarAll soft-deletes key in every environment that currently holds
// a live value for it, one tombstone per environment.
func (s *Store) DeleteVarAll(ctx context.Context, key string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO environments (env, key, value)
		SELECT env, key, NULL
		FROM (
			SELECT env, key, value, MAX(seq) AS seq
			FROM environments
			WHERE key = ?
			GROUP BY env, key
		)
		WHERE value IS NOT NULL
	`, NormalizeKey(key))
	if err != nil {
		return newStorageError("delete var all", "", key, err)
	}
	return nil
}

// DeleteEnv soft-deletes every live key in env. History is preserved and
// the environment keeps appearing in ListEnvironments.
func (s *Store) DeleteEnv(ctx context.Context, env string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO environments (env, key, value)
		SELECT env, key, NULL
		FROM (
			SELECT env, key, value, MAX(seq) AS seq
			FROM environments
			WHERE env = ?
			GROUP BY env, key
		)
		WHERE value IS NOT NULL
	`, env)
	if err != nil {
		return newStorageError("delete env", env, "", err)
	}
	return nil
}

// DropEnv physically deletes every record for env. Irreversible: no
// history survives and the environment vanishes from ListEnvironments.
// No-op when the environment has no records.
func (s *Store) DropEnv(ctx context.Context, env string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM environments WHERE env = ?
	`, env)
	if err != nil {
		return newStorageError("drop env", env, "", err)
	}
	return nil
}

// Duplicate appends tgtEnv copies of every live (key, value) pair in
// srcEnv, each with a fresh created_at/seq. Pre-existing tgtEnv history
// is kept; the copied rows simply become the newest version for their
// keys. When srcEnv has no live keys nothing is inserted, so tgtEnv is
// not created as a side effect.
func (s *Store) Duplicate(ctx context.Context, srcEnv, tgtEnv string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO environments (env, key, value)
		SELECT ?, key, value
		FROM (
			SELECT key, value, MAX(seq) AS seq
			FROM environments
			WHERE env = ?
			GROUP BY key
		)
		WHERE value IS NOT NULL
		ORDER BY key DESC
	`, tgtEnv, srcEnv)
	if err != nil {
		return newStorageError("duplicate", srcEnv, "", err)
	}
	return nil
}
