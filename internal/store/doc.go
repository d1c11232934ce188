// Package store provides SQLite-backed durable storage for envelope
// environment variables.
//
// The store is an append-only log of variable records:
//   - Every mutation is an INSERT; rows are never updated in place.
//   - Soft deletes append a tombstone row (NULL value) rather than
//     removing history.
//   - The only physical DELETE is DropEnv, which erases an entire
//     environment irrecoverably.
//
// # Resolution
//
// The "current" value of an (env, key) pair is the row with the highest
// seq among all rows for that pair. seq is a strictly increasing counter
// (AUTOINCREMENT), so resolution is deterministic even when two appends
// share the same created_at second. A pair whose winning row has a NULL
// value is soft-deleted and excluded from live listings.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - MaxOpenConns(1): all access serialized through one connection,
//     which keeps created_at/seq assignment strictly ordered
//
// Multi-row mutations (Duplicate, the bulk soft deletes) are single
// INSERT ... SELECT statements and therefore atomic as a unit.
package store
