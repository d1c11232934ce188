package store

import (
	"database/sql"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Record is one row of the append-only variable log.
//
// A Record with an invalid Value is a tombstone: the pair was soft-deleted
// as of CreatedAt and must not appear in live listings.
type Record struct {
	Env       string
	Key       string
	Value     sql.NullString
	CreatedAt int64
	Seq       int64
}

// Deleted reports whether the record is a tombstone.
func (r Record) Deleted() bool {
	return !r.Value.Valid
}

// NormalizeKey canonicalizes a variable key: NFC-normalized and uppercased.
// Applied to every key the store receives, regardless of caller casing.
func NormalizeKey(key string) string {
	return strings.ToUpper(norm.NFC.String(key))
}

// Truncate configures a display window over variable values.
// The zero value means no truncation. Start is 1-based; Length is the
// maximum number of characters returned. Truncation never affects what
// is stored.
type Truncate struct {
	Start  int
	Length int
}

// Enabled reports whether a truncation window is configured.
func (t Truncate) Enabled() bool {
	return t.Start > 0
}
