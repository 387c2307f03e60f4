package database

import (
	"database/sql"
	"strings"
)

// nullableString converts a string to sql.NullString for optional fields.
// Blank strings are treated as NULL.
func nullableString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: strings.TrimSpace(v) != ""}
}

// toNullableArg converts a pointer to an interface{} suitable for SQL args.
// Returns nil if pointer is nil, otherwise returns the dereferenced value.
func toNullableArg[T any](v *T) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

// fromNullString returns nil for NULL columns.
func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}
