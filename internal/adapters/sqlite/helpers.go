package sqlite

import (
	"database/sql"
	"time"
)

// nullString maps the ports' "empty string means null" convention onto SQL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// nullTime parses an RFC3339 timestamp. Empty or malformed input is null.
func nullTime(s string) sql.NullTime {
	if s == "" {
		return sql.NullTime{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

// formatTime renders a nullable timestamp as RFC3339, or "" when null.
func formatTime(t sql.NullTime) string {
	if !t.Valid {
		return ""
	}
	return t.Time.UTC().Format(time.RFC3339)
}
