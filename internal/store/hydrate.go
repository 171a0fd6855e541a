package store

import (
	"database/sql"
	"strings"
	"time"

	"github.com/mesh-intelligence/shoppr/pkg/types"
)

// inClause returns "(?, ?, ...)" for ids and the matching arguments.
func inClause(ids []int64) (string, []any) {
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return "(" + strings.TrimSuffix(strings.Repeat("?, ", len(ids)), ", ") + ")", args
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseStoredDate reads a date column. Stored dates are always well-formed.
func parseStoredDate(s string) types.Date {
	d, err := types.ParseDate(s)
	if err != nil {
		return types.Date{}
	}
	return d
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// validName reports whether name has anything besides whitespace. Names are
// stored as given.
func validName(name string) bool {
	return strings.TrimSpace(name) != ""
}
