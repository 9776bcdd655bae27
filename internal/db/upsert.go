package db

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// UpsertSQL builds an INSERT ... ON CONFLICT (keys) DO UPDATE statement for
// a single row with the given columns. UpdateCols nil means all non-key
// columns are updated from EXCLUDED.
type UpsertSQL struct {
	Table        string
	Columns      []string
	ConflictKeys []string
	UpdateCols   []string
	// Where optionally guards the DO UPDATE (e.g. only overwrite when the
	// incoming score is higher).
	Where string
}

// Build renders the SQL with $1..$n placeholders matching Columns order.
func (u UpsertSQL) Build() string {
	placeholders := make([]string, len(u.Columns))
	for i := range u.Columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	updateCols := u.UpdateCols
	if updateCols == nil {
		keySet := make(map[string]bool, len(u.ConflictKeys))
		for _, k := range u.ConflictKeys {
			keySet[k] = true
		}
		for _, c := range u.Columns {
			if !keySet[c] {
				updateCols = append(updateCols, c)
			}
		}
	}

	setClauses := make([]string, len(updateCols))
	for i, col := range updateCols {
		q := pgx.Identifier{col}.Sanitize()
		setClauses[i] = fmt.Sprintf("%s = EXCLUDED.%s", q, q)
	}

	sql := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) ON CONFLICT (%s) DO UPDATE SET %s",
		sanitizeTable(u.Table),
		quoteAndJoin(u.Columns),
		strings.Join(placeholders, ", "),
		quoteAndJoin(u.ConflictKeys),
		strings.Join(setClauses, ", "),
	)
	if u.Where != "" {
		sql += " WHERE " + u.Where
	}
	return sql
}

// sanitizeTable handles schema-qualified table names like "leads.companies".
func sanitizeTable(table string) string {
	parts := strings.SplitN(table, ".", 2)
	if len(parts) == 2 {
		return pgx.Identifier{parts[0], parts[1]}.Sanitize()
	}
	return pgx.Identifier{table}.Sanitize()
}

// quoteAndJoin quotes each column name and joins with commas.
func quoteAndJoin(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = pgx.Identifier{c}.Sanitize()
	}
	return strings.Join(quoted, ", ")
}
