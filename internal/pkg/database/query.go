package database

import (
	"fmt"
	"strings"
)

// ListSQL describes how a paginated list endpoint maps onto a table.
type ListSQL struct {
	// SortColumns maps the public sort field to a column.
	SortColumns map[string]string
	// DefaultSort is used when the requested field is unknown.
	DefaultSort string
	// SearchColumns are OR-matched case-insensitively against the search term.
	SearchColumns []string
}

// Where returns the search predicate, without the WHERE keyword, and its argument.
// An empty search returns "".
func (l ListSQL) Where(search string, argPos int) (string, []interface{}) {
	if search == "" || len(l.SearchColumns) == 0 {
		return "", nil
	}

	parts := make([]string, 0, len(l.SearchColumns))
	for _, col := range l.SearchColumns {
		parts = append(parts, fmt.Sprintf("%s ILIKE $%d", col, argPos))
	}
	return "(" + strings.Join(parts, " OR ") + ")", []interface{}{"%" + EscapeLike(search) + "%"}
}

// OrderBy returns the ORDER BY clause. The id tiebreaker keeps pages stable.
func (l ListSQL) OrderBy(sort string, desc bool) string {
	col, ok := l.SortColumns[sort]
	if !ok {
		col = l.SortColumns[l.DefaultSort]
	}
	dir := "ASC"
	if desc {
		dir = "DESC"
	}
	return fmt.Sprintf("ORDER BY %s %s, id %s", col, dir, dir)
}

// EscapeLike makes a user term match literally inside a LIKE pattern.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
