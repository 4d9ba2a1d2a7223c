package query

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
)

// Dialect identifies the SQL flavor a Builder renders for.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Validate checks if the dialect is supported.
func (d Dialect) Validate() error {
	switch d {
	case Postgres, SQLite:
		return nil
	default:
		return fmt.Errorf("invalid dialect: %s (must be postgres or sqlite)", d)
	}
}

// Placeholder returns the positional parameter marker for the 1-based index n.
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return fmt.Sprintf("?%d", n)
	}
	return fmt.Sprintf("$%d", n)
}

// FoldFunction is the SQLite scalar function that case-folds its argument.
// pkg/database registers it with the sqlite driver.
const FoldFunction = "octo_fold"

// FoldCase returns the Unicode case folding of s, so "Straße" and "STRASSE" compare equal.
func FoldCase(s string) string {
	return cases.Fold().String(s)
}

// Contains renders a case-insensitive LIKE condition of col against the pattern bound to param.
// SQLite LIKE folds ASCII only, so both sides go through FoldFunction.
func (d Dialect) Contains(col, param string) string {
	if d == SQLite {
		return fmt.Sprintf(`%s(%s) LIKE %s(%s) ESCAPE '\'`, FoldFunction, col, FoldFunction, param)
	}
	return fmt.Sprintf(`%s ILIKE %s ESCAPE '\'`, col, param)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes pattern wildcards so value matches literally inside a LIKE pattern.
func EscapeLike(value string) string {
	return likeEscaper.Replace(value)
}
