// Package sqlutil provides SQL identifier helpers shared by plan rendering.
package sqlutil

import "strings"

// QuoteIdentifier quotes a SQL identifier (table name, column name, alias)
// with backticks and escapes any backticks within the identifier.
func QuoteIdentifier(name string) string {
	escaped := strings.ReplaceAll(name, "`", "``")
	return "`" + escaped + "`"
}

// QualifyColumn renders qualifier.column with both parts quoted. An empty
// qualifier yields just the quoted column.
func QualifyColumn(qualifier, column string) string {
	if qualifier == "" {
		return QuoteIdentifier(column)
	}
	return QuoteIdentifier(qualifier) + "." + QuoteIdentifier(column)
}
