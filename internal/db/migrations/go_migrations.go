// Package migrations holds goose migrations written in Go because their DDL
// differs per database.
package migrations

// dialect is set by the parent db package before migrations are applied.
var dialect string

// SetDialect selects the DDL flavour. Valid values: "sqlite3", "postgres",
// "mysql". Anything else falls back to sqlite3.
func SetDialect(d string) {
	dialect = d
}
