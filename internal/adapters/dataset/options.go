// Package dataset loads the player table from CSV files or SQLite databases.
package dataset

import "strings"

// Option applies a configuration option to a load.
type Option func(*loader)

// WithSourceName overrides the source label used in errors.
func WithSourceName(name string) Option {
	return func(l *loader) {
		if name != "" {
			l.source = name
		}
	}
}

// WithColumnAlias maps an extra header name onto a canonical column such as
// "overall" or "position".
func WithColumnAlias(alias, column string) Option {
	return func(l *loader) {
		alias = normalizeHeader(alias)
		column = normalizeHeader(column)
		if alias == "" || column == "" {
			return
		}
		l.aliases[alias] = column
	}
}

// WithSQLiteTable sets the table LoadFile reads from SQLite sources.
func WithSQLiteTable(table string) Option {
	return func(l *loader) {
		if strings.TrimSpace(table) != "" {
			l.sqliteTable = strings.TrimSpace(table)
		}
	}
}
