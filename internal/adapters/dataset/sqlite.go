package dataset

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strconv"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/pitchstats/internal/domain/player"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// LoadSQLite reads a player table from table in the SQLite database at path.
// Column names follow the same rules as CSV headers.
func LoadSQLite(ctx context.Context, path, table string, opts ...Option) (*player.Table, error) {
	l := newLoader(path, opts...)
	if table == "" {
		table = l.sqliteTable
	}
	if !identPattern.MatchString(table) {
		return nil, &player.DataLoadError{Source: l.source, Err: fmt.Errorf("invalid table name %q", table)}
	}
	if _, err := os.Stat(path); err != nil {
		return nil, &player.DataLoadError{Source: l.source, Err: err}
	}

	db, err := sqlx.ConnectContext(ctx, "sqlite", path)
	if err != nil {
		return nil, &player.DataLoadError{Source: l.source, Err: err}
	}
	defer func() { _ = db.Close() }()

	rows, err := db.QueryxContext(ctx, `SELECT * FROM "`+table+`"`)
	if err != nil {
		return nil, &player.DataLoadError{Source: l.source, Err: err}
	}
	defer func() { _ = rows.Close() }()

	headers, err := rows.Columns()
	if err != nil {
		return nil, &player.DataLoadError{Source: l.source, Err: err}
	}
	idx, err := l.resolve(headers)
	if err != nil {
		return nil, err
	}

	var records []player.Record
	for rows.Next() {
		vals, err := rows.SliceScan()
		if err != nil {
			return nil, &player.DataLoadError{Source: l.source, Err: err}
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = cellString(v)
		}
		records = append(records, idx.record(row))
	}
	if err := rows.Err(); err != nil {
		return nil, &player.DataLoadError{Source: l.source, Err: err}
	}
	return player.NewTable(records), nil
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
