package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/pitchstats/internal/domain/player"
)

const ctxCheckEvery = 1024

// LoadCSV reads a player table from CSV. The first row must be a header
// containing every required column. Every data row becomes a record; a row of
// empty cells loads as an all-unknown record. Lines with no characters at
// all are not rows and are ignored.
func LoadCSV(ctx context.Context, r io.Reader, opts ...Option) (*player.Table, error) {
	l := newLoader("csv", opts...)

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	headers, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errors.New("empty source")
		}
		return nil, &player.DataLoadError{Source: l.source, Err: err}
	}
	idx, err := l.resolve(headers)
	if err != nil {
		return nil, err
	}

	var records []player.Record
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &player.DataLoadError{Source: l.source, Err: err}
			}
		}
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &player.DataLoadError{Source: l.source, Err: err}
		}
		records = append(records, idx.record(row))
	}
	return player.NewTable(records), nil
}

// LoadFile opens path and loads it according to its extension: .csv (and
// anything unrecognised) as CSV, .db/.sqlite/.sqlite3 as SQLite.
func LoadFile(ctx context.Context, path string, opts ...Option) (*player.Table, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return LoadSQLite(ctx, path, "", opts...)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &player.DataLoadError{Source: path, Err: err}
	}
	defer func() { _ = f.Close() }()

	return LoadCSV(ctx, f, append([]Option{WithSourceName(path)}, opts...)...)
}
