// Package source loads raw analysis rows from the places labs actually
// deliver them: a database table or a CSV export.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// RowSource fetches tabular rows from one backing store. FetchTable
// returns every row as a column-keyed map; coercion into samples is the
// dataset package's job.
type RowSource interface {
	TestConnection(ctx context.Context) error

	FetchTable(ctx context.Context, table string, limit int) ([]map[string]any, error)

	Close() error
}

// Config describes where rows come from. Type selects the
// implementation; Path is only meaningful for csv, the network fields
// only for the database types.
type Config struct {
	Type     string `json:"type"` // mysql | postgres | mssql | csv
	Host     string `json:"host,omitempty"`
	Port     int    `json:"port,omitempty"`
	User     string `json:"user,omitempty"`
	Password string `json:"password,omitempty"`
	Database string `json:"database,omitempty"`
	SSLMode  string `json:"sslMode,omitempty"`
	Path     string `json:"path,omitempty"`
}

const defaultFetchLimit = 10000

type baseSource struct {
	cfg Config
	db  *sql.DB
}

func (b *baseSource) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*$`)

func splitIdentifier(ident string) ([]string, error) {
	trimmed := strings.TrimSpace(ident)
	if trimmed == "" {
		return nil, errors.New("identifier is empty")
	}
	parts := strings.Split(trimmed, ".")
	for _, part := range parts {
		if part == "" {
			return nil, errors.New("identifier contains empty segment")
		}
		if !identPattern.MatchString(part) {
			return nil, fmt.Errorf("identifier segment %q is invalid", part)
		}
	}
	return parts, nil
}

func quoteQualified(ident string, maxSegments int, quote func(string) string) (string, []string, error) {
	parts, err := splitIdentifier(ident)
	if err != nil {
		return "", nil, err
	}
	if maxSegments > 0 && len(parts) > maxSegments {
		return "", nil, fmt.Errorf("identifier %q has too many segments", ident)
	}
	quoted := make([]string, len(parts))
	for i, part := range parts {
		quoted[i] = quote(part)
	}
	return strings.Join(quoted, "."), parts, nil
}

func normalizeFetchLimit(limit int) int {
	if limit <= 0 {
		return defaultFetchLimit
	}
	return limit
}

func scanRowsToMaps(rows *sql.Rows) ([]map[string]any, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	results := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(cols))
		for i := range values {
			var v any
			values[i] = &v
		}
		if err := rows.Scan(values...); err != nil {
			return nil, err
		}
		row := make(map[string]any, len(cols))
		for i, col := range cols {
			v := *(values[i].(*any))
			row[col] = normalizeValue(v)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case []byte:
		return string(t)
	default:
		return t
	}
}
