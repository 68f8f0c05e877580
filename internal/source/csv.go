package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// CSVSource reads a lab export file. The first record is the header;
// every later record becomes one row keyed by header name. The table
// argument of FetchTable is ignored, a CSV file is its own table.
type CSVSource struct {
	path string
}

func newCSVSource(cfg Config) (*CSVSource, error) {
	if strings.TrimSpace(cfg.Path) == "" {
		return nil, errors.New("csv source requires a file path")
	}
	return &CSVSource{path: cfg.Path}, nil
}

func (s *CSVSource) TestConnection(ctx context.Context) error {
	f, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	return f.Close()
}

func (s *CSVSource) FetchTable(ctx context.Context, _ string, limit int) ([]map[string]any, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	limit = normalizeFetchLimit(limit)
	rows := []map[string]any{}
	for len(rows) < limit {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv record: %w", err)
		}
		row := make(map[string]any, len(header))
		for i, col := range header {
			if i >= len(record) {
				break
			}
			cell := strings.TrimSpace(record[i])
			if cell == "" {
				row[col] = nil
				continue
			}
			row[col] = cell
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *CSVSource) Close() error {
	return nil
}
