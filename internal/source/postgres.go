package source

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/lib/pq"
)

type PostgresSource struct {
	baseSource
}

func newPostgresSource(cfg Config) (*PostgresSource, error) {
	if cfg.Port == 0 {
		cfg.Port = 5432
	}
	sslMode := strings.ToLower(strings.TrimSpace(cfg.SSLMode))
	if sslMode == "" {
		sslMode = "disable"
	}
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, sslMode)
	db, err := openDatabase("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}
	return &PostgresSource{baseSource{cfg: cfg, db: db}}, nil
}

func (s *PostgresSource) TestConnection(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}
	return nil
}

func (s *PostgresSource) FetchTable(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	quotedTable, _, err := quoteQualified(table, 2, func(v string) string { return "\"" + v + "\"" })
	if err != nil {
		return nil, fmt.Errorf("invalid postgres table: %w", err)
	}
	query := fmt.Sprintf("SELECT * FROM %s LIMIT $1", quotedTable)
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare postgres fetch query: %w", err)
	}
	defer stmt.Close()
	rows, err := stmt.QueryContext(ctx, normalizeFetchLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query postgres rows: %w", err)
	}
	defer rows.Close()
	result, err := scanRowsToMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("scan postgres rows: %w", err)
	}
	return result, nil
}
