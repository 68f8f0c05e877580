package source

import (
	"context"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
)

type MySQLSource struct {
	baseSource
}

func newMySQLSource(cfg Config) (*MySQLSource, error) {
	if cfg.Port == 0 {
		cfg.Port = 3306
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database)
	sslMode := strings.ToLower(strings.TrimSpace(cfg.SSLMode))
	if sslMode == "disable" {
		dsn += "&tls=false"
	} else if sslMode != "" {
		dsn += "&tls=true"
	}
	db, err := openDatabase("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	return &MySQLSource{baseSource{cfg: cfg, db: db}}, nil
}

func (s *MySQLSource) TestConnection(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping mysql: %w", err)
	}
	return nil
}

func (s *MySQLSource) FetchTable(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	quotedTable, _, err := quoteQualified(table, 1, func(v string) string { return "`" + v + "`" })
	if err != nil {
		return nil, fmt.Errorf("invalid mysql table: %w", err)
	}
	query := fmt.Sprintf("SELECT * FROM %s LIMIT ?", quotedTable)
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare mysql fetch query: %w", err)
	}
	defer stmt.Close()
	rows, err := stmt.QueryContext(ctx, normalizeFetchLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query mysql rows: %w", err)
	}
	defer rows.Close()
	result, err := scanRowsToMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("scan mysql rows: %w", err)
	}
	return result, nil
}
