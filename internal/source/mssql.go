package source

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	_ "github.com/microsoft/go-mssqldb"
)

type MSSQLSource struct {
	baseSource
}

func newMSSQLSource(cfg Config) (*MSSQLSource, error) {
	if cfg.Port == 0 {
		cfg.Port = 1433
	}
	user := url.QueryEscape(cfg.User)
	pass := url.QueryEscape(cfg.Password)
	sslMode := strings.ToLower(strings.TrimSpace(cfg.SSLMode))
	encrypt := "true"
	if sslMode == "disable" {
		encrypt = "disable"
	}
	dsn := fmt.Sprintf("sqlserver://%s:%s@%s:%d?database=%s&encrypt=%s", user, pass, cfg.Host, cfg.Port, cfg.Database, encrypt)
	db, err := openDatabase("sqlserver", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mssql connection: %w", err)
	}
	return &MSSQLSource{baseSource{cfg: cfg, db: db}}, nil
}

func (s *MSSQLSource) TestConnection(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping mssql: %w", err)
	}
	return nil
}

func (s *MSSQLSource) FetchTable(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	quotedTable, _, err := quoteQualified(table, 2, func(v string) string { return "[" + v + "]" })
	if err != nil {
		return nil, fmt.Errorf("invalid mssql table: %w", err)
	}
	query := fmt.Sprintf("SELECT TOP (@p1) * FROM %s", quotedTable)
	stmt, err := s.db.PrepareContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare mssql fetch query: %w", err)
	}
	defer stmt.Close()
	rows, err := stmt.QueryContext(ctx, normalizeFetchLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("query mssql rows: %w", err)
	}
	defer rows.Close()
	result, err := scanRowsToMaps(rows)
	if err != nil {
		return nil, fmt.Errorf("scan mssql rows: %w", err)
	}
	return result, nil
}
