package source

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

func New(cfg Config) (RowSource, error) {
	if strings.TrimSpace(cfg.Type) == "" {
		return nil, errors.New("source type is required")
	}
	switch strings.ToLower(cfg.Type) {
	case "mysql":
		return newMySQLSource(cfg)
	case "postgres", "postgresql":
		return newPostgresSource(cfg)
	case "mssql", "sqlserver":
		return newMSSQLSource(cfg)
	case "csv":
		return newCSVSource(cfg)
	default:
		return nil, fmt.Errorf("unsupported source type %q", cfg.Type)
	}
}

func openDatabase(driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}
	return db, nil
}
