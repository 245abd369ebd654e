package schema

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var ddl string

// Execer выполняет DDL (*sql.DB)
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

// Apply создает таблицы сервиса, если их ещё нет
func Apply(ctx context.Context, db Execer) error {
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("schema: failed to apply: %w", err)
	}
	return nil
}

// DDL возвращает SQL схемы
func DDL() string {
	return ddl
}
