package postgres

import (
	_ "embed"
	"fmt"

	"github.com/zawlinnphyo/wordstake/internal/domain"
)

//go:embed schema.sql
var schemaSQL string

// EnsureSchema applies the embedded DDL. Every statement is IF NOT EXISTS
// so startup is safe against an already provisioned database.
func EnsureSchema(ctx domain.Context, pool PgxPool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("op=postgres.ensure_schema: %w", err)
	}
	return nil
}
