package store

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed schema.sql
var schemaSQL string

// ApplySchema creates the catalog schema, collation, tables and indexes if
// they do not exist yet. It is safe to run repeatedly.
func (s *PostgresStore) ApplySchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("store: ApplySchema failed: %w", err)
	}
	return nil
}
