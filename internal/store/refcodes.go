package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"catalog-service/internal/domain"
	"catalog-service/internal/ident"
)

const catalogSchema = "catalog"

var codeColumns = []string{"id", "code", "description"}

// ListHSNCodes pages through the goods classification codes.
func (s *PostgresStore) ListHSNCodes(ctx context.Context, params ListCodesParams) ([]domain.ReferenceCode, int, error) {
	return s.listCodes(ctx, domain.ItemTypeProduct.CodeTable(), params)
}

// ListSACCodes pages through the services classification codes.
func (s *PostgresStore) ListSACCodes(ctx context.Context, params ListCodesParams) ([]domain.ReferenceCode, int, error) {
	return s.listCodes(ctx, domain.ItemTypeService.CodeTable(), params)
}

func filterCodes(b sq.SelectBuilder, params ListCodesParams) sq.SelectBuilder {
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := containsPattern(search)
		b = b.Where(sq.Or{sq.ILike{"code": pattern}, sq.ILike{"description": pattern}})
	}
	return b
}

func (s *PostgresStore) listCodes(ctx context.Context, table string, params ListCodesParams) ([]domain.ReferenceCode, int, error) {
	order, err := orderBy(codeSortColumns, params.SortBy, params.SortOrder)
	if err != nil {
		return nil, 0, err
	}
	from := catalogSchema + "." + table

	countQuery, countArgs, err := filterCodes(s.builder().Select("COUNT(*)").From(from), params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("store: list %s failed to build count query: %w", table, err)
	}
	var totalCount int
	if err := s.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("store: list %s failed to count codes: %w", table, err)
	}
	if totalCount == 0 {
		return []domain.ReferenceCode{}, 0, nil
	}

	limit, offset, err := page(params.Page, params.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("store: list %s: %w", table, err)
	}
	query, args, err := filterCodes(s.builder().Select(codeColumns...).From(from), params).
		OrderBy(order...).
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("store: list %s failed to build query: %w", table, err)
	}

	codes := make([]domain.ReferenceCode, 0, limit)
	if err := s.db.SelectContext(ctx, &codes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("store: list %s failed to query codes: %w", table, err)
	}
	return codes, totalCount, nil
}

// ImportCodes bulk-loads seed rows into the table backing itemType using
// COPY. Rows without an id get a fresh one. It returns the number of rows
// written.
func (s *PostgresStore) ImportCodes(ctx context.Context, itemType domain.ItemType, codes []domain.ReferenceCode) (int, error) {
	if len(codes) == 0 {
		return 0, nil
	}
	table := itemType.CodeTable()

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("store: ImportCodes failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, pq.CopyInSchema(catalogSchema, table, codeColumns...))
	if err != nil {
		return 0, fmt.Errorf("store: ImportCodes failed to prepare copy into %s: %w", table, err)
	}
	for _, c := range codes {
		id := c.ID
		if id == "" {
			id = ident.New()
		}
		if _, err := stmt.ExecContext(ctx, id, c.Code, c.Description); err != nil {
			stmt.Close()
			return 0, fmt.Errorf("store: ImportCodes failed to queue code %q: %w", c.Code, err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return 0, fmt.Errorf("store: ImportCodes failed to flush copy: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return 0, fmt.Errorf("store: ImportCodes failed to close copy: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("store: ImportCodes failed to commit: %w", err)
	}
	return len(codes), nil
}
