package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"catalog-service/internal/domain"
	"catalog-service/internal/ident"
)

var categoryColumns = []string{
	"id", "store_id", "name", "description", "slug", "is_deleted", "created_at", "updated_at",
}

var returningCategory = "RETURNING " + strings.Join(categoryColumns, ", ")

func categoryConflict(err error) error {
	switch {
	case constraintViolated(err, "categories_store_name_key"):
		return ErrCategoryNameExists
	case constraintViolated(err, "categories_store_slug_key"):
		return ErrCategorySlugExists
	}
	return nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	storeID, err := ident.Parse(category.StoreID)
	if err != nil {
		return nil, fmt.Errorf("%w: store id: %v", ErrInvalidID, err)
	}
	now := s.timestamp()
	query, args, err := s.builder().Insert(categoriesTable).
		Columns(categoryColumns...).
		Values(ident.New(), storeID, category.Name, category.Description, category.Slug, false, now, now).
		Suffix(returningCategory).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: CreateCategory failed to build query: %w", err)
	}

	var created domain.Category
	if err := s.db.GetContext(ctx, &created, query, args...); err != nil {
		if conflict := categoryConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("store: CreateCategory failed to scan row: %w", err)
	}
	return &created, nil
}

// UpdateCategory replaces name and description of a live category. The slug
// is kept. A nil category and nil error mean nothing matched.
func (s *PostgresStore) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	storeID, categoryID, err := parseScoped(category.StoreID, category.ID)
	if err != nil {
		return nil, err
	}
	query, args, err := s.builder().Update(categoriesTable).
		Set("name", category.Name).
		Set("description", category.Description).
		Set("updated_at", s.timestamp()).
		Where(sq.Eq{"id": categoryID}).
		Where(sq.Eq{"store_id": storeID}).
		Where("is_deleted = FALSE").
		Suffix(returningCategory).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: UpdateCategory failed to build query: %w", err)
	}

	var updated domain.Category
	if err := s.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		if conflict := categoryConflict(err); conflict != nil {
			return nil, conflict
		}
		return nil, fmt.Errorf("store: UpdateCategory failed to scan row: %w", err)
	}
	return &updated, nil
}

func (s *PostgresStore) GetCategoryBySlug(ctx context.Context, storeID, slug string) (*domain.Category, error) {
	query, args, err := s.builder().Select(categoryColumns...).
		From(categoriesTable).
		Where(sq.Eq{"store_id": storeID}).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: GetCategoryBySlug failed to build query: %w", err)
	}

	var category domain.Category
	if err := s.db.GetContext(ctx, &category, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: GetCategoryBySlug failed to scan row: %w", err)
	}
	return &category, nil
}

func (s *PostgresStore) GetCategoryByID(ctx context.Context, storeID, categoryID string) (*domain.Category, error) {
	storeID, categoryID, err := parseScoped(storeID, categoryID)
	if err != nil {
		return nil, err
	}
	query, args, err := s.builder().Select(categoryColumns...).
		From(categoriesTable).
		Where(sq.Eq{"id": categoryID}).
		Where(sq.Eq{"store_id": storeID}).
		Where("is_deleted = FALSE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: GetCategoryByID failed to build query: %w", err)
	}

	var category domain.Category
	if err := s.db.GetContext(ctx, &category, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: GetCategoryByID failed to scan row: %w", err)
	}
	return &category, nil
}

// GetCategoriesByIDs returns the live categories of the store among ids, in
// no particular order.
func (s *PostgresStore) GetCategoriesByIDs(ctx context.Context, storeID string, categoryIDs []string) ([]domain.Category, error) {
	if len(categoryIDs) == 0 {
		return []domain.Category{}, nil
	}
	query, args, err := s.builder().Select(categoryColumns...).
		From(categoriesTable).
		Where(sq.Eq{"store_id": storeID}).
		Where(sq.Eq{"id": categoryIDs}).
		Where("is_deleted = FALSE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: GetCategoriesByIDs failed to build query: %w", err)
	}

	categories := make([]domain.Category, 0, len(categoryIDs))
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, fmt.Errorf("store: GetCategoriesByIDs failed to query categories: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) filterCategories(b sq.SelectBuilder, params ListCategoriesParams) sq.SelectBuilder {
	b = b.Where(sq.Eq{"store_id": params.StoreID}).Where("is_deleted = FALSE")
	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := containsPattern(search)
		b = b.Where(sq.Or{sq.ILike{"name": pattern}, sq.ILike{"description": pattern}})
	}
	return b
}

func (s *PostgresStore) ListCategories(ctx context.Context, params ListCategoriesParams) ([]domain.Category, int, error) {
	storeID, err := ident.Parse(params.StoreID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: store id: %v", ErrInvalidID, err)
	}
	params.StoreID = storeID
	order, err := orderBy(categorySortColumns, params.SortBy, params.SortOrder)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := s.filterCategories(s.builder().Select("COUNT(*)").From(categoriesTable), params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListCategories failed to build count query: %w", err)
	}
	var totalCount int
	if err := s.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("store: ListCategories failed to count categories: %w", err)
	}
	if totalCount == 0 {
		return []domain.Category{}, 0, nil
	}

	limit, offset, err := page(params.Page, params.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListCategories: %w", err)
	}
	query, args, err := s.filterCategories(s.builder().Select(categoryColumns...).From(categoriesTable), params).
		OrderBy(order...).
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListCategories failed to build query: %w", err)
	}

	categories := make([]domain.Category, 0, limit)
	if err := s.db.SelectContext(ctx, &categories, query, args...); err != nil {
		return nil, 0, fmt.Errorf("store: ListCategories failed to query categories: %w", err)
	}
	return categories, totalCount, nil
}

func (s *PostgresStore) SoftDeleteCategories(ctx context.Context, storeID string, categoryIDs []string) (int64, error) {
	return s.softDelete(ctx, categoriesTable, "SoftDeleteCategories", storeID, categoryIDs)
}
