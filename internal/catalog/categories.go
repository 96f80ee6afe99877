package catalog

import (
	"context"

	"go.uber.org/zap"

	"catalog-service/internal/domain"
	"catalog-service/internal/ident"
	"catalog-service/internal/slug"
	"catalog-service/internal/store"
)

// CreateCategory stores a new category. The slug comes straight from the
// name; a duplicate name or slug in the store is reported as a conflict.
func (s *Service) CreateCategory(ctx context.Context, req CreateCategoryRequest) (*domain.Category, error) {
	if f := s.validateRequest(req); f != nil {
		return nil, f
	}
	category := &domain.Category{
		StoreID:     req.StoreID,
		Name:        req.Name,
		Description: req.Description,
		Slug:        slug.Make(req.Name),
	}
	created, err := s.categories.CreateCategory(ctx, category)
	if err != nil {
		return nil, s.storeFailure("CreateCategory", err)
	}
	s.logger.Info("category created",
		zap.String("storeId", created.StoreID),
		zap.String("categoryId", created.ID),
	)
	return created, nil
}

// UpdateCategory changes name and description. A nil category means it
// was not found.
func (s *Service) UpdateCategory(ctx context.Context, req UpdateCategoryRequest) (*domain.Category, error) {
	if f := s.validateRequest(req); f != nil {
		return nil, f
	}
	updated, err := s.categories.UpdateCategory(ctx, &domain.Category{
		ID:          req.CategoryID,
		StoreID:     req.StoreID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		return nil, s.storeFailure("UpdateCategory", err)
	}
	return updated, nil
}

func (s *Service) GetCategory(ctx context.Context, storeID, categoryID string) (*domain.Category, error) {
	category, err := s.categories.GetCategoryByID(ctx, storeID, categoryID)
	if err != nil {
		return nil, s.storeFailure("GetCategoryByID", err)
	}
	return category, nil
}

func (s *Service) GetCategoryBySlug(ctx context.Context, storeID, categorySlug string) (*domain.Category, error) {
	storeID, err := ident.Parse(storeID)
	if err != nil {
		return nil, invalidInput("Invalid store id", err)
	}
	category, err := s.categories.GetCategoryBySlug(ctx, storeID, categorySlug)
	if err != nil {
		return nil, s.storeFailure("GetCategoryBySlug", err)
	}
	if category == nil || category.IsDeleted {
		return nil, nil
	}
	return category, nil
}

// ListCategories returns one page of the store's live categories,
// optionally narrowed by a search over name and description.
func (s *Service) ListCategories(ctx context.Context, storeID string, q ListQuery, search string) (Page[domain.Category], error) {
	q, f := q.normalize()
	if f != nil {
		return Page[domain.Category]{}, f
	}
	categories, total, err := s.categories.ListCategories(ctx, store.ListCategoriesParams{
		StoreID:   storeID,
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Search:    search,
	})
	if err != nil {
		return Page[domain.Category]{}, s.storeFailure("ListCategories", err)
	}
	return newPage(categories, q, total), nil
}

func (s *Service) SoftDeleteCategories(ctx context.Context, storeID string, categoryIDs []string) (int64, error) {
	if len(categoryIDs) == 0 {
		return 0, invalidInput("At least one category id is required", nil)
	}
	n, err := s.categories.SoftDeleteCategories(ctx, storeID, categoryIDs)
	if err != nil {
		return 0, s.storeFailure("SoftDeleteCategories", err)
	}
	s.logger.Info("categories soft-deleted", zap.String("storeId", storeID), zap.Int64("count", n))
	return n, nil
}
