package catalog

import (
	"context"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"
)

// ListReferenceCodes lists HSN codes for "Product" and SAC codes for
// "Service". Any other item type fails without reaching storage.
func (s *Service) ListReferenceCodes(ctx context.Context, itemType string, q ListQuery, search string) (Page[domain.ReferenceCode], error) {
	kind, err := domain.ParseItemType(itemType)
	if err != nil {
		return Page[domain.ReferenceCode]{}, invalidInput("Unsupported item type", err)
	}

	q, f := q.normalize()
	if f != nil {
		return Page[domain.ReferenceCode]{}, f
	}
	params := store.ListCodesParams{
		Page:      q.Page,
		PageSize:  q.PageSize,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Search:    search,
	}

	var (
		codes []domain.ReferenceCode
		total int
	)
	switch kind {
	case domain.ItemTypeService:
		codes, total, err = s.codes.ListSACCodes(ctx, params)
	default:
		codes, total, err = s.codes.ListHSNCodes(ctx, params)
	}
	if err != nil {
		return Page[domain.ReferenceCode]{}, s.storeFailure("List"+kind.CodeTable(), err)
	}
	return newPage(codes, q, total), nil
}

// ImportReferenceCodes seeds the code table behind itemType.
func (s *Service) ImportReferenceCodes(ctx context.Context, itemType string, codes []domain.ReferenceCode) (int, error) {
	kind, err := domain.ParseItemType(itemType)
	if err != nil {
		return 0, invalidInput("Unsupported item type", err)
	}
	n, err := s.codes.ImportCodes(ctx, kind, codes)
	if err != nil {
		return 0, s.storeFailure("ImportCodes", err)
	}
	return n, nil
}
