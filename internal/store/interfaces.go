package store

import (
	"context"

	"github.com/shopspring/decimal"

	"catalog-service/internal/domain"
)

// ListProductsParams holds pagination, sorting and filters for a product listing.
//
// SortBy takes an API field name: id, name, slug, description, sellsPrice,
// purchasePrice, margin, quantity, lowStock, gstPercentage, hsnCode,
// createdAt or updatedAt. Any other name fails with ErrInvalidSortField.
// Empty sorts newest first. Page is capped at MaxPage.
type ListProductsParams struct {
	StoreID     string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string // "desc", "descending" or "-1" for descending; anything else ascending
	CategoryIDs []string
	ItemType    domain.ItemType // empty means both goods and services

	MinSellsPrice    *decimal.Decimal
	MaxSellsPrice    *decimal.Decimal
	MinPurchasePrice *decimal.Decimal
	MaxPurchasePrice *decimal.Decimal
	MinQuantity      *decimal.Decimal
	MaxQuantity      *decimal.Decimal
}

// ListCategoriesParams holds pagination, sorting and the search filter for categories.
// SortBy takes id, name, slug, description, createdAt or updatedAt.
type ListCategoriesParams struct {
	StoreID   string
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Search    string // case-insensitive substring over name and description
}

// ListCodesParams holds pagination, sorting and the search filter for HSN/SAC codes.
// SortBy takes id, code or description.
type ListCodesParams struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
	Search    string // case-insensitive substring over code and description
}

// ProductStorer defines the database operations for products.
// Lookups return (nil, nil) when nothing matches.
type ProductStorer interface {
	CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error)
	GetProductByID(ctx context.Context, storeID, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, int, error) // Returns products and total count
	SoftDeleteProducts(ctx context.Context, storeID string, productIDs []string) (int64, error)
}

// CategoryStorer defines the database operations for categories.
type CategoryStorer interface {
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, storeID, slug string) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, storeID, categoryID string) (*domain.Category, error)
	GetCategoriesByIDs(ctx context.Context, storeID string, categoryIDs []string) ([]domain.Category, error)
	ListCategories(ctx context.Context, params ListCategoriesParams) ([]domain.Category, int, error)
	SoftDeleteCategories(ctx context.Context, storeID string, categoryIDs []string) (int64, error)
}

// ReferenceCodeStorer defines read access to the HSN and SAC tables, plus
// the bulk import used to seed them.
type ReferenceCodeStorer interface {
	ListHSNCodes(ctx context.Context, params ListCodesParams) ([]domain.ReferenceCode, int, error)
	ListSACCodes(ctx context.Context, params ListCodesParams) ([]domain.ReferenceCode, int, error)
	ImportCodes(ctx context.Context, itemType domain.ItemType, codes []domain.ReferenceCode) (int, error)
}
