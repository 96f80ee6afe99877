package catalog

import (
	"context"

	"github.com/stretchr/testify/mock"

	"catalog-service/internal/domain"
	"catalog-service/internal/store"
)

// MockProductStorer is a mock implementation of store.ProductStorer.
// CreateProduct also accepts a func(*domain.Product) *domain.Product as its
// first return value to echo the input back.
type MockProductStorer struct {
	mock.Mock
}

func (m *MockProductStorer) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	switch v := args.Get(0).(type) {
	case func(*domain.Product) *domain.Product:
		return v(product), args.Error(1)
	case *domain.Product:
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockProductStorer) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	args := m.Called(ctx, product)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) GetProductBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error) {
	args := m.Called(ctx, storeID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) GetProductByID(ctx context.Context, storeID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, storeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductStorer) ListProducts(ctx context.Context, params store.ListProductsParams) ([]domain.Product, int, error) {
	args := m.Called(ctx, params)
	var products []domain.Product
	if arg0 := args.Get(0); arg0 != nil {
		products = arg0.([]domain.Product)
	}
	return products, args.Int(1), args.Error(2)
}

func (m *MockProductStorer) SoftDeleteProducts(ctx context.Context, storeID string, productIDs []string) (int64, error) {
	args := m.Called(ctx, storeID, productIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockCategoryStorer is a mock implementation of store.CategoryStorer.
type MockCategoryStorer struct {
	mock.Mock
}

func (m *MockCategoryStorer) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStorer) UpdateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	args := m.Called(ctx, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStorer) GetCategoryBySlug(ctx context.Context, storeID, slug string) (*domain.Category, error) {
	args := m.Called(ctx, storeID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStorer) GetCategoryByID(ctx context.Context, storeID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, storeID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryStorer) GetCategoriesByIDs(ctx context.Context, storeID string, categoryIDs []string) ([]domain.Category, error) {
	args := m.Called(ctx, storeID, categoryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryStorer) ListCategories(ctx context.Context, params store.ListCategoriesParams) ([]domain.Category, int, error) {
	args := m.Called(ctx, params)
	var categories []domain.Category
	if arg0 := args.Get(0); arg0 != nil {
		categories = arg0.([]domain.Category)
	}
	return categories, args.Int(1), args.Error(2)
}

func (m *MockCategoryStorer) SoftDeleteCategories(ctx context.Context, storeID string, categoryIDs []string) (int64, error) {
	args := m.Called(ctx, storeID, categoryIDs)
	return args.Get(0).(int64), args.Error(1)
}

// MockCodeStorer is a mock implementation of store.ReferenceCodeStorer.
type MockCodeStorer struct {
	mock.Mock
}

func (m *MockCodeStorer) ListHSNCodes(ctx context.Context, params store.ListCodesParams) ([]domain.ReferenceCode, int, error) {
	args := m.Called(ctx, params)
	var codes []domain.ReferenceCode
	if arg0 := args.Get(0); arg0 != nil {
		codes = arg0.([]domain.ReferenceCode)
	}
	return codes, args.Int(1), args.Error(2)
}

func (m *MockCodeStorer) ListSACCodes(ctx context.Context, params store.ListCodesParams) ([]domain.ReferenceCode, int, error) {
	args := m.Called(ctx, params)
	var codes []domain.ReferenceCode
	if arg0 := args.Get(0); arg0 != nil {
		codes = arg0.([]domain.ReferenceCode)
	}
	return codes, args.Int(1), args.Error(2)
}

func (m *MockCodeStorer) ImportCodes(ctx context.Context, itemType domain.ItemType, codes []domain.ReferenceCode) (int, error) {
	args := m.Called(ctx, itemType, codes)
	return args.Int(0), args.Error(1)
}
