package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"catalog-service/internal/catalog"
	"catalog-service/internal/domain"
)

const (
	testStoreID    = "65a1b2c3d4e5f60718293a4b"
	testCategoryID = "65a1b2c3d4e5f60718293a01"
	testProductID  = "65a1b2c3d4e5f60718293b01"
)

// MockCatalogService is a mock implementation of CatalogService.
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogService) UpdateProduct(ctx context.Context, req catalog.UpdateProductRequest) (*domain.Product, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogService) GetProduct(ctx context.Context, storeID, productID string) (*domain.Product, error) {
	args := m.Called(ctx, storeID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogService) GetProductBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error) {
	args := m.Called(ctx, storeID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockCatalogService) ListProducts(ctx context.Context, storeID string, q catalog.ListQuery, filter catalog.ProductFilter) (catalog.Page[domain.Product], error) {
	args := m.Called(ctx, storeID, q, filter)
	return args.Get(0).(catalog.Page[domain.Product]), args.Error(1)
}

func (m *MockCatalogService) SoftDeleteProducts(ctx context.Context, storeID string, productIDs []string) (int64, error) {
	args := m.Called(ctx, storeID, productIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogService) BulkCreateProducts(ctx context.Context, storeID string, rows []catalog.ProductFields) (*catalog.BulkResult, error) {
	args := m.Called(ctx, storeID, rows)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.BulkResult), args.Error(1)
}

func (m *MockCatalogService) CreateCategory(ctx context.Context, req catalog.CreateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogService) UpdateCategory(ctx context.Context, req catalog.UpdateCategoryRequest) (*domain.Category, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogService) GetCategory(ctx context.Context, storeID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, storeID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogService) GetCategoryBySlug(ctx context.Context, storeID, slug string) (*domain.Category, error) {
	args := m.Called(ctx, storeID, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCatalogService) ListCategories(ctx context.Context, storeID string, q catalog.ListQuery, search string) (catalog.Page[domain.Category], error) {
	args := m.Called(ctx, storeID, q, search)
	return args.Get(0).(catalog.Page[domain.Category]), args.Error(1)
}

func (m *MockCatalogService) SoftDeleteCategories(ctx context.Context, storeID string, categoryIDs []string) (int64, error) {
	args := m.Called(ctx, storeID, categoryIDs)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogService) ListReferenceCodes(ctx context.Context, itemType string, q catalog.ListQuery, search string) (catalog.Page[domain.ReferenceCode], error) {
	args := m.Called(ctx, itemType, q, search)
	return args.Get(0).(catalog.Page[domain.ReferenceCode]), args.Error(1)
}

// Helper for setting up tests with the full chi router and middleware stack.
func setupTestChiServer(t *testing.T, svc CatalogService, db Pinger) *httptest.Server {
	t.Helper()
	handler := NewHTTPHandler(svc, db, nil)
	server := httptest.NewServer(NewRouter(handler, nil))
	t.Cleanup(server.Close)
	return server
}

// Helper function to get a pointer (useful for optional fields in domain structs)
func PtrTo[T any](v T) *T {
	return &v
}

// envelope mirrors Envelope with a typed payload for decoding.
type envelope[T any] struct {
	Data    T      `json:"data"`
	Message string `json:"message"`
}

func decodeBody[T any](t *testing.T, res *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	return out
}

func storeURL(server *httptest.Server, suffix string) string {
	return server.URL + "/api/v1/stores/" + testStoreID + suffix
}

func doJSON(t *testing.T, method, url string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(method, url, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { res.Body.Close() })
	return res
}

func TestHTTPHandler_CreateCategory_Success(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	now := time.Now().UTC().Truncate(time.Millisecond)
	input := CategoryInput{Name: "Summer Sale", Description: PtrTo("Seasonal picks")}
	expected := &domain.Category{
		ID:          testCategoryID,
		StoreID:     testStoreID,
		Name:        input.Name,
		Description: input.Description,
		Slug:        "summer-sale",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	svc.On("CreateCategory", mock.Anything, catalog.CreateCategoryRequest{
		StoreID:     testStoreID,
		Name:        input.Name,
		Description: input.Description,
	}).Return(expected, nil).Once()

	res := doJSON(t, http.MethodPost, storeURL(server, "/categories"), input)
	require.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Equal(t, "application/json", res.Header.Get("Content-Type"))

	body := decodeBody[envelope[domain.Category]](t, res)
	assert.Equal(t, testCategoryID, body.Data.ID)
	assert.Equal(t, "summer-sale", body.Data.Slug)
	require.NotNil(t, body.Data.Description)
	assert.Equal(t, "Seasonal picks", *body.Data.Description)
	assert.True(t, now.Equal(body.Data.CreatedAt))
	svc.AssertExpectations(t)
}

func TestHTTPHandler_CreateCategory_InvalidPayload(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	res, err := http.Post(storeURL(server, "/categories"), "application/json", bytes.NewBufferString(`{"name":`))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	body := decodeBody[ErrorResponse](t, res)
	assert.Equal(t, http.StatusBadRequest, body.Code)
	assert.Contains(t, body.Message, "Invalid request payload")
	svc.AssertNotCalled(t, "CreateCategory", mock.Anything, mock.Anything)
}

func TestHTTPHandler_CreateCategory_Conflict(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	failure := &catalog.Failure{
		Kind:    catalog.KindConflict,
		Message: "Category with the same name already exists in the store",
		Code:    http.StatusConflict,
	}
	svc.On("CreateCategory", mock.Anything, mock.Anything).Return(nil, failure).Once()

	res := doJSON(t, http.MethodPost, storeURL(server, "/categories"), CategoryInput{Name: "Shirts"})
	require.Equal(t, http.StatusConflict, res.StatusCode)
	body := decodeBody[ErrorResponse](t, res)
	assert.Equal(t, ErrorResponse{Message: failure.Message, Code: http.StatusConflict}, body)
}

func TestHTTPHandler_ListCategories_Success(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	page := catalog.Page[domain.Category]{
		Items: []domain.Category{{ID: testCategoryID, Name: "Shirts"}},
		Pagination: catalog.Pagination{
			Page: 2, PageSize: 5, NextPage: 3, PreviousPage: 1, TotalPages: 2, TotalResults: 6,
		},
	}
	svc.On("ListCategories", mock.Anything, testStoreID,
		catalog.ListQuery{Page: 2, PageSize: 5, SortBy: "name", SortOrder: "asc"}, "shirt").
		Return(page, nil).Once()

	res, err := http.Get(storeURL(server, "/categories?page=2&pageSize=5&sortBy=name&sortOrder=asc&search=shirt"))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[envelope[catalog.Page[domain.Category]]](t, res)
	require.Len(t, body.Data.Items, 1)
	assert.Equal(t, "Shirts", body.Data.Items[0].Name)
	assert.Equal(t, page.Pagination, body.Data.Pagination)
	svc.AssertExpectations(t)
}

func TestHTTPHandler_ListCategories_ClampsPageSize(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	svc.On("ListCategories", mock.Anything, testStoreID, catalog.ListQuery{PageSize: maxPageSize}, "").
		Return(catalog.Page[domain.Category]{Items: []domain.Category{}}, nil).Once()

	res, err := http.Get(storeURL(server, "/categories?page=abc&pageSize=5000"))
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)
	svc.AssertExpectations(t)
}

func TestHTTPHandler_GetCategory_Found(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	svc.On("GetCategory", mock.Anything, testStoreID, testCategoryID).
		Return(&domain.Category{ID: testCategoryID, Name: "Shirts"}, nil).Once()

	res, err := http.Get(storeURL(server, "/categories/"+testCategoryID))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[envelope[domain.Category]](t, res)
	assert.Equal(t, "Shirts", body.Data.Name)
}

func TestHTTPHandler_GetCategory_NotFound(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	svc.On("GetCategory", mock.Anything, testStoreID, testCategoryID).Return(nil, nil).Once()

	res, err := http.Get(storeURL(server, "/categories/"+testCategoryID))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[envelope[*domain.Category]](t, res)
	assert.Nil(t, body.Data)
	assert.Equal(t, msgCategoryNotFound, body.Message)
}

func TestHTTPHandler_GetCategoryBySlug(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	svc.On("GetCategoryBySlug", mock.Anything, testStoreID, "shirts").
		Return(&domain.Category{ID: testCategoryID, Name: "Shirts", Slug: "shirts"}, nil).Once()

	res, err := http.Get(storeURL(server, "/categories/slug/shirts"))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[envelope[domain.Category]](t, res)
	assert.Equal(t, testCategoryID, body.Data.ID)
	svc.AssertNotCalled(t, "GetCategory", mock.Anything, mock.Anything, mock.Anything)
}

func TestHTTPHandler_GetCategory_MalformedID(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	svc.On("GetCategory", mock.Anything, testStoreID, "nope").
		Return(nil, &catalog.Failure{Kind: catalog.KindInvalidInput, Message: "Invalid identifier", Code: http.StatusBadRequest}).Once()

	res, err := http.Get(storeURL(server, "/categories/nope"))
	require.NoError(t, err)
	defer res.Body.Close()

	require.Equal(t, http.StatusBadRequest, res.StatusCode)
	body := decodeBody[ErrorResponse](t, res)
	assert.Equal(t, "Invalid identifier", body.Message)
}

func TestHTTPHandler_UpdateCategory_Success(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	svc.On("UpdateCategory", mock.Anything, catalog.UpdateCategoryRequest{
		StoreID:    testStoreID,
		CategoryID: testCategoryID,
		Name:       "Tops",
	}).Return(&domain.Category{ID: testCategoryID, Name: "Tops", Slug: "shirts"}, nil).Once()

	res := doJSON(t, http.MethodPut, storeURL(server, "/categories/"+testCategoryID), CategoryInput{Name: "Tops"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[envelope[domain.Category]](t, res)
	assert.Equal(t, "Tops", body.Data.Name)
	assert.Equal(t, "shirts", body.Data.Slug)
}

func TestHTTPHandler_UpdateCategory_NotFound(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	svc.On("UpdateCategory", mock.Anything, mock.Anything).Return(nil, nil).Once()

	res := doJSON(t, http.MethodPut, storeURL(server, "/categories/"+testCategoryID), CategoryInput{Name: "Tops"})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[envelope[*domain.Category]](t, res)
	assert.Equal(t, msgCategoryNotFound, body.Message)
}

func TestHTTPHandler_SoftDeleteCategories(t *testing.T) {
	svc := new(MockCatalogService)
	server := setupTestChiServer(t, svc, nil)

	svc.On("SoftDeleteCategories", mock.Anything, testStoreID, []string{testCategoryID}).Return(int64(1), nil).Once()

	res := doJSON(t, http.MethodPost, storeURL(server, "/categories/delete"), IDsInput{IDs: []string{testCategoryID}})
	require.Equal(t, http.StatusOK, res.StatusCode)
	body := decodeBody[envelope[DeletedResponse]](t, res)
	assert.Equal(t, int64(1), body.Data.DeletedCount)
}
