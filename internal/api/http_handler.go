package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"catalog-service/internal/catalog"
	"catalog-service/internal/domain"
	"catalog-service/internal/logger"
)

const maxPageSize = 100

// CatalogService is the set of catalog operations the HTTP layer exposes.
type CatalogService interface {
	CreateProduct(ctx context.Context, req catalog.CreateProductRequest) (*domain.Product, error)
	UpdateProduct(ctx context.Context, req catalog.UpdateProductRequest) (*domain.Product, error)
	GetProduct(ctx context.Context, storeID, productID string) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error)
	ListProducts(ctx context.Context, storeID string, q catalog.ListQuery, filter catalog.ProductFilter) (catalog.Page[domain.Product], error)
	SoftDeleteProducts(ctx context.Context, storeID string, productIDs []string) (int64, error)
	BulkCreateProducts(ctx context.Context, storeID string, rows []catalog.ProductFields) (*catalog.BulkResult, error)

	CreateCategory(ctx context.Context, req catalog.CreateCategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, req catalog.UpdateCategoryRequest) (*domain.Category, error)
	GetCategory(ctx context.Context, storeID, categoryID string) (*domain.Category, error)
	GetCategoryBySlug(ctx context.Context, storeID, slug string) (*domain.Category, error)
	ListCategories(ctx context.Context, storeID string, q catalog.ListQuery, search string) (catalog.Page[domain.Category], error)
	SoftDeleteCategories(ctx context.Context, storeID string, categoryIDs []string) (int64, error)

	ListReferenceCodes(ctx context.Context, itemType string, q catalog.ListQuery, search string) (catalog.Page[domain.ReferenceCode], error)
}

// Pinger reports whether the backing database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	catalog CatalogService
	db      Pinger
	logger  *zap.Logger
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(svc CatalogService, db Pinger, log *zap.Logger) *HTTPHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTTPHandler{
		catalog: svc,
		db:      db,
		logger:  log.Named("http"),
	}
}

// --- Helpers ---

// Envelope wraps every successful response.
type Envelope struct {
	Data    any    `json:"data"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Message: message, Code: code})
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

func respondWithData(w http.ResponseWriter, code int, data any) {
	respondWithJSON(w, code, Envelope{Data: data})
}

// respondNotFound answers a lookup miss. Misses are not errors for this API.
func respondNotFound(w http.ResponseWriter, message string) {
	respondWithJSON(w, http.StatusOK, Envelope{Data: nil, Message: message})
}

// respondWithFailure renders a service error. Internal failures are logged
// with the request-scoped logger before the generic message goes out.
func (h *HTTPHandler) respondWithFailure(w http.ResponseWriter, r *http.Request, op string, err error) {
	f := catalog.AsFailure(err)
	if f.Kind == catalog.KindInternal {
		logger.FromContext(r.Context(), h.logger).Error("request failed", zap.String("op", op), zap.Error(err))
	}
	respondWithError(w, f.Code, f.Message)
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}

// listQueryFromRequest reads page, pageSize, sortBy and sortOrder. Missing
// or non-positive numbers fall back to the catalog defaults.
func listQueryFromRequest(r *http.Request) catalog.ListQuery {
	q := r.URL.Query()
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page <= 0 {
		page = 0
	}
	pageSize, err := strconv.Atoi(q.Get("pageSize"))
	if err != nil || pageSize <= 0 {
		pageSize = 0
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return catalog.ListQuery{
		Page:      page,
		PageSize:  pageSize,
		SortBy:    q.Get("sortBy"),
		SortOrder: q.Get("sortOrder"),
	}
}

// splitList accepts both repeated and comma separated query values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// decimalParam parses an optional decimal query parameter.
func decimalParam(r *http.Request, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// IDsInput is the body of the soft-delete endpoints.
type IDsInput struct {
	IDs []string `json:"ids"`
}

// DeletedResponse reports how many rows a soft delete hid.
type DeletedResponse struct {
	DeletedCount int64 `json:"deletedCount"`
}

func (h *HTTPHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.db != nil {
		if err := h.db.Ping(r.Context()); err != nil {
			logger.FromContext(r.Context(), h.logger).Warn("health check failed", zap.Error(err))
			respondWithError(w, http.StatusServiceUnavailable, "database unavailable")
			return
		}
	}
	respondWithData(w, http.StatusOK, map[string]string{"status": "ok"})
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/healthz", h.Health)

	r.Route("/api/v1/stores/{storeId}", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Post("/", h.CreateProduct)
			r.Get("/", h.ListProducts)
			r.Post("/bulk", h.BulkCreateProducts)
			r.Post("/delete", h.SoftDeleteProducts)
			r.Get("/slug/{slug}", h.GetProductBySlug)
			r.Route("/{productId}", func(r chi.Router) {
				r.Get("/", h.GetProduct)
				r.Put("/", h.UpdateProduct)
			})
		})

		r.Route("/categories", func(r chi.Router) {
			r.Post("/", h.CreateCategory)
			r.Get("/", h.ListCategories)
			r.Post("/delete", h.SoftDeleteCategories)
			r.Get("/slug/{slug}", h.GetCategoryBySlug)
			r.Route("/{categoryId}", func(r chi.Router) {
				r.Get("/", h.GetCategory)
				r.Put("/", h.UpdateCategory)
			})
		})
	})

	r.Get("/api/v1/tax-codes/{itemType}", h.ListReferenceCodes)
}
