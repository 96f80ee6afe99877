package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"catalog-service/internal/catalog"
)

const msgProductNotFound = "Product not found in the store"

func (h *HTTPHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var input catalog.ProductFields
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	created, err := h.catalog.CreateProduct(r.Context(), catalog.CreateProductRequest{
		StoreID:       chi.URLParam(r, "storeId"),
		ProductFields: input,
	})
	if err != nil {
		h.respondWithFailure(w, r, "CreateProduct", err)
		return
	}
	respondWithData(w, http.StatusCreated, created)
}

// BulkCreateInput is the body of the bulk upload endpoint.
type BulkCreateInput struct {
	Products []catalog.ProductFields `json:"products"`
}

// BulkCreateProducts answers 201 when every row was created and 207 when
// some rows failed. Per-row outcomes are always in the body.
func (h *HTTPHandler) BulkCreateProducts(w http.ResponseWriter, r *http.Request) {
	var input BulkCreateInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	result, err := h.catalog.BulkCreateProducts(r.Context(), chi.URLParam(r, "storeId"), input.Products)
	if err != nil {
		h.respondWithFailure(w, r, "BulkCreateProducts", err)
		return
	}
	status := http.StatusCreated
	if result.Failed > 0 {
		status = http.StatusMultiStatus
	}
	respondWithData(w, status, result)
}

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ProductFilter{
		Category: splitList(r.URL.Query()["category"]),
		ItemType: r.URL.Query().Get("itemType"),
	}
	bounds := []struct {
		name string
		dst  **decimal.Decimal
	}{
		{"minSellsPrice", &filter.MinSellsPrice},
		{"maxSellsPrice", &filter.MaxSellsPrice},
		{"minPurchasePrice", &filter.MinPurchasePrice},
		{"maxPurchasePrice", &filter.MaxPurchasePrice},
		{"minQuantity", &filter.MinQuantity},
		{"maxQuantity", &filter.MaxQuantity},
	}
	for _, b := range bounds {
		v, err := decimalParam(r, b.name)
		if err != nil {
			respondWithError(w, http.StatusBadRequest, "Invalid "+b.name+": must be a number")
			return
		}
		*b.dst = v
	}

	page, err := h.catalog.ListProducts(r.Context(), chi.URLParam(r, "storeId"), listQueryFromRequest(r), filter)
	if err != nil {
		h.respondWithFailure(w, r, "ListProducts", err)
		return
	}
	respondWithData(w, http.StatusOK, page)
}

func (h *HTTPHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "productId"))
	if err != nil {
		h.respondWithFailure(w, r, "GetProduct", err)
		return
	}
	if product == nil {
		respondNotFound(w, msgProductNotFound)
		return
	}
	respondWithData(w, http.StatusOK, product)
}

func (h *HTTPHandler) GetProductBySlug(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProductBySlug(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondWithFailure(w, r, "GetProductBySlug", err)
		return
	}
	if product == nil {
		respondNotFound(w, msgProductNotFound)
		return
	}
	respondWithData(w, http.StatusOK, product)
}

func (h *HTTPHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var input catalog.ProductFields
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	updated, err := h.catalog.UpdateProduct(r.Context(), catalog.UpdateProductRequest{
		StoreID:       chi.URLParam(r, "storeId"),
		ProductID:     chi.URLParam(r, "productId"),
		ProductFields: input,
	})
	if err != nil {
		h.respondWithFailure(w, r, "UpdateProduct", err)
		return
	}
	if updated == nil {
		respondNotFound(w, msgProductNotFound)
		return
	}
	respondWithData(w, http.StatusOK, updated)
}

func (h *HTTPHandler) SoftDeleteProducts(w http.ResponseWriter, r *http.Request) {
	var input IDsInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	n, err := h.catalog.SoftDeleteProducts(r.Context(), chi.URLParam(r, "storeId"), input.IDs)
	if err != nil {
		h.respondWithFailure(w, r, "SoftDeleteProducts", err)
		return
	}
	respondWithData(w, http.StatusOK, DeletedResponse{DeletedCount: n})
}
