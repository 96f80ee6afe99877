package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"catalog-service/internal/catalog"
)

const msgCategoryNotFound = "Category not found in the store"

// CategoryInput defines the expected input for creating or updating a category.
type CategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *HTTPHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	created, err := h.catalog.CreateCategory(r.Context(), catalog.CreateCategoryRequest{
		StoreID:     chi.URLParam(r, "storeId"),
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		h.respondWithFailure(w, r, "CreateCategory", err)
		return
	}
	respondWithData(w, http.StatusCreated, created)
}

func (h *HTTPHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.ListCategories(r.Context(), chi.URLParam(r, "storeId"),
		listQueryFromRequest(r), r.URL.Query().Get("search"))
	if err != nil {
		h.respondWithFailure(w, r, "ListCategories", err)
		return
	}
	respondWithData(w, http.StatusOK, page)
}

func (h *HTTPHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalog.GetCategory(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "categoryId"))
	if err != nil {
		h.respondWithFailure(w, r, "GetCategory", err)
		return
	}
	if category == nil {
		respondNotFound(w, msgCategoryNotFound)
		return
	}
	respondWithData(w, http.StatusOK, category)
}

func (h *HTTPHandler) GetCategoryBySlug(w http.ResponseWriter, r *http.Request) {
	category, err := h.catalog.GetCategoryBySlug(r.Context(), chi.URLParam(r, "storeId"), chi.URLParam(r, "slug"))
	if err != nil {
		h.respondWithFailure(w, r, "GetCategoryBySlug", err)
		return
	}
	if category == nil {
		respondNotFound(w, msgCategoryNotFound)
		return
	}
	respondWithData(w, http.StatusOK, category)
}

func (h *HTTPHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var input CategoryInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	updated, err := h.catalog.UpdateCategory(r.Context(), catalog.UpdateCategoryRequest{
		StoreID:     chi.URLParam(r, "storeId"),
		CategoryID:  chi.URLParam(r, "categoryId"),
		Name:        input.Name,
		Description: input.Description,
	})
	if err != nil {
		h.respondWithFailure(w, r, "UpdateCategory", err)
		return
	}
	if updated == nil {
		respondNotFound(w, msgCategoryNotFound)
		return
	}
	respondWithData(w, http.StatusOK, updated)
}

func (h *HTTPHandler) SoftDeleteCategories(w http.ResponseWriter, r *http.Request) {
	var input IDsInput
	if err := decodeJSON(r, &input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	n, err := h.catalog.SoftDeleteCategories(r.Context(), chi.URLParam(r, "storeId"), input.IDs)
	if err != nil {
		h.respondWithFailure(w, r, "SoftDeleteCategories", err)
		return
	}
	respondWithData(w, http.StatusOK, DeletedResponse{DeletedCount: n})
}

// ListReferenceCodes serves HSN codes for itemType "Product" and SAC codes
// for "Service".
func (h *HTTPHandler) ListReferenceCodes(w http.ResponseWriter, r *http.Request) {
	page, err := h.catalog.ListReferenceCodes(r.Context(), chi.URLParam(r, "itemType"),
		listQueryFromRequest(r), r.URL.Query().Get("search"))
	if err != nil {
		h.respondWithFailure(w, r, "ListReferenceCodes", err)
		return
	}
	respondWithData(w, http.StatusOK, page)
}
