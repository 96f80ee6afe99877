package catalog

import "catalog-service/internal/store"

// Pagination describes the window a listing returned.
type Pagination struct {
	Page         int `json:"page"`
	PageSize     int `json:"pageSize"`
	NextPage     int `json:"nextPage"`
	PreviousPage int `json:"previousPage"`
	TotalPages   int `json:"totalPages"`
	TotalResults int `json:"totalResults"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T        `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// normalize applies the default page and page size and rejects pages past
// store.MaxPage.
func (q ListQuery) normalize() (ListQuery, *Failure) {
	if q.Page <= 0 {
		q.Page = store.DefaultPage
	}
	if q.PageSize <= 0 {
		q.PageSize = store.DefaultPageSize
	}
	if q.Page > store.MaxPage {
		return q, invalidInput("Page is out of range", store.ErrPageOutOfRange)
	}
	return q, nil
}

// newPage builds the page envelope. NextPage and PreviousPage are plain
// neighbours of Page and are not clamped to the result range.
func newPage[T any](items []T, q ListQuery, total int) Page[T] {
	if items == nil {
		items = []T{}
	}
	return Page[T]{
		Items: items,
		Pagination: Pagination{
			Page:         q.Page,
			PageSize:     q.PageSize,
			NextPage:     q.Page + 1,
			PreviousPage: q.Page - 1,
			TotalPages:   (total + q.PageSize - 1) / q.PageSize,
			TotalResults: total,
		},
	}
}
