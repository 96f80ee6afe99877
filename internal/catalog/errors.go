package catalog

import (
	"errors"
	"net/http"

	"catalog-service/internal/ident"
	"catalog-service/internal/store"
)

// Kind classifies a Failure.
type Kind int

const (
	KindInvalidInput Kind = iota + 1
	KindConflict
	KindInternal
)

const msgInternal = "Something went wrong, Please try again"

// Failure is the error every Service method returns. Code is an HTTP-style
// status the caller may surface verbatim.
type Failure struct {
	Kind    Kind   `json:"-"`
	Message string `json:"message"`
	Code    int    `json:"code"`
	Err     error  `json:"-"`
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Message + ": " + f.Err.Error()
	}
	return f.Message
}

func (f *Failure) Unwrap() error { return f.Err }

func invalidInput(message string, err error) *Failure {
	return &Failure{Kind: KindInvalidInput, Message: message, Code: http.StatusBadRequest, Err: err}
}

func conflict(message string, err error) *Failure {
	return &Failure{Kind: KindConflict, Message: message, Code: http.StatusConflict, Err: err}
}

func internal(err error) *Failure {
	return &Failure{Kind: KindInternal, Message: msgInternal, Code: http.StatusInternalServerError, Err: err}
}

// AsFailure extracts a *Failure from err. Anything else is reported as an
// internal failure wrapping err.
func AsFailure(err error) *Failure {
	if err == nil {
		return nil
	}
	var f *Failure
	if errors.As(err, &f) {
		return f
	}
	return internal(err)
}

// classify maps store errors onto the failure taxonomy.
func classify(err error) *Failure {
	switch {
	case errors.Is(err, store.ErrInvalidID), errors.Is(err, ident.ErrMalformed):
		return invalidInput("Invalid identifier", err)
	case errors.Is(err, store.ErrInvalidSortField):
		return invalidInput("Unsupported sort field", err)
	case errors.Is(err, store.ErrPageOutOfRange):
		return invalidInput("Page is out of range", err)
	case errors.Is(err, store.ErrCategoryNameExists):
		return conflict("Category with the same name already exists in the store", err)
	case errors.Is(err, store.ErrCategorySlugExists):
		return conflict("Category with the same slug already exists in the store", err)
	case errors.Is(err, store.ErrProductSlugExists):
		return conflict("Product with the same slug already exists in the store", err)
	}
	return internal(err)
}
