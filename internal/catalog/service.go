// Package catalog orchestrates product, category and tax-code operations on
// top of the store layer. Every method returns either a value or a *Failure.
package catalog

import (
	"context"
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"catalog-service/internal/ident"
	"catalog-service/internal/slug"
	"catalog-service/internal/store"
)

// Slugger derives a slug for name, consulting exists on collisions.
type Slugger interface {
	Generate(ctx context.Context, name string, exists slug.ProbeFunc) (string, error)
}

// Options tunes the service.
type Options struct {
	// BulkConcurrency bounds the number of rows created at once by
	// BulkCreateProducts. Values below 1 mean 8.
	BulkConcurrency int
}

// Service implements the catalog use cases.
type Service struct {
	products   store.ProductStorer
	categories store.CategoryStorer
	codes      store.ReferenceCodeStorer
	slugger    Slugger
	logger     *zap.Logger
	validate   *validator.Validate
	bulkLimit  int
}

// NewService wires the service with its collaborators.
func NewService(
	products store.ProductStorer,
	categories store.CategoryStorer,
	codes store.ReferenceCodeStorer,
	slugger Slugger,
	logger *zap.Logger,
	opts Options,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	limit := opts.BulkConcurrency
	if limit < 1 {
		limit = 8
	}
	return &Service{
		products:   products,
		categories: categories,
		codes:      codes,
		slugger:    slugger,
		logger:     logger.Named("catalog"),
		validate:   newValidator(),
		bulkLimit:  limit,
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
	_ = v.RegisterValidation("objectid", func(fl validator.FieldLevel) bool {
		return ident.Valid(fl.Field().String())
	})
	return v
}

// validateRequest runs struct validation and renders every problem as a
// readable invalid-input failure.
func (s *Service) validateRequest(req any) *Failure {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return invalidInput("Validation failed", err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeFieldError(fe))
	}
	return invalidInput("Validation failed: "+strings.Join(parts, "; "), err)
}

func describeFieldError(fe validator.FieldError) string {
	field := jsonPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_if", "required_unless":
		return fmt.Sprintf("%s is required when %s", field, conditionText(fe))
	case "objectid":
		return field + " must be a 24 character hex identifier"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", field, fe.Param())
	case "gte", "gt", "lte", "max":
		return fmt.Sprintf("%s must satisfy %s=%s", field, fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed on %s", field, fe.Tag())
}

// jsonPath drops Go type names (request struct, embedded structs) from a
// validator namespace, leaving the JSON path.
func jsonPath(namespace string) string {
	segments := strings.Split(namespace, ".")
	kept := segments[:0]
	for _, seg := range segments {
		if seg != "" && unicode.IsUpper(rune(seg[0])) {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, ".")
}

func conditionText(fe validator.FieldError) string {
	fields := strings.Fields(fe.Param())
	if len(fields) != 2 {
		return fe.Param()
	}
	if fe.Tag() == "required_unless" {
		return fmt.Sprintf("%s is not %s", lowerFirst(fields[0]), fields[1])
	}
	return fmt.Sprintf("%s is %s", lowerFirst(fields[0]), fields[1])
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// storeFailure classifies err and logs it when it is not the caller's fault.
func (s *Service) storeFailure(op string, err error) *Failure {
	f := classify(err)
	if f.Kind == KindInternal {
		s.logger.Error("store operation failed", zap.String("op", op), zap.Error(err))
	} else {
		s.logger.Debug("store operation rejected", zap.String("op", op), zap.Error(err))
	}
	return f
}
