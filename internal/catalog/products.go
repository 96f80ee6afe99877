package catalog

import (
	"context"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"catalog-service/internal/domain"
	"catalog-service/internal/ident"
	"catalog-service/internal/store"
)

// buildUnits turns the flat unit fields into the selling unit and, when
// both a name and a conversion are given, the purchase unit.
func buildUnits(f ProductFields) (domain.Unit, *domain.Unit) {
	unit := domain.Unit{Name: f.Unit}
	if f.PurchaseUnitName == nil || *f.PurchaseUnitName == "" || f.PurchaseUnitConversion == nil {
		return unit, nil
	}
	conv := *f.PurchaseUnitConversion
	return unit, &domain.Unit{Name: *f.PurchaseUnitName, Conversion: &conv}
}

// toProduct copies request fields onto a product, canonicalising the
// category and inventory references. Identity, slug and history are left
// to the caller.
func toProduct(storeID string, f ProductFields) (*domain.Product, error) {
	categoryIDs, err := ident.ParseAll(f.Category)
	if err != nil {
		return nil, invalidInput("Invalid category id", err)
	}
	inventory := make(domain.InventoryProducts, len(f.InventoryProducts))
	for i, item := range f.InventoryProducts {
		if item.ProductID, err = ident.Parse(item.ProductID); err != nil {
			return nil, invalidInput("Invalid inventory product id", err)
		}
		inventory[i] = item
	}

	unit, purchaseUnit := buildUnits(f)
	p := &domain.Product{
		StoreID:           storeID,
		Name:              f.Name,
		Description:       f.Description,
		PurchasePrice:     f.PurchasePrice,
		Margin:            f.Margin,
		AsPerMargin:       f.AsPerMargin,
		CategoryIDs:       pq.StringArray(categoryIDs),
		Unit:              unit,
		PurchaseUnit:      purchaseUnit,
		Quantity:          f.Quantity,
		LowStock:          f.LowStock,
		HeroImage:         f.HeroImage,
		Images:            pq.StringArray(f.Images),
		DeliveryTime:      f.DeliveryTime,
		Discounts:         domain.Discounts(f.Discounts),
		Variants:          domain.Variants(f.Variants),
		IsInventory:       f.IsInventory,
		InventoryProducts: inventory,
		IsService:         f.IsService,
		HSNCode:           f.HSNCode,
		GSTPercentage:     f.GSTPercentage,
		Cess:              f.Cess,
		TaxIncluded:       f.TaxIncluded,
		TaxPreference:     f.TaxPreference,
		AdditionalFields:  domain.AdditionalFields(f.AdditionalFields),
	}
	if f.SellsPrice != nil {
		p.SellsPrice = *f.SellsPrice
	}
	if f.Account != nil {
		p.Account = *f.Account
	}
	p.Normalize()
	return p, nil
}

// CreateProduct validates the request, reserves a store-unique slug and
// stores the product.
func (s *Service) CreateProduct(ctx context.Context, req CreateProductRequest) (*domain.Product, error) {
	if f := s.validateRequest(req); f != nil {
		return nil, f
	}
	storeID, err := ident.Parse(req.StoreID)
	if err != nil {
		return nil, invalidInput("Invalid store id", err)
	}
	product, err := toProduct(storeID, req.ProductFields)
	if err != nil {
		return nil, err
	}

	productSlug, err := s.slugger.Generate(ctx, req.Name, func(ctx context.Context, candidate string) (bool, error) {
		existing, err := s.products.GetProductBySlug(ctx, storeID, candidate)
		return existing != nil, err
	})
	if err != nil {
		return nil, s.storeFailure("GetProductBySlug", err)
	}

	product.Slug = productSlug

	created, err := s.products.CreateProduct(ctx, product)
	if err != nil {
		return nil, s.storeFailure("CreateProduct", err)
	}
	s.logger.Info("product created",
		zap.String("storeId", storeID),
		zap.String("productId", created.ID),
		zap.String("slug", created.Slug),
	)
	return created, nil
}

// UpdateProduct replaces the mutable fields of a live product. Slug and
// store are never changed. Price and GST changes are appended to the
// product history. A nil product means it was not found.
func (s *Service) UpdateProduct(ctx context.Context, req UpdateProductRequest) (*domain.Product, error) {
	if f := s.validateRequest(req); f != nil {
		return nil, f
	}
	current, err := s.products.GetProductByID(ctx, req.StoreID, req.ProductID)
	if err != nil {
		return nil, s.storeFailure("GetProductByID", err)
	}
	if current == nil {
		return nil, nil
	}

	product, err := toProduct(current.StoreID, req.ProductFields)
	if err != nil {
		return nil, err
	}
	product.ID = current.ID
	product.Slug = current.Slug
	product.History = appendHistory(current, product, time.Now().UTC())

	updated, err := s.products.UpdateProduct(ctx, product)
	if err != nil {
		return nil, s.storeFailure("UpdateProduct", err)
	}
	return updated, nil
}

// appendHistory carries the current history forward, recording the new
// sells price and GST rate when they differ from the stored ones.
func appendHistory(current, next *domain.Product, at time.Time) domain.History {
	h := domain.History{
		SellsPrice:    append([]domain.HistoryEntry{}, current.History.SellsPrice...),
		GSTPercentage: append([]domain.HistoryEntry{}, current.History.GSTPercentage...),
	}
	if !current.SellsPrice.Equal(next.SellsPrice) {
		h.SellsPrice = append(h.SellsPrice, domain.HistoryEntry{Date: at, Changes: next.SellsPrice})
	}
	if !decimalPtrEqual(current.GSTPercentage, next.GSTPercentage) && next.GSTPercentage != nil {
		h.GSTPercentage = append(h.GSTPercentage, domain.HistoryEntry{Date: at, Changes: *next.GSTPercentage})
	}
	return h
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// GetProduct returns a live product with its categories expanded, or nil
// when the store has no such product.
func (s *Service) GetProduct(ctx context.Context, storeID, productID string) (*domain.Product, error) {
	product, err := s.products.GetProductByID(ctx, storeID, productID)
	if err != nil {
		return nil, s.storeFailure("GetProductByID", err)
	}
	return product, nil
}

// GetProductBySlug returns the store's product owning slug, or nil.
// Soft-deleted products are reported as absent.
func (s *Service) GetProductBySlug(ctx context.Context, storeID, productSlug string) (*domain.Product, error) {
	storeID, err := ident.Parse(storeID)
	if err != nil {
		return nil, invalidInput("Invalid store id", err)
	}
	product, err := s.products.GetProductBySlug(ctx, storeID, productSlug)
	if err != nil {
		return nil, s.storeFailure("GetProductBySlug", err)
	}
	if product == nil || product.IsDeleted {
		return nil, nil
	}
	return product, nil
}

// ListProducts returns one page of the store's live products.
func (s *Service) ListProducts(ctx context.Context, storeID string, q ListQuery, filter ProductFilter) (Page[domain.Product], error) {
	q, f := q.normalize()
	if f != nil {
		return Page[domain.Product]{}, f
	}
	params := store.ListProductsParams{
		StoreID:          storeID,
		Page:             q.Page,
		PageSize:         q.PageSize,
		SortBy:           q.SortBy,
		SortOrder:        q.SortOrder,
		CategoryIDs:      filter.Category,
		MinSellsPrice:    filter.MinSellsPrice,
		MaxSellsPrice:    filter.MaxSellsPrice,
		MinPurchasePrice: filter.MinPurchasePrice,
		MaxPurchasePrice: filter.MaxPurchasePrice,
		MinQuantity:      filter.MinQuantity,
		MaxQuantity:      filter.MaxQuantity,
	}
	// Only Product and Service narrow the listing; other values list both.
	if itemType, err := domain.ParseItemType(filter.ItemType); err == nil {
		params.ItemType = itemType
	}

	products, total, err := s.products.ListProducts(ctx, params)
	if err != nil {
		return Page[domain.Product]{}, s.storeFailure("ListProducts", err)
	}
	return newPage(products, q, total), nil
}

// SoftDeleteProducts hides the given products of the store and returns how
// many were newly deleted.
func (s *Service) SoftDeleteProducts(ctx context.Context, storeID string, productIDs []string) (int64, error) {
	if len(productIDs) == 0 {
		return 0, invalidInput("At least one product id is required", nil)
	}
	n, err := s.products.SoftDeleteProducts(ctx, storeID, productIDs)
	if err != nil {
		return 0, s.storeFailure("SoftDeleteProducts", err)
	}
	s.logger.Info("products soft-deleted", zap.String("storeId", storeID), zap.Int64("count", n))
	return n, nil
}
