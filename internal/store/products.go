package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"catalog-service/internal/domain"
	"catalog-service/internal/ident"
)

var productColumns = []string{
	"id", "store_id", "name", "description", "sells_price", "purchase_price", "margin",
	"as_per_margin", "category", "unit", "purchase_unit", "quantity", "low_stock",
	"hero_image", "images", "delivery_time", "discounts", "variants", "is_inventory",
	"inventory_products", "is_service", "hsn_code", "gst_percentage", "cess",
	"tax_included", "tax_preference", "account", "history", "additional_fields",
	"slug", "is_deleted", "created_at", "updated_at",
}

var returningProduct = "RETURNING " + strings.Join(productColumns, ", ")

type columnValue struct {
	column string
	value  any
}

// mutableProductColumns lists every column an update may replace, in
// insert order.
func mutableProductColumns(p *domain.Product) []columnValue {
	return []columnValue{
		{"name", p.Name},
		{"description", p.Description},
		{"sells_price", p.SellsPrice},
		{"purchase_price", p.PurchasePrice},
		{"margin", p.Margin},
		{"as_per_margin", p.AsPerMargin},
		{"category", p.CategoryIDs},
		{"unit", p.Unit},
		{"purchase_unit", p.PurchaseUnit},
		{"quantity", p.Quantity},
		{"low_stock", p.LowStock},
		{"hero_image", p.HeroImage},
		{"images", p.Images},
		{"delivery_time", p.DeliveryTime},
		{"discounts", p.Discounts},
		{"variants", p.Variants},
		{"is_inventory", p.IsInventory},
		{"inventory_products", p.InventoryProducts},
		{"is_service", p.IsService},
		{"hsn_code", p.HSNCode},
		{"gst_percentage", p.GSTPercentage},
		{"cess", p.Cess},
		{"tax_included", p.TaxIncluded},
		{"tax_preference", p.TaxPreference},
		{"account", p.Account},
		{"history", p.History},
		{"additional_fields", p.AdditionalFields},
	}
}

// CreateProduct assigns an id and timestamps and inserts the product.
func (s *PostgresStore) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	storeID, err := ident.Parse(product.StoreID)
	if err != nil {
		return nil, fmt.Errorf("%w: store id: %v", ErrInvalidID, err)
	}
	p := *product
	p.ID = ident.New()
	p.StoreID = storeID
	p.IsDeleted = false
	p.CreatedAt = s.timestamp()
	p.UpdatedAt = p.CreatedAt
	p.Normalize()

	columns := []string{"id", "store_id"}
	values := []any{p.ID, p.StoreID}
	for _, cv := range mutableProductColumns(&p) {
		columns = append(columns, cv.column)
		values = append(values, cv.value)
	}
	columns = append(columns, "slug", "is_deleted", "created_at", "updated_at")
	values = append(values, p.Slug, p.IsDeleted, p.CreatedAt, p.UpdatedAt)

	query, args, err := s.builder().Insert(productsTable).
		Columns(columns...).
		Values(values...).
		Suffix(returningProduct).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: CreateProduct failed to build query: %w", err)
	}

	var created domain.Product
	if err := s.db.GetContext(ctx, &created, query, args...); err != nil {
		if constraintViolated(err, "products_store_slug_key") {
			return nil, ErrProductSlugExists
		}
		return nil, fmt.Errorf("store: CreateProduct failed to scan row: %w", err)
	}
	created.Normalize()
	return &created, nil
}

// UpdateProduct replaces every mutable column of a live product. The id,
// store, slug and creation time are left untouched. A nil product and nil
// error mean no live product matched.
func (s *PostgresStore) UpdateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	storeID, productID, err := parseScoped(product.StoreID, product.ID)
	if err != nil {
		return nil, err
	}
	p := *product
	p.Normalize()

	b := s.builder().Update(productsTable)
	for _, cv := range mutableProductColumns(&p) {
		b = b.Set(cv.column, cv.value)
	}
	query, args, err := b.Set("updated_at", s.timestamp()).
		Where(sq.Eq{"id": productID}).
		Where(sq.Eq{"store_id": storeID}).
		Where("is_deleted = FALSE").
		Suffix(returningProduct).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: UpdateProduct failed to build query: %w", err)
	}

	var updated domain.Product
	if err := s.db.GetContext(ctx, &updated, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: UpdateProduct failed to scan row: %w", err)
	}
	updated.Normalize()
	return &updated, nil
}

// GetProductBySlug looks a slug up among all of the store's products,
// soft-deleted ones included, since the slug stays reserved after deletion.
func (s *PostgresStore) GetProductBySlug(ctx context.Context, storeID, slug string) (*domain.Product, error) {
	query, args, err := s.builder().Select(productColumns...).
		From(productsTable).
		Where(sq.Eq{"store_id": storeID}).
		Where(sq.Eq{"slug": slug}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: GetProductBySlug failed to build query: %w", err)
	}

	var product domain.Product
	if err := s.db.GetContext(ctx, &product, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: GetProductBySlug failed to scan row: %w", err)
	}
	product.Normalize()
	return &product, nil
}

// GetProductByID returns a live product of the store with its categories
// expanded.
func (s *PostgresStore) GetProductByID(ctx context.Context, storeID, productID string) (*domain.Product, error) {
	storeID, productID, err := parseScoped(storeID, productID)
	if err != nil {
		return nil, err
	}
	query, args, err := s.builder().Select(productColumns...).
		From(productsTable).
		Where(sq.Eq{"id": productID}).
		Where(sq.Eq{"store_id": storeID}).
		Where("is_deleted = FALSE").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("store: GetProductByID failed to build query: %w", err)
	}

	var product domain.Product
	if err := s.db.GetContext(ctx, &product, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: GetProductByID failed to scan row: %w", err)
	}
	products := []domain.Product{product}
	if err := s.expandCategories(ctx, storeID, products); err != nil {
		return nil, err
	}
	return &products[0], nil
}

func (s *PostgresStore) filterProducts(b sq.SelectBuilder, params ListProductsParams) sq.SelectBuilder {
	b = b.Where(sq.Eq{"store_id": params.StoreID}).Where("is_deleted = FALSE")
	if len(params.CategoryIDs) > 0 {
		b = b.Where("category && ?", pq.Array(params.CategoryIDs))
	}
	switch params.ItemType {
	case domain.ItemTypeService:
		b = b.Where("is_service = TRUE")
	case domain.ItemTypeProduct:
		b = b.Where("is_service = FALSE")
	}
	if params.MinSellsPrice != nil {
		b = b.Where(sq.GtOrEq{"sells_price": *params.MinSellsPrice})
	}
	if params.MaxSellsPrice != nil {
		b = b.Where(sq.LtOrEq{"sells_price": *params.MaxSellsPrice})
	}
	if params.MinPurchasePrice != nil {
		b = b.Where(sq.GtOrEq{"purchase_price": *params.MinPurchasePrice})
	}
	if params.MaxPurchasePrice != nil {
		b = b.Where(sq.LtOrEq{"purchase_price": *params.MaxPurchasePrice})
	}
	if params.MinQuantity != nil {
		b = b.Where(sq.GtOrEq{"quantity": *params.MinQuantity})
	}
	if params.MaxQuantity != nil {
		b = b.Where(sq.LtOrEq{"quantity": *params.MaxQuantity})
	}
	return b
}

// ListProducts returns one page of the store's live products and the number
// of products matching the filters across all pages.
func (s *PostgresStore) ListProducts(ctx context.Context, params ListProductsParams) ([]domain.Product, int, error) {
	storeID, err := ident.Parse(params.StoreID)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: store id: %v", ErrInvalidID, err)
	}
	params.StoreID = storeID
	if params.CategoryIDs, err = ident.ParseAll(params.CategoryIDs); err != nil {
		return nil, 0, fmt.Errorf("%w: category id: %v", ErrInvalidID, err)
	}
	order, err := orderBy(productSortColumns, params.SortBy, params.SortOrder)
	if err != nil {
		return nil, 0, err
	}

	countQuery, countArgs, err := s.filterProducts(s.builder().Select("COUNT(*)").From(productsTable), params).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts failed to build count query: %w", err)
	}
	var totalCount int
	if err := s.db.GetContext(ctx, &totalCount, countQuery, countArgs...); err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts failed to count products: %w", err)
	}
	if totalCount == 0 {
		return []domain.Product{}, 0, nil
	}

	limit, offset, err := page(params.Page, params.PageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts: %w", err)
	}
	query, args, err := s.filterProducts(s.builder().Select(productColumns...).From(productsTable), params).
		OrderBy(order...).
		Limit(limit).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts failed to build query: %w", err)
	}

	products := make([]domain.Product, 0, limit)
	if err := s.db.SelectContext(ctx, &products, query, args...); err != nil {
		return nil, 0, fmt.Errorf("store: ListProducts failed to query products: %w", err)
	}
	if err := s.expandCategories(ctx, storeID, products); err != nil {
		return nil, 0, err
	}
	return products, totalCount, nil
}

// SoftDeleteProducts marks the given live products deleted and returns how
// many rows changed. Products already deleted are left alone.
func (s *PostgresStore) SoftDeleteProducts(ctx context.Context, storeID string, productIDs []string) (int64, error) {
	return s.softDelete(ctx, productsTable, "SoftDeleteProducts", storeID, productIDs)
}

func (s *PostgresStore) softDelete(ctx context.Context, table, op, storeID string, ids []string) (int64, error) {
	storeID, err := ident.Parse(storeID)
	if err != nil {
		return 0, fmt.Errorf("%w: store id: %v", ErrInvalidID, err)
	}
	ids, err = ident.ParseAll(ids)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := s.builder().Update(table).
		Set("is_deleted", true).
		Set("updated_at", s.timestamp()).
		Where(sq.Eq{"store_id": storeID}).
		Where(sq.Eq{"id": ids}).
		Where("is_deleted = FALSE").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("store: %s failed to build query: %w", op, err)
	}
	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("store: %s failed to execute update: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("store: %s failed to get rows affected: %w", op, err)
	}
	return rowsAffected, nil
}

// expandCategories fills Categories on every product with one query.
// References to categories that are missing or deleted are dropped.
func (s *PostgresStore) expandCategories(ctx context.Context, storeID string, products []domain.Product) error {
	seen := make(map[string]struct{})
	var ids []string
	for _, p := range products {
		for _, id := range p.CategoryIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	byID := make(map[string]domain.Category, len(ids))
	if len(ids) > 0 {
		categories, err := s.GetCategoriesByIDs(ctx, storeID, ids)
		if err != nil {
			return err
		}
		for _, c := range categories {
			byID[c.ID] = c
		}
	}

	for i := range products {
		products[i].Normalize()
		for _, id := range products[i].CategoryIDs {
			if c, ok := byID[id]; ok {
				products[i].Categories = append(products[i].Categories, c)
			}
		}
	}
	return nil
}

func parseScoped(storeID, id string) (string, string, error) {
	sid, err := ident.Parse(storeID)
	if err != nil {
		return "", "", fmt.Errorf("%w: store id: %v", ErrInvalidID, err)
	}
	eid, err := ident.Parse(id)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrInvalidID, err)
	}
	return sid, eid, nil
}
