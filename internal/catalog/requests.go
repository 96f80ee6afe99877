package catalog

import (
	"github.com/shopspring/decimal"

	"catalog-service/internal/domain"
)

// ProductFields are the attributes shared by create, update and bulk rows.
// Unit and the purchase unit arrive flat and are assembled by the service.
type ProductFields struct {
	Name                   string                    `json:"name" validate:"required,max=255"`
	Description            *string                   `json:"description,omitempty"`
	SellsPrice             *decimal.Decimal          `json:"sellsPrice" validate:"required,gte=0"`
	PurchasePrice          *decimal.Decimal          `json:"purchasePrice,omitempty" validate:"omitempty,gte=0"`
	Margin                 *decimal.Decimal          `json:"margin,omitempty" validate:"required_if=AsPerMargin true"`
	AsPerMargin            bool                      `json:"asPerMargin"`
	Category               []string                  `json:"category" validate:"dive,objectid"`
	Unit                   string                    `json:"unit" validate:"required"`
	PurchaseUnitName       *string                   `json:"purchaseUnitName,omitempty"`
	PurchaseUnitConversion *decimal.Decimal          `json:"purchaseUnitConversion,omitempty" validate:"omitempty,gt=0"`
	Quantity               *decimal.Decimal          `json:"quantity,omitempty" validate:"required_unless=IsService true,omitempty,gte=0"`
	IsService              bool                      `json:"isService"`
	LowStock               *decimal.Decimal          `json:"lowStock,omitempty" validate:"omitempty,gte=0"`
	HeroImage              *string                   `json:"heroImage,omitempty"`
	Images                 []string                  `json:"images,omitempty"`
	DeliveryTime           *string                   `json:"deliveryTime,omitempty"`
	Discounts              []domain.Discount         `json:"discounts,omitempty" validate:"dive"`
	Variants               []domain.Variant          `json:"variants,omitempty" validate:"dive"`
	IsInventory            bool                      `json:"isInventory"`
	InventoryProducts      []domain.InventoryProduct `json:"inventoryProducts,omitempty" validate:"dive"`
	HSNCode                *string                   `json:"hsnCode,omitempty"`
	GSTPercentage          *decimal.Decimal          `json:"gstPercentage,omitempty" validate:"omitempty,gte=0,lte=100"`
	Cess                   *decimal.Decimal          `json:"cess,omitempty" validate:"omitempty,gte=0"`
	TaxIncluded            bool                      `json:"taxIncluded"`
	TaxPreference          string                    `json:"taxPreference,omitempty" validate:"omitempty,oneof=taxable non-taxable exempt"`
	Account                *domain.Account           `json:"account,omitempty"`
	AdditionalFields       []domain.AdditionalField  `json:"additionalFields,omitempty" validate:"dive"`
}

// CreateProductRequest creates a product in StoreID.
type CreateProductRequest struct {
	StoreID string `json:"storeId" validate:"required,objectid"`
	ProductFields
}

// UpdateProductRequest replaces the mutable fields of ProductID.
type UpdateProductRequest struct {
	StoreID   string `json:"storeId" validate:"required,objectid"`
	ProductID string `json:"productId" validate:"required,objectid"`
	ProductFields
}

// CreateCategoryRequest creates a category in StoreID.
type CreateCategoryRequest struct {
	StoreID     string  `json:"storeId" validate:"required,objectid"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
}

// UpdateCategoryRequest renames or re-describes a category. Its slug is kept.
type UpdateCategoryRequest struct {
	StoreID     string  `json:"storeId" validate:"required,objectid"`
	CategoryID  string  `json:"categoryId" validate:"required,objectid"`
	Name        string  `json:"name" validate:"required,max=255"`
	Description *string `json:"description,omitempty"`
}

// ListQuery carries the pagination and sort shared by every listing.
type ListQuery struct {
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	Category         []string
	ItemType         string
	MinSellsPrice    *decimal.Decimal
	MaxSellsPrice    *decimal.Decimal
	MinPurchasePrice *decimal.Decimal
	MaxPurchasePrice *decimal.Decimal
	MinQuantity      *decimal.Decimal
	MaxQuantity      *decimal.Decimal
}
