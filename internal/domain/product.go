package domain

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Default account tags applied to bulk-uploaded products.
const (
	AccountSales            = "Sales"
	AccountCostOfGoodsSold  = "Cost of Goods Sold"
	TaxPreferenceTaxable    = "taxable"
	TaxPreferenceNonTaxable = "non-taxable"
	TaxPreferenceExempt     = "exempt"
)

// Product is a sellable item or service owned by a single store.
// Sub-objects are persisted as JSONB, category ids as TEXT[].
type Product struct {
	ID            string           `db:"id" json:"id"`
	StoreID       string           `db:"store_id" json:"storeId"`
	Name          string           `db:"name" json:"name"`
	Description   *string          `db:"description" json:"description,omitempty"`
	SellsPrice    decimal.Decimal  `db:"sells_price" json:"sellsPrice"`
	PurchasePrice *decimal.Decimal `db:"purchase_price" json:"purchasePrice,omitempty"`
	Margin        *decimal.Decimal `db:"margin" json:"margin,omitempty"`
	AsPerMargin   bool             `db:"as_per_margin" json:"asPerMargin"`
	CategoryIDs   pq.StringArray   `db:"category" json:"categoryIds"`
	// Categories is filled from CategoryIDs on point lookups and listings.
	Categories        []Category        `db:"-" json:"category"`
	Unit              Unit              `db:"unit" json:"unit"`
	PurchaseUnit      *Unit             `db:"purchase_unit" json:"purchaseUnit,omitempty"`
	Quantity          *decimal.Decimal  `db:"quantity" json:"quantity,omitempty"`
	LowStock          *decimal.Decimal  `db:"low_stock" json:"lowStock,omitempty"`
	HeroImage         *string           `db:"hero_image" json:"heroImage,omitempty"`
	Images            pq.StringArray    `db:"images" json:"images"`
	DeliveryTime      *string           `db:"delivery_time" json:"deliveryTime,omitempty"`
	Discounts         Discounts         `db:"discounts" json:"discounts"`
	Variants          Variants          `db:"variants" json:"variants"`
	IsInventory       bool              `db:"is_inventory" json:"isInventory"`
	InventoryProducts InventoryProducts `db:"inventory_products" json:"inventoryProducts"`
	IsService         bool              `db:"is_service" json:"isService"`
	HSNCode           *string           `db:"hsn_code" json:"hsnCode,omitempty"`
	GSTPercentage     *decimal.Decimal  `db:"gst_percentage" json:"gstPercentage,omitempty"`
	Cess              *decimal.Decimal  `db:"cess" json:"cess,omitempty"`
	TaxIncluded       bool              `db:"tax_included" json:"taxIncluded"`
	TaxPreference     string            `db:"tax_preference" json:"taxPreference"`
	Account           Account           `db:"account" json:"account"`
	History           History           `db:"history" json:"history"`
	AdditionalFields  AdditionalFields  `db:"additional_fields" json:"additionalFields"`
	Slug              string            `db:"slug" json:"slug"`
	IsDeleted         bool              `db:"is_deleted" json:"isDeleted"`
	CreatedAt         time.Time         `db:"created_at" json:"createdAt"`
	UpdatedAt         time.Time         `db:"updated_at" json:"updatedAt"`
}

// Normalize replaces nil collections with empty ones so that rows never
// carry SQL NULL where a list is expected.
func (p *Product) Normalize() {
	if p.CategoryIDs == nil {
		p.CategoryIDs = pq.StringArray{}
	}
	if p.Images == nil {
		p.Images = pq.StringArray{}
	}
	if p.Discounts == nil {
		p.Discounts = Discounts{}
	}
	if p.Variants == nil {
		p.Variants = Variants{}
	}
	if p.InventoryProducts == nil {
		p.InventoryProducts = InventoryProducts{}
	}
	if p.AdditionalFields == nil {
		p.AdditionalFields = AdditionalFields{}
	}
	if p.Categories == nil {
		p.Categories = []Category{}
	}
	if p.TaxPreference == "" {
		p.TaxPreference = TaxPreferenceTaxable
	}
}

// Unit is a named measure with an optional base quantity and conversion
// factor to a purchase unit.
type Unit struct {
	Name       string           `json:"name"`
	Quantity   *decimal.Decimal `json:"quantity,omitempty"`
	Conversion *decimal.Decimal `json:"conversion,omitempty"`
}

// Discount types and minimum-order qualifiers.
const (
	DiscountPercentage   = "percentage"
	DiscountAmount       = "amount"
	MinTypeOrderQuantity = "orderQuantity"
	MinTypeOrderValue    = "orderValue"
)

// Discount is a coupon-style reduction. The older volume-threshold shape
// ({volumeThreshold, discountPercentage}) is not accepted.
type Discount struct {
	Type        string           `json:"type" validate:"required,oneof=percentage amount"`
	Code        string           `json:"code" validate:"required"`
	MinType     string           `json:"minType" validate:"required,oneof=orderQuantity orderValue"`
	Value       decimal.Decimal  `json:"value" validate:"gte=0"`
	Minimum     *decimal.Decimal `json:"minimum,omitempty" validate:"omitempty,gte=0"`
	MaxDiscount *decimal.Decimal `json:"maxDiscount,omitempty" validate:"omitempty,gte=0"`
}

type Discounts []Discount

// Variant is a concrete property combination of a product.
type Variant struct {
	Properties    map[string]string `json:"properties"`
	StockQuantity decimal.Decimal   `json:"stockQuantity" validate:"gte=0"`
	SellsPrice    *decimal.Decimal  `json:"sellsPrice,omitempty" validate:"omitempty,gte=0"`
	SKUID         *string           `json:"skuId,omitempty"`
	ImageURLs     []string          `json:"imageUrls,omitempty"`
	Discounts     []Discount        `json:"discounts,omitempty" validate:"dive"`
}

type Variants []Variant

// InventoryProduct is one line of a bill of materials: producing one unit
// of the owning product consumes AmountConsumed of ProductID.
type InventoryProduct struct {
	ProductID      string          `json:"productId" validate:"required,objectid"`
	AmountConsumed decimal.Decimal `json:"amountConsumed" validate:"gt=0"`
}

type InventoryProducts []InventoryProduct

// Account holds the ledger account tags for sales and purchases.
type Account struct {
	Sales    string `json:"sales"`
	Purchase string `json:"purchase"`
}

// IsZero reports whether neither tag is set.
func (a Account) IsZero() bool {
	return a.Sales == "" && a.Purchase == ""
}

// HistoryEntry records a value change.
type HistoryEntry struct {
	Date    time.Time       `json:"date"`
	Changes decimal.Decimal `json:"changes"`
}

// History is the change log of price and tax rate.
type History struct {
	SellsPrice    []HistoryEntry `json:"sellsPrice"`
	GSTPercentage []HistoryEntry `json:"gstPercentage"`
}

// AdditionalField is a free-form key/value attribute.
type AdditionalField struct {
	Key   string `json:"key" validate:"required"`
	Value string `json:"value"`
}

type AdditionalFields []AdditionalField
