package domain

import "fmt"

// ItemType distinguishes physical goods from services.
type ItemType string

const (
	ItemTypeProduct ItemType = "Product"
	ItemTypeService ItemType = "Service"
)

// ParseItemType accepts exactly "Product" or "Service".
func ParseItemType(s string) (ItemType, error) {
	switch ItemType(s) {
	case ItemTypeProduct, ItemTypeService:
		return ItemType(s), nil
	}
	return "", fmt.Errorf("unsupported item type %q", s)
}

// CodeTable names the reference table backing an item type: HSN codes for
// goods, SAC codes for services.
func (t ItemType) CodeTable() string {
	if t == ItemTypeService {
		return "sac_codes"
	}
	return "hsn_codes"
}

// ReferenceCode is a read-only HSN or SAC tax classification row.
type ReferenceCode struct {
	ID          string `db:"id" json:"id"`
	Code        string `db:"code" json:"code"`
	Description string `db:"description" json:"description"`
}
