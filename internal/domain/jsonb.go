package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

func jsonValue(v any) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("domain: marshal jsonb: %w", err)
	}
	return string(b), nil
}

func jsonScan(src any, dst any) error {
	var b []byte
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("domain: cannot scan %T into jsonb", src)
	}
	if len(b) == 0 {
		return nil
	}
	if err := json.Unmarshal(b, dst); err != nil {
		return fmt.Errorf("domain: unmarshal jsonb: %w", err)
	}
	return nil
}

func (u Unit) Value() (driver.Value, error) { return jsonValue(u) }
func (u *Unit) Scan(src any) error          { return jsonScan(src, u) }

func (a Account) Value() (driver.Value, error) { return jsonValue(a) }
func (a *Account) Scan(src any) error          { return jsonScan(src, a) }

func (h History) Value() (driver.Value, error) {
	if h.SellsPrice == nil {
		h.SellsPrice = []HistoryEntry{}
	}
	if h.GSTPercentage == nil {
		h.GSTPercentage = []HistoryEntry{}
	}
	return jsonValue(h)
}
func (h *History) Scan(src any) error { return jsonScan(src, h) }

func (d Discounts) Value() (driver.Value, error) {
	if d == nil {
		return "[]", nil
	}
	return jsonValue([]Discount(d))
}
func (d *Discounts) Scan(src any) error { return jsonScan(src, (*[]Discount)(d)) }

func (v Variants) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	return jsonValue([]Variant(v))
}
func (v *Variants) Scan(src any) error { return jsonScan(src, (*[]Variant)(v)) }

func (ip InventoryProducts) Value() (driver.Value, error) {
	if ip == nil {
		return "[]", nil
	}
	return jsonValue([]InventoryProduct(ip))
}
func (ip *InventoryProducts) Scan(src any) error {
	return jsonScan(src, (*[]InventoryProduct)(ip))
}

func (af AdditionalFields) Value() (driver.Value, error) {
	if af == nil {
		return "[]", nil
	}
	return jsonValue([]AdditionalField(af))
}
func (af *AdditionalFields) Scan(src any) error {
	return jsonScan(src, (*[]AdditionalField)(af))
}
