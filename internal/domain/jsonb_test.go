package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnit_ValueScan(t *testing.T) {
	conv := decimal.NewFromInt(12)
	in := Unit{Name: "box", Conversion: &conv}

	v, err := in.Value()
	require.NoError(t, err)

	var out Unit
	require.NoError(t, out.Scan([]byte(v.(string))))
	assert.Equal(t, "box", out.Name)
	require.NotNil(t, out.Conversion)
	assert.True(t, conv.Equal(*out.Conversion))
	assert.Nil(t, out.Quantity)
}

func TestDiscounts_NilIsEmptyArray(t *testing.T) {
	var d Discounts
	v, err := d.Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestJSONScan_NullAndBadInput(t *testing.T) {
	var v Variants
	require.NoError(t, v.Scan(nil))
	assert.Nil(t, v)

	require.Error(t, v.Scan(42))
	require.Error(t, v.Scan("{not json"))
}

func TestHistory_ValueNeverNullLists(t *testing.T) {
	v, err := History{}.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"sellsPrice":[],"gstPercentage":[]}`, v.(string))
}

func TestParseItemType(t *testing.T) {
	it, err := ParseItemType("Service")
	require.NoError(t, err)
	assert.Equal(t, "sac_codes", it.CodeTable())

	it, err = ParseItemType("Product")
	require.NoError(t, err)
	assert.Equal(t, "hsn_codes", it.CodeTable())

	_, err = ParseItemType("Vehicle")
	assert.Error(t, err)
}

func TestProduct_Normalize(t *testing.T) {
	p := &Product{}
	p.Normalize()
	assert.NotNil(t, p.CategoryIDs)
	assert.NotNil(t, p.Images)
	assert.NotNil(t, p.Discounts)
	assert.NotNil(t, p.Variants)
	assert.NotNil(t, p.InventoryProducts)
	assert.NotNil(t, p.AdditionalFields)
	assert.Equal(t, TaxPreferenceTaxable, p.TaxPreference)
}
