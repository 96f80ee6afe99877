package store

import (
	"math"
	"strings"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	// MaxPage bounds the requested page so that page+1 and the offset stay
	// within int range.
	MaxPage = math.MaxInt32

	// ciCollation orders text case-insensitively under English rules.
	ciCollation = `catalog.ci_en`
)

// sortColumn maps an API sort field onto a column. Text columns are ordered
// with the case-insensitive collation.
type sortColumn struct {
	column string
	text   bool
}

var productSortColumns = map[string]sortColumn{
	"id":            {column: "id"},
	"name":          {column: "name", text: true},
	"slug":          {column: "slug", text: true},
	"description":   {column: "description", text: true},
	"sellsPrice":    {column: "sells_price"},
	"purchasePrice": {column: "purchase_price"},
	"margin":        {column: "margin"},
	"quantity":      {column: "quantity"},
	"lowStock":      {column: "low_stock"},
	"gstPercentage": {column: "gst_percentage"},
	"hsnCode":       {column: "hsn_code", text: true},
	"createdAt":     {column: "created_at"},
	"updatedAt":     {column: "updated_at"},
}

var categorySortColumns = map[string]sortColumn{
	"id":          {column: "id"},
	"name":        {column: "name", text: true},
	"slug":        {column: "slug", text: true},
	"description": {column: "description", text: true},
	"createdAt":   {column: "created_at"},
	"updatedAt":   {column: "updated_at"},
}

var codeSortColumns = map[string]sortColumn{
	"id":          {column: "id"},
	"code":        {column: "code", text: true},
	"description": {column: "description", text: true},
}

// page resolves 1-based page/pageSize into LIMIT and OFFSET.
func page(p, size int) (limit, offset uint64, err error) {
	if p <= 0 {
		p = DefaultPage
	}
	if size <= 0 {
		size = DefaultPageSize
	}
	if p > MaxPage || p-1 > math.MaxInt64/size {
		return 0, 0, ErrPageOutOfRange
	}
	return uint64(size), uint64(p-1) * uint64(size), nil
}

func isDescending(order string) bool {
	switch strings.ToLower(strings.TrimSpace(order)) {
	case "desc", "descending", "-1":
		return true
	}
	return false
}

// orderBy returns ORDER BY terms. Without a sort field the newest rows come
// first; otherwise id DESC breaks ties.
func orderBy(columns map[string]sortColumn, sortBy, sortOrder string) ([]string, error) {
	sortBy = strings.TrimSpace(sortBy)
	if sortBy == "" {
		return []string{"id DESC"}, nil
	}
	col, ok := columns[sortBy]
	if !ok {
		return nil, ErrInvalidSortField
	}
	dir := "ASC"
	if isDescending(sortOrder) {
		dir = "DESC"
	}
	expr := col.column
	if col.text {
		expr += " COLLATE " + ciCollation
	}
	if col.column == "id" {
		return []string{"id " + dir}, nil
	}
	return []string{expr + " " + dir, "id DESC"}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern matching s literally anywhere.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
