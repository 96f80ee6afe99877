package domain

import "time"

// Category groups products within a store. Name and slug are unique per store.
type Category struct {
	ID          string    `db:"id" json:"id"`
	StoreID     string    `db:"store_id" json:"storeId"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Slug        string    `db:"slug" json:"slug"`
	IsDeleted   bool      `db:"is_deleted" json:"isDeleted"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt   time.Time `db:"updated_at" json:"updatedAt"`
}
