package models

import "time"

// OrderKind discriminates the two marketplace ledgers sharing one table.
type OrderKind string

const (
	OrderKindFarmer   OrderKind = "farmer"
	OrderKindCustomer OrderKind = "customer"
)

type OrderItem struct {
	Product string  `json:"product"`
	Qty     int     `json:"qty"`
	Price   float64 `json:"price"`
}

type Order struct {
	ID int64 `db:"id" json:"id"`

	UserID       int64     `db:"user_id" json:"user_id"`
	Kind         OrderKind `db:"kind" json:"-"`
	Counterparty string    `db:"counterparty" json:"counterparty_name"`

	// ItemsJSON is the raw blob as stored; Items is the decoded form
	// callers see.
	ItemsJSON string      `db:"items" json:"-"`
	Items     []OrderItem `db:"-" json:"items"`

	Total     float64   `db:"total" json:"total"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
