package domain

import "time"

type Sale struct {
	ID        int64
	ProductID int64
	Quantity  int
	SoldAt    time.Time
}

// A SalesFilter narrows a sales lookup.
//
// A nil field imposes no constraint, non-nil fields are combined with AND.
// Both time bounds are inclusive.
type SalesFilter struct {
	From      *time.Time
	To        *time.Time
	ProductID *int64
	Category  *string
}

// SaleLine is a sale joined with the current price of its product.
//
// ProductFound is false when the referenced product no longer exists.
type SaleLine struct {
	SaleID       int64
	ProductID    int64
	Quantity     int
	UnitPrice    float64
	ProductFound bool
}
