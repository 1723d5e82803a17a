package model

import "time"

// LineItem is a quantity/unit-price/product association belonging to one order.
// Items have no independent lifecycle and are always fetched with their parent.
type LineItem struct {
	Quantity    int
	UnitPrice   float64
	ProductName string
}

// Order describes a customer purchase ("pedido"). Everything except the
// status identifier is read-only from this application's perspective.
type Order struct {
	ID            int64
	StatusID      int
	TotalValue    float64
	PaymentMethod string
	CustomerID    int64
	CreatedAt     time.Time
	StatusLabel   string
	Items         []LineItem
}
