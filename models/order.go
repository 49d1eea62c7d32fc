package models

import "time"

// Order statuses, in lifecycle order.
const (
	OrderStatusOpen      = "open"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusClosed    = "closed"
)

type OrderItem struct {
	Name      string  `bson:"name" json:"name"`
	Quantity  int     `bson:"quantity" json:"quantity"`
	UnitPrice float64 `bson:"unitPrice" json:"unitPrice"`
	Notes     string  `bson:"notes,omitempty" json:"notes,omitempty"`
}

// Order is one till order as it moves between the cashier and the kitchen.
type Order struct {
	ID        string      `bson:"id" json:"id"`
	Number    int64       `bson:"number" json:"number"`
	CashierID string      `bson:"cashierId" json:"cashierId"`
	Items     []OrderItem `bson:"items" json:"items"`
	Status    string      `bson:"status" json:"status"`
	Total     float64     `bson:"total" json:"total"`
	CreatedAt time.Time   `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time   `bson:"updatedAt" json:"updatedAt"`
}
