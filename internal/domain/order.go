package domain

import "time"

// Order statuses form a fixed set; there is no free-form status.
const (
	OrderStatusPending   = "PENDING"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCancelled = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the four known statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"userId"`
	Status          string      `json:"status"`
	TotalCents      int64       `json:"totalCents"`
	ShippingAddress string      `json:"shippingAddress"`
	CreatedAt       time.Time   `json:"createdAt"`
	Lines           []OrderLine `json:"items,omitempty"`
}

// OrderLine is a purchase-time snapshot. PriceAtPurchaseCents captures the
// unit price when the order was placed and must never be recomputed from
// the catalog.
type OrderLine struct {
	ID                   string `json:"id"`
	OrderID              string `json:"orderId"`
	ProductID            string `json:"productId"`
	ProductName          string `json:"productName,omitempty"`
	Quantity             int    `json:"quantity"`
	PriceAtPurchaseCents int64  `json:"priceAtPurchaseCents"`
}
