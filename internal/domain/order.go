package domain

import (
	"strings"
	"time"
)

// Order status constants, as reported by the commerce API.
const (
	OrderStatusPendingPayment = "PENDING_PAYMENT"
	OrderStatusPaid           = "PAID"
	OrderStatusProcessing     = "PROCESSING"
	OrderStatusShipped        = "SHIPPED"
	OrderStatusCompleted      = "COMPLETED"
	OrderStatusCancelled      = "CANCELLED"
)

// Order is a transactional order record fetched from the commerce API.
type Order struct {
	ID          string    `json:"id"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsPending reports whether the order still needs fulfillment attention
// (awaiting payment, paid, or processing).
func (o *Order) IsPending() bool {
	switch o.Status {
	case OrderStatusPendingPayment, OrderStatusPaid, OrderStatusProcessing:
		return true
	}
	return false
}

// Payment is a payment record associated with an order.
type Payment struct {
	ID      string `json:"id"`
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
	Amount  int64  `json:"amount"`
}

// IsSettled reports whether the payment counts toward revenue. Status
// comparison is on the trimmed, uppercased value because the gateway mixes
// cases across payment providers.
func (p *Payment) IsSettled() bool {
	switch strings.ToUpper(strings.TrimSpace(p.Status)) {
	case "SETTLEMENT", "SETTLED", "CAPTURE":
		return true
	}
	return false
}
