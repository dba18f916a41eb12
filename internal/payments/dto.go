package payments

import "time"

// ItemRequest is one submitted line of a payment.
type ItemRequest struct {
	Type     string  `json:"type,omitempty" validate:"omitempty,oneof=repair product other"`
	ID       *int64  `json:"id,omitempty"`
	Name     string  `json:"name" validate:"required,max=200"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// CreatePaymentRequest is the payload for POST /api/payments. The base
// amount is derived from the items; the surcharge line is appended
// server-side so clients cannot mislabel it.
type CreatePaymentRequest struct {
	OrderID *int64        `json:"order_id,omitempty" validate:"omitempty,gt=0"`
	Amount  float64       `json:"amount,omitempty" validate:"omitempty,gt=0"`
	Method  string        `json:"method" validate:"required,oneof=efectivo tarjeta transferencia"`
	Date    *time.Time    `json:"date,omitempty"`
	Notes   *string       `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items   []ItemRequest `json:"items,omitempty" validate:"dive"`
}

// ListPaymentsRequest carries list filters.
type ListPaymentsRequest struct {
	TenantID string
	OrderID  *int64
	From     *time.Time
	To       *time.Time
	Limit    int
	Offset   int
}
