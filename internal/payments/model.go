package payments

import "time"

// Payment methods accepted at the counter.
const (
	MethodCash     = "efectivo"
	MethodCard     = "tarjeta"
	MethodTransfer = "transferencia"
)

// Line item types. Untyped items exist in data recorded before itemization
// carried a type; the balance calculator treats them by name.
const (
	ItemRepair  = "repair"
	ItemProduct = "product"
	ItemOther   = "other"
)

// Item is one line of an itemized payment. Product lines reference inventory
// by ID so recording the payment can decrement stock.
type Item struct {
	Type     string  `json:"type,omitempty"`
	ID       *int64  `json:"id,omitempty"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Payment is a recorded charge. Amount is the grand total including any
// surcharge; OrderID is nil for general sales.
type Payment struct {
	ID            int64     `json:"id" db:"id"`
	TenantID      string    `json:"-" db:"tenant_id"`
	OrderID       *int64    `json:"order_id,omitempty" db:"order_id"`
	ReceiptNumber string    `json:"receipt_number" db:"receipt_number"`
	Amount        float64   `json:"amount" db:"amount"`
	Method        string    `json:"method" db:"method"`
	Date          time.Time `json:"date" db:"date"`
	Notes         *string   `json:"notes,omitempty" db:"notes"`
	Items         []Item    `json:"items,omitempty" db:"items"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
