package products

import "time"

type Product struct {
	ID                int64     `json:"id" db:"id"`
	TenantID          string    `json:"-" db:"tenant_id"`
	Name              string    `json:"name" db:"name"`
	SKU               *string   `json:"sku,omitempty" db:"sku"`
	Category          *string   `json:"category,omitempty" db:"category"`
	Cost              float64   `json:"cost" db:"cost"`
	Price             float64   `json:"price" db:"price"`
	Quantity          int       `json:"quantity" db:"quantity"`
	LowStockThreshold int       `json:"low_stock_threshold" db:"low_stock_threshold"`
	Description       *string   `json:"description,omitempty" db:"description"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time `json:"updated_at" db:"updated_at"`
}

// LowStock reports whether the product is at or below its threshold.
func (p Product) LowStock() bool {
	return p.Quantity <= p.LowStockThreshold
}
