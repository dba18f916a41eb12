package products

// CreateProductRequest is the payload for POST /api/products.
type CreateProductRequest struct {
	Name              string  `json:"name" validate:"required,max=200"`
	SKU               *string `json:"sku,omitempty" validate:"omitempty,max=60"`
	Category          *string `json:"category,omitempty" validate:"omitempty,max=80"`
	Cost              float64 `json:"cost" validate:"gte=0"`
	Price             float64 `json:"price" validate:"gte=0"`
	Quantity          int     `json:"quantity" validate:"gte=0"`
	LowStockThreshold int     `json:"low_stock_threshold" validate:"gte=0"`
	Description       *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// UpdateProductRequest is the payload for PATCH /api/products/{id}.
type UpdateProductRequest struct {
	Name              *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	SKU               *string  `json:"sku,omitempty" validate:"omitempty,max=60"`
	Category          *string  `json:"category,omitempty" validate:"omitempty,max=80"`
	Cost              *float64 `json:"cost,omitempty" validate:"omitempty,gte=0"`
	Price             *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Quantity          *int     `json:"quantity,omitempty" validate:"omitempty,gte=0"`
	LowStockThreshold *int     `json:"low_stock_threshold,omitempty" validate:"omitempty,gte=0"`
	Description       *string  `json:"description,omitempty" validate:"omitempty,max=2000"`
}

// RestockRequest is the payload for POST /api/products/{id}/restock.
type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

// ListProductsRequest carries list filters.
type ListProductsRequest struct {
	TenantID string
	Search   *string
	Category *string
	LowStock bool
	Limit    int
	Offset   int
}
