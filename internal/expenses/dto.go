package expenses

import "time"

// CreateExpenseRequest is the payload for POST /api/expenses.
type CreateExpenseRequest struct {
	Category    string    `json:"category" validate:"required,max=80"`
	Description string    `json:"description" validate:"required,max=500"`
	Amount      float64   `json:"amount" validate:"required,gt=0"`
	Method      string    `json:"method" validate:"required,oneof=efectivo tarjeta transferencia"`
	Date        time.Time `json:"date" validate:"required"`
	Notes       *string   `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ListExpensesRequest carries list filters.
type ListExpensesRequest struct {
	TenantID string
	From     *time.Time
	To       *time.Time
	Category *string
	Limit    int
	Offset   int
}
