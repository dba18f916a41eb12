package expenses

import "time"

// Expense is a cash outflow recorded by the shop (parts restock, rent, services).
type Expense struct {
	ID          int64     `json:"id"`
	TenantID    string    `json:"-"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Method      string    `json:"method"`
	Date        time.Time `json:"date"`
	Notes       *string   `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
