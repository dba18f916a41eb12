package reports

import "time"

// Transaction kinds.
const (
	TypeIncome  = "ingreso"
	TypeExpense = "egreso"
)

// Report filters.
const (
	FilterToday = "today"
	FilterMonth = "month"
	FilterAll   = "all"
)

// Transaction is one merged money movement, either a payment (income) or an
// expense (outflow). Amount is always positive; Type carries the direction.
type Transaction struct {
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Method      string    `json:"method"`
	Amount      float64   `json:"amount"`
}

// MonthlySummary aggregates one calendar month, keyed yyyy-MM.
type MonthlySummary struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
	Balance float64 `json:"balance"`
	Orders  int     `json:"orders"`
}

// Report is the response of GET /api/reports.
type Report struct {
	Filter       string           `json:"filter"`
	Transactions []Transaction    `json:"transactions"`
	TotalIncome  float64          `json:"total_income"`
	TotalExpense float64          `json:"total_expense"`
	Balance      float64          `json:"balance"`
	Monthly      []MonthlySummary `json:"monthly,omitempty"`
}
