package stats

// Stats is the dashboard snapshot returned by GET /api/stats.
type Stats struct {
	ActiveOrders     int     `json:"active_orders"`
	PendingDiagnosis int     `json:"pending_diagnosis"`
	ReadyForPickup   int     `json:"ready_for_pickup"`
	MonthIncome      float64 `json:"month_income"`
	MonthExpense     float64 `json:"month_expense"`
	MonthBalance     float64 `json:"month_balance"`
}
