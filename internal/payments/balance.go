package payments

import "strings"

// Balance is the paid/pending position of a repair order. Every call site
// (payment validation, order detail, stats) goes through ComputeBalance;
// the filter rules must never be re-implemented inline.
type Balance struct {
	TotalCost      float64 `json:"total_cost"`
	TotalPaid      float64 `json:"total_paid"`
	PendingBalance float64 `json:"pending_balance"`
	IsCostDefined  bool    `json:"is_cost_defined"`
}

// OrderTotalCost returns the amount owed on an order: the final cost once
// set, otherwise the estimate.
func OrderTotalCost(estimatedCost, finalCost float64) float64 {
	if finalCost > 0 {
		return finalCost
	}
	return estimatedCost
}

// RepairCredit returns the portion of a payment credited toward the repair
// debt. Surcharge and fee lines inflate the charged total but never reduce
// what the client still owes, so they are excluded here:
//   - items typed "repair" count in full
//   - untyped items count unless their name marks them as a surcharge
//   - "product" and "other" items never count
//
// Payments without itemization predate line items and credit their full amount.
func RepairCredit(p Payment) float64 {
	if len(p.Items) == 0 {
		return p.Amount
	}
	var credit float64
	for _, item := range p.Items {
		switch item.Type {
		case ItemRepair:
			credit += item.Price * float64(item.Quantity)
		case "":
			if !isSurchargeName(item.Name) {
				credit += item.Price * float64(item.Quantity)
			}
		}
	}
	return credit
}

// ComputeBalance computes the paid-to-date and pending totals for an order
// given its estimated/final cost and every payment recorded against it.
func ComputeBalance(estimatedCost, finalCost float64, pays []Payment) Balance {
	totalCost := OrderTotalCost(estimatedCost, finalCost)

	var totalPaid float64
	for _, p := range pays {
		totalPaid += RepairCredit(p)
	}

	pending := totalCost - totalPaid
	if pending < 0 {
		pending = 0
	}

	return Balance{
		TotalCost:      totalCost,
		TotalPaid:      totalPaid,
		PendingBalance: pending,
		IsCostDefined:  totalCost > 0,
	}
}

func isSurchargeName(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "recargo") || strings.Contains(lower, "surcharge")
}
