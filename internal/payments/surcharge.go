package payments

import "fmt"

// BalanceTolerance is the slack allowed when validating a base amount
// against the pending balance, absorbing rounding on the client side.
const BalanceTolerance = 0.05

// SurchargeConfig carries the per-tenant surcharge percentages.
type SurchargeConfig struct {
	CardPct     float64
	TransferPct float64
}

// SurchargePercent returns the percentage applied for a payment method.
// Cash never carries a surcharge.
func SurchargePercent(method string, cfg SurchargeConfig) float64 {
	switch method {
	case MethodCard:
		return cfg.CardPct
	case MethodTransfer:
		return cfg.TransferPct
	default:
		return 0
	}
}

// Surcharge computes the add-on and the final charged total for a base
// amount. The base is what reduces the order debt; the surcharge may
// legitimately push the total charged above the nominal pending balance.
func Surcharge(base float64, method string, cfg SurchargeConfig) (surcharge, final float64) {
	pct := SurchargePercent(method, cfg)
	surcharge = base * (pct / 100)
	return surcharge, base + surcharge
}

// SurchargeLineItem builds the line item persisted alongside a surcharged
// payment. Emitting it as its own "other" line keeps the balance calculator
// able to exclude it from debt reduction later.
func SurchargeLineItem(method string, pct, amount float64) Item {
	return Item{
		Type:     ItemOther,
		Name:     fmt.Sprintf("Recargo %s (%g%%)", method, pct),
		Quantity: 1,
		Price:    amount,
	}
}
