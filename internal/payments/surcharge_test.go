package payments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSurchargeCashAlwaysZero(t *testing.T) {
	cfg := SurchargeConfig{CardPct: 10, TransferPct: 5}

	surcharge, final := Surcharge(100, MethodCash, cfg)
	require.Equal(t, 0.0, surcharge)
	require.Equal(t, 100.0, final)
}

func TestSurchargeCard(t *testing.T) {
	cfg := SurchargeConfig{CardPct: 10}

	surcharge, final := Surcharge(100, MethodCard, cfg)
	require.Equal(t, 10.0, surcharge)
	require.Equal(t, 110.0, final)
}

func TestSurchargeTransfer(t *testing.T) {
	cfg := SurchargeConfig{TransferPct: 2.5}

	surcharge, final := Surcharge(200, MethodTransfer, cfg)
	require.InDelta(t, 5.0, surcharge, 1e-9)
	require.InDelta(t, 205.0, final, 1e-9)
}

func TestSurchargeZeroPercentConfigured(t *testing.T) {
	surcharge, final := Surcharge(100, MethodCard, SurchargeConfig{})
	require.Equal(t, 0.0, surcharge)
	require.Equal(t, 100.0, final)
}

func TestSurchargeLineItemExcludedFromCredit(t *testing.T) {
	item := SurchargeLineItem(MethodCard, 10, 15)

	require.Equal(t, ItemOther, item.Type)
	require.Equal(t, 1, item.Quantity)
	require.Equal(t, 15.0, item.Price)
	require.Equal(t, "Recargo tarjeta (10%)", item.Name)
	require.Equal(t, 0.0, RepairCredit(Payment{Items: []Item{item}}))
}
