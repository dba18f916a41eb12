package payments

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderTotalCost(t *testing.T) {
	require.Equal(t, 150.0, OrderTotalCost(100, 150))
	require.Equal(t, 100.0, OrderTotalCost(100, 0))
	require.Equal(t, 0.0, OrderTotalCost(0, 0))
}

func TestRepairCreditItemless(t *testing.T) {
	p := Payment{Amount: 80}
	require.Equal(t, 80.0, RepairCredit(p))
}

func TestRepairCreditExcludesSurchargeAndProducts(t *testing.T) {
	productID := int64(7)
	p := Payment{
		Amount: 165,
		Items: []Item{
			{Type: ItemRepair, Name: "Cambio de pantalla", Quantity: 1, Price: 100},
			{Type: ItemProduct, ID: &productID, Name: "Funda", Quantity: 1, Price: 50},
			{Type: ItemOther, Name: "Recargo tarjeta (10%)", Quantity: 1, Price: 15},
		},
	}
	require.Equal(t, 100.0, RepairCredit(p))
}

func TestRepairCreditUntypedItems(t *testing.T) {
	p := Payment{
		Items: []Item{
			{Name: "Reparación placa", Quantity: 1, Price: 60},
			{Name: "Recargo transferencia (5%)", Quantity: 1, Price: 3},
			{Name: "Surcharge fee", Quantity: 1, Price: 2},
		},
	}
	require.Equal(t, 60.0, RepairCredit(p))
}

func TestComputeBalance(t *testing.T) {
	pays := []Payment{
		{Items: []Item{{Type: ItemRepair, Name: "Abono reparación", Quantity: 1, Price: 40}}},
		{Amount: 30},
	}
	bal := ComputeBalance(100, 0, pays)

	require.True(t, bal.IsCostDefined)
	require.Equal(t, 100.0, bal.TotalCost)
	require.Equal(t, 70.0, bal.TotalPaid)
	require.Equal(t, 30.0, bal.PendingBalance)
}

func TestComputeBalancePendingNeverNegative(t *testing.T) {
	pays := []Payment{{Amount: 150}}
	bal := ComputeBalance(100, 0, pays)

	require.Equal(t, 0.0, bal.PendingBalance)
	require.Equal(t, 150.0, bal.TotalPaid)
}

func TestComputeBalanceCostNotDefined(t *testing.T) {
	bal := ComputeBalance(0, 0, nil)
	require.False(t, bal.IsCostDefined)
	require.Equal(t, 0.0, bal.TotalCost)
}

func TestComputeBalanceSurchargeNeverReducesPending(t *testing.T) {
	// A card payment of base 50 + 10% surcharge charges 55 but must only
	// credit 50 against the debt.
	pays := []Payment{
		{
			Amount: 55,
			Items: []Item{
				{Type: ItemRepair, Name: "Abono reparación", Quantity: 1, Price: 50},
				SurchargeLineItem(MethodCard, 10, 5),
			},
		},
	}
	bal := ComputeBalance(100, 0, pays)

	require.Equal(t, 50.0, bal.TotalPaid)
	require.Equal(t, 50.0, bal.PendingBalance)
}
