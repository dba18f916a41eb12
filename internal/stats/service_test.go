package stats

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tallerpro/tallerpro/internal/expenses"
	"github.com/tallerpro/tallerpro/internal/orders"
	"github.com/tallerpro/tallerpro/internal/payments"
)

type fixedCounts struct {
	counts map[string]int
}

func (f *fixedCounts) StatusCounts(context.Context, string) (map[string]int, error) {
	return f.counts, nil
}

type fixedPayments struct {
	list []payments.Payment
}

func (f *fixedPayments) List(context.Context, payments.ListPaymentsRequest) ([]payments.Payment, error) {
	return f.list, nil
}

type fixedExpenses struct {
	list []expenses.Expense
}

func (f *fixedExpenses) List(context.Context, expenses.ListExpensesRequest) ([]expenses.Expense, error) {
	return f.list, nil
}

type windowedPayments struct {
	list []payments.Payment
}

func (f *windowedPayments) List(_ context.Context, req payments.ListPaymentsRequest) ([]payments.Payment, error) {
	var out []payments.Payment
	for _, p := range f.list {
		if req.From != nil && p.Date.Before(*req.From) {
			continue
		}
		if req.To != nil && p.Date.After(*req.To) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func TestFromCounts(t *testing.T) {
	s := FromCounts(map[string]int{
		orders.StatusReceived:   2,
		orders.StatusDiagnosis:  1,
		orders.StatusInProgress: 3,
		orders.StatusReady:      4,
		orders.StatusDelivered:  10,
	})

	require.Equal(t, 10, s.ActiveOrders)
	require.Equal(t, 3, s.PendingDiagnosis)
	require.Equal(t, 4, s.ReadyForPickup)
}

func TestFromCountsEmpty(t *testing.T) {
	s := FromCounts(nil)
	require.Zero(t, s.ActiveOrders)
	require.Zero(t, s.PendingDiagnosis)
	require.Zero(t, s.ReadyForPickup)
}

func TestSnapshotMoney(t *testing.T) {
	svc := NewService(
		&fixedCounts{counts: map[string]int{orders.StatusReady: 1}},
		&fixedPayments{list: []payments.Payment{{Amount: 120}, {Amount: 80}}},
		&fixedExpenses{list: []expenses.Expense{{Amount: 50}}},
	)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}

	s, err := svc.Snapshot(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, 200.0, s.MonthIncome)
	require.Equal(t, 50.0, s.MonthExpense)
	require.Equal(t, 150.0, s.MonthBalance)
	require.Equal(t, 1, s.ReadyForPickup)
}

func TestSnapshotCoversWholeCurrentMonth(t *testing.T) {
	mar := func(day int) time.Time {
		return time.Date(2026, time.March, day, 10, 0, 0, 0, time.UTC)
	}
	svc := NewService(
		&fixedCounts{counts: map[string]int{}},
		&windowedPayments{list: []payments.Payment{
			{Amount: 100, Date: mar(10)},
			{Amount: 200, Date: mar(20)},
			{Amount: 999, Date: time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC)},
			{Amount: 999, Date: time.Date(2026, time.April, 1, 10, 0, 0, 0, time.UTC)},
		}},
		&fixedExpenses{},
	)
	svc.now = func() time.Time { return mar(15) }

	s, err := svc.Snapshot(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, 300.0, s.MonthIncome)
}

func TestSnapshotIdempotent(t *testing.T) {
	svc := NewService(
		&fixedCounts{counts: map[string]int{orders.StatusReceived: 2, orders.StatusDelivered: 5}},
		&fixedPayments{list: []payments.Payment{{Amount: 300}}},
		&fixedExpenses{list: []expenses.Expense{{Amount: 30}}},
	)
	svc.now = func() time.Time {
		return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)
	}

	first, err := svc.Snapshot(context.Background(), "t1")
	require.NoError(t, err)
	second, err := svc.Snapshot(context.Background(), "t1")
	require.NoError(t, err)
	require.Equal(t, first, second)
}
