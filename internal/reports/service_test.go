package reports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tallerpro/tallerpro/internal/expenses"
	"github.com/tallerpro/tallerpro/internal/orders"
	"github.com/tallerpro/tallerpro/internal/payments"
)

type fixedPayments struct {
	list []payments.Payment
}

func (f *fixedPayments) List(_ context.Context, req payments.ListPaymentsRequest) ([]payments.Payment, error) {
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

type fixedExpenses struct {
	list []expenses.Expense
}

func (f *fixedExpenses) List(_ context.Context, req expenses.ListExpensesRequest) ([]expenses.Expense, error) {
	var out []expenses.Expense
	for _, e := range f.list {
		if req.From != nil && e.Date.Before(*req.From) {
			continue
		}
		if req.To != nil && e.Date.After(*req.To) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

type fixedOrders struct {
	counts []orders.MonthCount
}

func (f *fixedOrders) CountCreatedByMonth(context.Context, string, time.Time, time.Time) ([]orders.MonthCount, error) {
	return f.counts, nil
}

var testNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixtureService() *Service {
	ref := int64(1)
	pays := []payments.Payment{
		{Amount: 100, Method: payments.MethodCash, Date: testNow.AddDate(0, 0, -1), OrderID: &ref, ReceiptNumber: "r1"},
		{Amount: 100, Method: payments.MethodCard, Date: testNow.AddDate(0, 0, -2), ReceiptNumber: "r2"},
		{Amount: 100, Method: payments.MethodCash, Date: testNow.AddDate(0, -1, 0), ReceiptNumber: "r3"},
	}
	exps := []expenses.Expense{
		{Amount: 30, Category: "Repuestos", Description: "Pantallas", Method: payments.MethodCash, Date: testNow.AddDate(0, 0, -3)},
	}
	svc := NewService(
		&fixedPayments{list: pays},
		&fixedExpenses{list: exps},
		&fixedOrders{counts: []orders.MonthCount{
			{Month: time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC), Count: 4},
		}},
	)
	svc.now = func() time.Time { return testNow }
	return svc
}

func TestBuildAllTotals(t *testing.T) {
	svc := fixtureService()

	report, err := svc.Build(context.Background(), "t1", FilterAll)
	require.NoError(t, err)

	require.Equal(t, 300.0, report.TotalIncome)
	require.Equal(t, 30.0, report.TotalExpense)
	require.Equal(t, 270.0, report.Balance)
	require.Len(t, report.Transactions, 4)
	require.Len(t, report.Monthly, 6)
}

func TestBuildMonthFilterExcludesOlderMovements(t *testing.T) {
	svc := fixtureService()

	report, err := svc.Build(context.Background(), "t1", FilterMonth)
	require.NoError(t, err)

	// The payment from last month drops out.
	require.Equal(t, 200.0, report.TotalIncome)
	require.Equal(t, 30.0, report.TotalExpense)
	require.Empty(t, report.Monthly)
}

func TestBuildWindowsStayInsideCalendarBounds(t *testing.T) {
	pays := []payments.Payment{
		{Amount: 10, Date: testNow, ReceiptNumber: "r1"},
		{Amount: 20, Date: testNow.AddDate(0, 0, 10), ReceiptNumber: "r2"},
		{Amount: 40, Date: time.Date(2026, time.April, 2, 0, 0, 0, 0, time.UTC), ReceiptNumber: "r3"},
	}
	svc := NewService(&fixedPayments{list: pays}, &fixedExpenses{}, &fixedOrders{})
	svc.now = func() time.Time { return testNow }

	// Today stops at the end of the day, not at now.
	today, err := svc.Build(context.Background(), "t1", FilterToday)
	require.NoError(t, err)
	require.Equal(t, 10.0, today.TotalIncome)

	// The month window runs through its last instant, so a movement dated
	// later in the same month counts while next month's does not.
	month, err := svc.Build(context.Background(), "t1", FilterMonth)
	require.NoError(t, err)
	require.Equal(t, 30.0, month.TotalIncome)
}

func TestBuildUnknownFilterFallsBackToAll(t *testing.T) {
	svc := fixtureService()

	report, err := svc.Build(context.Background(), "t1", "yesterday")
	require.NoError(t, err)
	require.Equal(t, FilterAll, report.Filter)
}

func TestMonthlySummaryCarriesOrderCounts(t *testing.T) {
	svc := fixtureService()

	report, err := svc.Build(context.Background(), "t1", FilterAll)
	require.NoError(t, err)

	current := report.Monthly[len(report.Monthly)-1]
	require.Equal(t, "2026-03", current.Month)
	require.Equal(t, 4, current.Orders)
	require.Equal(t, 200.0, current.Income)
	require.Equal(t, 30.0, current.Expense)
	require.Equal(t, 170.0, current.Balance)
}

func TestMergeSortsDescendingAndCategorizes(t *testing.T) {
	ref := int64(9)
	pays := []payments.Payment{
		{Amount: 50, Date: testNow.AddDate(0, 0, -5), ReceiptNumber: "old"},
		{Amount: 70, Date: testNow, OrderID: &ref, ReceiptNumber: "new"},
	}
	exps := []expenses.Expense{
		{Amount: 20, Category: "Alquiler", Date: testNow.AddDate(0, 0, -1)},
	}

	merged := Merge(pays, exps)
	require.Len(t, merged, 3)
	require.Equal(t, "Reparación", merged[0].Category)
	require.Equal(t, TypeExpense, merged[1].Type)
	require.Equal(t, "Venta", merged[2].Category)
	require.True(t, merged[0].Date.After(merged[1].Date))
}
