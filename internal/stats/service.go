package stats

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tallerpro/tallerpro/internal/expenses"
	"github.com/tallerpro/tallerpro/internal/orders"
	"github.com/tallerpro/tallerpro/internal/payments"
)

const fetchLimit = 5000

type OrderSource interface {
	StatusCounts(ctx context.Context, tenantID string) (map[string]int, error)
}

type PaymentSource interface {
	List(ctx context.Context, req payments.ListPaymentsRequest) ([]payments.Payment, error)
}

type ExpenseSource interface {
	List(ctx context.Context, req expenses.ListExpensesRequest) ([]expenses.Expense, error)
}

type Service struct {
	orders   OrderSource
	payments PaymentSource
	expenses ExpenseSource
	now      func() time.Time
}

func NewService(orderSource OrderSource, paySource PaymentSource, expSource ExpenseSource) *Service {
	return &Service{
		orders:   orderSource,
		payments: paySource,
		expenses: expSource,
		now:      time.Now,
	}
}

// Snapshot computes the dashboard numbers for the current calendar month.
// All aggregation happens in pure helpers so repeated calls over the same
// data yield the same result.
func (s *Service) Snapshot(ctx context.Context, tenantID string) (*Stats, error) {
	now := s.now()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	// Movements may carry a caller-supplied date anywhere inside the current
	// month, so the window covers the whole month rather than stopping at now.
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	var (
		counts map[string]int
		pays   []payments.Payment
		exps   []expenses.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		counts, err = s.orders.StatusCounts(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("stats status counts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		pays, err = s.payments.List(gctx, payments.ListPaymentsRequest{
			TenantID: tenantID, From: &from, To: &to, Limit: fetchLimit,
		})
		if err != nil {
			return fmt.Errorf("stats payments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		exps, err = s.expenses.List(gctx, expenses.ListExpensesRequest{
			TenantID: tenantID, From: &from, To: &to, Limit: fetchLimit,
		})
		if err != nil {
			return fmt.Errorf("stats expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := FromCounts(counts)
	snapshot.MonthIncome = SumPayments(pays)
	snapshot.MonthExpense = SumExpenses(exps)
	snapshot.MonthBalance = snapshot.MonthIncome - snapshot.MonthExpense
	return &snapshot, nil
}

// FromCounts derives the order buckets from a status histogram. Delivered
// orders are the only ones excluded from the active count.
func FromCounts(counts map[string]int) Stats {
	var s Stats
	for status, n := range counts {
		if status != orders.StatusDelivered {
			s.ActiveOrders += n
		}
		switch status {
		case orders.StatusReceived, orders.StatusDiagnosis:
			s.PendingDiagnosis += n
		case orders.StatusReady:
			s.ReadyForPickup += n
		}
	}
	return s
}

func SumPayments(pays []payments.Payment) float64 {
	var total float64
	for _, p := range pays {
		total += p.Amount
	}
	return total
}

func SumExpenses(exps []expenses.Expense) float64 {
	var total float64
	for _, e := range exps {
		total += e.Amount
	}
	return total
}
