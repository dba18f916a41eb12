package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tallerpro/tallerpro/internal/expenses"
	"github.com/tallerpro/tallerpro/internal/orders"
	"github.com/tallerpro/tallerpro/internal/payments"
)

// fetchLimit bounds a single report query. Shops in this segment record a few
// hundred movements a month at most.
const fetchLimit = 5000

const trailingMonths = 6

type PaymentSource interface {
	List(ctx context.Context, req payments.ListPaymentsRequest) ([]payments.Payment, error)
}

type ExpenseSource interface {
	List(ctx context.Context, req expenses.ListExpensesRequest) ([]expenses.Expense, error)
}

type OrderSource interface {
	CountCreatedByMonth(ctx context.Context, tenantID string, from, to time.Time) ([]orders.MonthCount, error)
}

type Service struct {
	payments PaymentSource
	expenses ExpenseSource
	orders   OrderSource
	now      func() time.Time
}

func NewService(paySource PaymentSource, expSource ExpenseSource, orderSource OrderSource) *Service {
	return &Service{
		payments: paySource,
		expenses: expSource,
		orders:   orderSource,
		now:      time.Now,
	}
}

// Build assembles the report for one filter window. The "all" filter adds
// trailing six-month summaries on top of the full transaction list.
func (s *Service) Build(ctx context.Context, tenantID, filter string) (*Report, error) {
	switch filter {
	case FilterToday, FilterMonth, FilterAll:
	default:
		filter = FilterAll
	}

	from, to := rangeBounds(filter, s.now())

	pays, exps, err := s.fetch(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	report := &Report{
		Filter:       filter,
		Transactions: Merge(pays, exps),
	}
	for _, tx := range report.Transactions {
		switch tx.Type {
		case TypeIncome:
			report.TotalIncome += tx.Amount
		case TypeExpense:
			report.TotalExpense += tx.Amount
		}
	}
	report.Balance = report.TotalIncome - report.TotalExpense

	if filter == FilterAll {
		monthly, err := s.monthlySummaries(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		report.Monthly = monthly
	}
	return report, nil
}

func (s *Service) fetch(ctx context.Context, tenantID string, from, to *time.Time) ([]payments.Payment, []expenses.Expense, error) {
	var (
		pays []payments.Payment
		exps []expenses.Expense
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pays, err = s.payments.List(gctx, payments.ListPaymentsRequest{
			TenantID: tenantID, From: from, To: to, Limit: fetchLimit,
		})
		if err != nil {
			return fmt.Errorf("report payments: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		exps, err = s.expenses.List(gctx, expenses.ListExpensesRequest{
			TenantID: tenantID, From: from, To: to, Limit: fetchLimit,
		})
		if err != nil {
			return fmt.Errorf("report expenses: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return pays, exps, nil
}

func (s *Service) monthlySummaries(ctx context.Context, tenantID string) ([]MonthlySummary, error) {
	now := s.now()
	windowStart := monthStart(now).AddDate(0, -(trailingMonths - 1), 0)
	windowEnd := monthEnd(now)

	pays, exps, err := s.fetch(ctx, tenantID, &windowStart, &windowEnd)
	if err != nil {
		return nil, err
	}

	counts, err := s.orders.CountCreatedByMonth(ctx, tenantID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("report order counts: %w", err)
	}
	ordersByMonth := make(map[string]int, len(counts))
	for _, mc := range counts {
		ordersByMonth[mc.Month.Format("2006-01")] = mc.Count
	}

	summaries := make([]MonthlySummary, 0, trailingMonths)
	for i := trailingMonths - 1; i >= 0; i-- {
		month := monthStart(now).AddDate(0, -i, 0)
		key := month.Format("2006-01")
		summary := MonthlySummary{Month: key, Orders: ordersByMonth[key]}

		for _, p := range pays {
			if p.Date.Format("2006-01") == key {
				summary.Income += p.Amount
			}
		}
		for _, e := range exps {
			if e.Date.Format("2006-01") == key {
				summary.Expense += e.Amount
			}
		}
		summary.Balance = summary.Income - summary.Expense
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Merge combines payments and expenses into one list sorted by date
// descending. It is a pure function so report totals stay reproducible.
func Merge(pays []payments.Payment, exps []expenses.Expense) []Transaction {
	out := make([]Transaction, 0, len(pays)+len(exps))

	for _, p := range pays {
		category := "Venta"
		if p.OrderID != nil {
			category = "Reparación"
		}
		description := "Recibo " + p.ReceiptNumber
		if p.Notes != nil && *p.Notes != "" {
			description = *p.Notes
		}
		out = append(out, Transaction{
			Type:        TypeIncome,
			Date:        p.Date,
			Category:    category,
			Description: description,
			Method:      p.Method,
			Amount:      p.Amount,
		})
	}
	for _, e := range exps {
		out = append(out, Transaction{
			Type:        TypeExpense,
			Date:        e.Date,
			Category:    e.Category,
			Description: e.Description,
			Method:      e.Method,
			Amount:      e.Amount,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// rangeBounds returns the inclusive window for a filter. Both bounds are nil
// for the "all" filter. The upper bound matters because movement dates come
// from the caller and can land later in the same day or month.
func rangeBounds(filter string, now time.Time) (*time.Time, *time.Time) {
	switch filter {
	case FilterToday:
		start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
		return &start, &end
	case FilterMonth:
		start := monthStart(now)
		end := monthEnd(now)
		return &start, &end
	default:
		return nil, nil
	}
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthEnd(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 1, 0).Add(-time.Nanosecond)
}
