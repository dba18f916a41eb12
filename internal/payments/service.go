package payments

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrCostNotSet rejects payments against orders whose repair cost has
	// not been estimated or finalized yet.
	ErrCostNotSet = errors.New("order cost not defined")
	// ErrExceedsBalance rejects base amounts above the pending balance.
	// The surcharge on top of the base is exempt from this check.
	ErrExceedsBalance = errors.New("amount exceeds pending balance")
	// ErrNoItems rejects general sales without line items.
	ErrNoItems = errors.New("general sale requires items")
)

// OrderSource exposes the slice of the orders module the payment flow needs.
type OrderSource interface {
	OrderCosts(ctx context.Context, tenantID string, orderID int64) (estimated, final float64, err error)
}

// SurchargeSource resolves the tenant's configured surcharge percentages.
type SurchargeSource interface {
	SurchargeConfig(ctx context.Context, tenantID string) (SurchargeConfig, error)
}

type Service struct {
	repo       Repository
	orders     OrderSource
	surcharges SurchargeSource
}

func NewService(repo Repository, orders OrderSource, surcharges SurchargeSource) *Service {
	return &Service{repo: repo, orders: orders, surcharges: surcharges}
}

// Create records a payment. Order-linked payments are validated against the
// pending balance; product lines decrement stock in the same transaction.
func (s *Service) Create(ctx context.Context, tenantID string, req CreatePaymentRequest) (*Payment, error) {
	items := make([]Item, 0, len(req.Items)+1)
	for _, it := range req.Items {
		items = append(items, Item{
			Type:     it.Type,
			ID:       it.ID,
			Name:     it.Name,
			Quantity: it.Quantity,
			Price:    it.Price,
		})
	}

	base := req.Amount
	if len(items) > 0 {
		base = 0
		for _, it := range items {
			base += it.Price * float64(it.Quantity)
		}
	}
	if base <= 0 {
		return nil, fmt.Errorf("%w: payment amount must be positive", ErrExceedsBalance)
	}

	if req.OrderID != nil {
		estimated, final, err := s.orders.OrderCosts(ctx, tenantID, *req.OrderID)
		if err != nil {
			return nil, fmt.Errorf("resolve order: %w", err)
		}
		existing, err := s.repo.ListByOrder(ctx, tenantID, *req.OrderID)
		if err != nil {
			return nil, fmt.Errorf("list order payments: %w", err)
		}
		bal := ComputeBalance(estimated, final, existing)
		if !bal.IsCostDefined {
			return nil, ErrCostNotSet
		}
		if base > bal.PendingBalance+BalanceTolerance {
			return nil, fmt.Errorf("%w: base %.2f, pending %.2f", ErrExceedsBalance, base, bal.PendingBalance)
		}
		if len(items) == 0 {
			items = append(items, Item{Type: ItemRepair, Name: "Abono reparación", Quantity: 1, Price: base})
		}
	} else if len(items) == 0 {
		return nil, ErrNoItems
	}

	cfg, err := s.surcharges.SurchargeConfig(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("load surcharge config: %w", err)
	}
	surcharge, final := Surcharge(base, req.Method, cfg)
	if surcharge > 0 {
		items = append(items, SurchargeLineItem(req.Method, SurchargePercent(req.Method, cfg), surcharge))
	}

	date := time.Now()
	if req.Date != nil {
		date = *req.Date
	}

	payment := Payment{
		TenantID:      tenantID,
		OrderID:       req.OrderID,
		ReceiptNumber: uuid.NewString(),
		Amount:        final,
		Method:        req.Method,
		Date:          date,
		Notes:         req.Notes,
		Items:         items,
	}

	id, err := s.repo.Create(ctx, payment, productDecrements(items))
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, error) {
	return s.repo.List(ctx, req)
}

// BalanceForOrder computes the current position of an order using every
// payment recorded against it.
func (s *Service) BalanceForOrder(ctx context.Context, tenantID string, orderID int64, estimated, final float64) (Balance, error) {
	pays, err := s.repo.ListByOrder(ctx, tenantID, orderID)
	if err != nil {
		return Balance{}, fmt.Errorf("list order payments: %w", err)
	}
	return ComputeBalance(estimated, final, pays), nil
}

// PaymentsForOrder returns the raw payment list for an order.
func (s *Service) PaymentsForOrder(ctx context.Context, tenantID string, orderID int64) ([]Payment, error) {
	return s.repo.ListByOrder(ctx, tenantID, orderID)
}

func productDecrements(items []Item) []StockDecrement {
	var out []StockDecrement
	for _, it := range items {
		if it.Type == ItemProduct && it.ID != nil {
			out = append(out, StockDecrement{ProductID: *it.ID, Quantity: it.Quantity})
		}
	}
	return out
}
