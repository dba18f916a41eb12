package payments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	payments   map[int64]*Payment
	byOrder    map[int64][]Payment
	stock      map[int64]int
	nextID     int64
	lastCreate *Payment
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		payments: make(map[int64]*Payment),
		byOrder:  make(map[int64][]Payment),
		stock:    make(map[int64]int),
	}
}

func (f *fakeRepo) Create(_ context.Context, payment Payment, decrements []StockDecrement) (int64, error) {
	for _, d := range decrements {
		if f.stock[d.ProductID] < d.Quantity {
			return 0, ErrInsufficientStock
		}
	}
	for _, d := range decrements {
		f.stock[d.ProductID] -= d.Quantity
	}

	f.nextID++
	payment.ID = f.nextID
	f.payments[payment.ID] = &payment
	f.lastCreate = &payment
	if payment.OrderID != nil {
		f.byOrder[*payment.OrderID] = append(f.byOrder[*payment.OrderID], payment)
	}
	return payment.ID, nil
}

func (f *fakeRepo) Get(_ context.Context, _ string, id int64) (*Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, ErrNotFound
	}
	return p, nil
}

func (f *fakeRepo) List(_ context.Context, _ ListPaymentsRequest) ([]Payment, error) {
	var out []Payment
	for _, p := range f.payments {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) ListByOrder(_ context.Context, _ string, orderID int64) ([]Payment, error) {
	return f.byOrder[orderID], nil
}

type fakeOrders struct {
	estimated float64
	final     float64
	err       error
}

func (f *fakeOrders) OrderCosts(context.Context, string, int64) (float64, float64, error) {
	return f.estimated, f.final, f.err
}

type fakeSurcharges struct {
	cfg SurchargeConfig
}

func (f *fakeSurcharges) SurchargeConfig(context.Context, string) (SurchargeConfig, error) {
	return f.cfg, nil
}

func newTestService(repo *fakeRepo, ord *fakeOrders, cfg SurchargeConfig) *Service {
	return NewService(repo, ord, &fakeSurcharges{cfg: cfg})
}

func orderID(v int64) *int64 { return &v }

func TestCreateOrderPaymentRejectsWhenCostNotSet(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeOrders{}, SurchargeConfig{})

	_, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1),
		Amount:  50,
		Method:  MethodCash,
	})
	require.ErrorIs(t, err, ErrCostNotSet)
}

func TestCreateOrderPaymentRejectsOverpayment(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeOrders{estimated: 100}, SurchargeConfig{})

	_, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1),
		Amount:  100.10,
		Method:  MethodCash,
	})
	require.ErrorIs(t, err, ErrExceedsBalance)
}

func TestCreateOrderPaymentWithinTolerance(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeOrders{estimated: 100}, SurchargeConfig{})

	p, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1),
		Amount:  100.04,
		Method:  MethodCash,
	})
	require.NoError(t, err)
	require.InDelta(t, 100.04, p.Amount, 1e-9)
	require.NotEmpty(t, p.ReceiptNumber)
}

func TestCreateItemlessOrderPaymentSynthesizesRepairLine(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeOrders{estimated: 100}, SurchargeConfig{})

	p, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1),
		Amount:  40,
		Method:  MethodCash,
	})
	require.NoError(t, err)
	require.Len(t, p.Items, 1)
	require.Equal(t, ItemRepair, p.Items[0].Type)
	require.Equal(t, 40.0, p.Items[0].Price)
}

func TestCreateCardPaymentAppendsSurchargeLine(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeOrders{estimated: 100}, SurchargeConfig{CardPct: 10})

	p, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1),
		Amount:  100,
		Method:  MethodCard,
	})
	require.NoError(t, err)
	require.InDelta(t, 110.0, p.Amount, 1e-9)

	last := p.Items[len(p.Items)-1]
	require.Equal(t, ItemOther, last.Type)
	require.InDelta(t, 10.0, last.Price, 1e-9)
}

func TestSurchargeMayExceedPendingBalance(t *testing.T) {
	// Base equals the full pending balance; the surcharge pushes the total
	// charged above it, which is allowed.
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeOrders{estimated: 100}, SurchargeConfig{CardPct: 10})

	p, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1),
		Amount:  100,
		Method:  MethodCard,
	})
	require.NoError(t, err)
	require.Greater(t, p.Amount, 100.0)
}

func TestExistingPaymentsShrinkThePendingBalance(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, &fakeOrders{estimated: 100}, SurchargeConfig{})

	_, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1), Amount: 60, Method: MethodCash,
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1), Amount: 50, Method: MethodCash,
	})
	require.ErrorIs(t, err, ErrExceedsBalance)

	_, err = svc.Create(context.Background(), "t1", CreatePaymentRequest{
		OrderID: orderID(1), Amount: 40, Method: MethodCash,
	})
	require.NoError(t, err)
}

func TestGeneralSaleRequiresItems(t *testing.T) {
	svc := newTestService(newFakeRepo(), &fakeOrders{}, SurchargeConfig{})

	_, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		Amount: 50,
		Method: MethodCash,
	})
	require.ErrorIs(t, err, ErrNoItems)
}

func TestGeneralSaleDecrementsStock(t *testing.T) {
	repo := newFakeRepo()
	repo.stock[7] = 3
	svc := newTestService(repo, &fakeOrders{}, SurchargeConfig{})

	productRef := int64(7)
	_, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		Method: MethodCash,
		Items: []ItemRequest{
			{Type: ItemProduct, ID: &productRef, Name: "Funda", Quantity: 2, Price: 25},
		},
	})
	require.NoError(t, err)
	require.Equal(t, 1, repo.stock[7])
}

func TestGeneralSaleFailsAtomicallyOnShortStock(t *testing.T) {
	repo := newFakeRepo()
	repo.stock[7] = 1
	svc := newTestService(repo, &fakeOrders{}, SurchargeConfig{})

	productRef := int64(7)
	_, err := svc.Create(context.Background(), "t1", CreatePaymentRequest{
		Method: MethodCash,
		Items: []ItemRequest{
			{Type: ItemProduct, ID: &productRef, Name: "Funda", Quantity: 2, Price: 25},
		},
	})
	require.ErrorIs(t, err, ErrInsufficientStock)
	require.Equal(t, 1, repo.stock[7])
	require.Empty(t, repo.payments)
}
