package orders

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/tallerpro/tallerpro/internal/clients"
	"github.com/tallerpro/tallerpro/internal/devices"
	"github.com/tallerpro/tallerpro/internal/payments"
)

type fakeOrderRepo struct {
	orders  map[int64]*Order
	nextID  int64
	updates map[string]interface{}
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*Order)}
}

func (f *fakeOrderRepo) Get(_ context.Context, _ string, id int64) (*Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	copied := *o
	return &copied, nil
}

func (f *fakeOrderRepo) List(_ context.Context, _ ListOrdersRequest) ([]Order, int, error) {
	var out []Order
	for _, o := range f.orders {
		out = append(out, *o)
	}
	return out, len(out), nil
}

func (f *fakeOrderRepo) Recent(_ context.Context, _ string, limit int) ([]Order, error) {
	var out []Order
	for _, o := range f.orders {
		if len(out) == limit {
			break
		}
		out = append(out, *o)
	}
	return out, nil
}

func (f *fakeOrderRepo) Create(_ context.Context, order Order, newDevice *devices.Device) (int64, error) {
	f.nextID++
	order.ID = f.nextID
	if newDevice != nil {
		order.DeviceID = 999
	}
	f.orders[order.ID] = &order
	return order.ID, nil
}

func (f *fakeOrderRepo) Update(_ context.Context, _ string, id int64, updates map[string]interface{}) error {
	o, ok := f.orders[id]
	if !ok {
		return ErrNotFound
	}
	f.updates = updates
	if v, ok := updates["status"]; ok {
		o.Status = v.(string)
	}
	if v, ok := updates["completed_at"]; ok {
		ts := v.(time.Time)
		o.CompletedAt = &ts
	}
	if v, ok := updates["delivered_at"]; ok {
		ts := v.(time.Time)
		o.DeliveredAt = &ts
	}
	if v, ok := updates["final_cost"]; ok {
		o.FinalCost = v.(float64)
	}
	return nil
}

func (f *fakeOrderRepo) StatusCounts(context.Context, string) (map[string]int, error) {
	counts := make(map[string]int)
	for _, o := range f.orders {
		counts[o.Status]++
	}
	return counts, nil
}

func (f *fakeOrderRepo) CountCreatedByMonth(context.Context, string, time.Time, time.Time) ([]MonthCount, error) {
	return nil, nil
}

func (f *fakeOrderRepo) OrderCosts(_ context.Context, _ string, id int64) (float64, float64, error) {
	o, ok := f.orders[id]
	if !ok {
		return 0, 0, ErrNotFound
	}
	return o.EstimatedCost, o.FinalCost, nil
}

type fakeClientRepo struct {
	clients map[int64]*clients.Client
}

func (f *fakeClientRepo) Get(_ context.Context, _ string, id int64) (*clients.Client, error) {
	c, ok := f.clients[id]
	if !ok {
		return nil, clients.ErrNotFound
	}
	return c, nil
}

func (f *fakeClientRepo) List(context.Context, clients.ListClientsRequest) ([]clients.Client, int, error) {
	return nil, 0, nil
}

func (f *fakeClientRepo) Create(context.Context, clients.Client) (int64, error) { return 0, nil }

func (f *fakeClientRepo) Update(context.Context, string, int64, map[string]interface{}) error {
	return nil
}

type fakeDeviceRepo struct {
	devices map[int64]*devices.Device
}

func (f *fakeDeviceRepo) Get(_ context.Context, _ string, id int64) (*devices.Device, error) {
	d, ok := f.devices[id]
	if !ok {
		return nil, devices.ErrNotFound
	}
	return d, nil
}

func (f *fakeDeviceRepo) List(context.Context, devices.ListDevicesRequest) ([]devices.Device, error) {
	return nil, nil
}

func (f *fakeDeviceRepo) Create(context.Context, devices.Device) (int64, error) { return 0, nil }

type fakePaySource struct {
	payments []payments.Payment
}

func (f *fakePaySource) PaymentsForOrder(context.Context, string, int64) ([]payments.Payment, error) {
	return f.payments, nil
}

func answer(v string) *string { return &v }

func testService(repo *fakeOrderRepo) *Service {
	clientRepo := &fakeClientRepo{clients: map[int64]*clients.Client{
		1: {ID: 1, Name: "Ana"},
	}}
	deviceRepo := &fakeDeviceRepo{devices: map[int64]*devices.Device{
		2: {ID: 2, ClientID: 1, Brand: "Samsung", Model: "A52"},
	}}
	return NewService(repo, clientRepo, deviceRepo, &fakePaySource{})
}

func TestCreateRequiresDevice(t *testing.T) {
	svc := testService(newFakeOrderRepo())

	_, err := svc.Create(context.Background(), "t1", CreateOrderRequest{
		ClientID: 1,
		Problem:  "no enciende",
	})
	require.ErrorIs(t, err, ErrDeviceRequired)
}

func TestCreateDefaultsStatusAndPriority(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := testService(repo)

	deviceRef := int64(2)
	o, err := svc.Create(context.Background(), "t1", CreateOrderRequest{
		ClientID: 1,
		DeviceID: &deviceRef,
		Problem:  "pantalla rota",
	})
	require.NoError(t, err)
	require.Equal(t, StatusReceived, o.Status)
	require.Equal(t, PriorityNormal, o.Priority)
}

func TestCreateRejectsBadChecklist(t *testing.T) {
	svc := testService(newFakeOrderRepo())

	deviceRef := int64(2)
	_, err := svc.Create(context.Background(), "t1", CreateOrderRequest{
		ClientID:        1,
		DeviceID:        &deviceRef,
		Problem:         "pantalla rota",
		IntakeChecklist: Checklist{"enciende": answer("maybe")},
	})
	require.ErrorIs(t, err, ErrBadChecklist)
}

func TestCreateRejectsOversizedChecklist(t *testing.T) {
	svc := testService(newFakeOrderRepo())

	list := make(Checklist, maxChecklistEntries+1)
	for i := 0; i <= maxChecklistEntries; i++ {
		list[string(rune('a'+i))] = answer("yes")
	}

	deviceRef := int64(2)
	_, err := svc.Create(context.Background(), "t1", CreateOrderRequest{
		ClientID:        1,
		DeviceID:        &deviceRef,
		Problem:         "pantalla rota",
		IntakeChecklist: list,
	})
	require.ErrorIs(t, err, ErrBadChecklist)
}

func TestUpdateStampsCompletedAtOnce(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := testService(repo)

	deviceRef := int64(2)
	o, err := svc.Create(context.Background(), "t1", CreateOrderRequest{
		ClientID: 1, DeviceID: &deviceRef, Problem: "pantalla rota",
	})
	require.NoError(t, err)

	ready := StatusReady
	updated, err := svc.Update(context.Background(), "t1", o.ID, UpdateOrderRequest{Status: &ready})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	first := *updated.CompletedAt

	// Setting listo again must not move the timestamp.
	updated, err = svc.Update(context.Background(), "t1", o.ID, UpdateOrderRequest{Status: &ready})
	require.NoError(t, err)
	require.NotNil(t, updated.CompletedAt)
	require.Equal(t, first, *updated.CompletedAt)
}

func TestUpdateStampsDeliveredAt(t *testing.T) {
	repo := newFakeOrderRepo()
	svc := testService(repo)

	deviceRef := int64(2)
	o, err := svc.Create(context.Background(), "t1", CreateOrderRequest{
		ClientID: 1, DeviceID: &deviceRef, Problem: "pantalla rota",
	})
	require.NoError(t, err)

	delivered := StatusDelivered
	updated, err := svc.Update(context.Background(), "t1", o.ID, UpdateOrderRequest{Status: &delivered})
	require.NoError(t, err)
	require.NotNil(t, updated.DeliveredAt)
	require.Nil(t, updated.CompletedAt)
}

func TestDetailComputesBalance(t *testing.T) {
	repo := newFakeOrderRepo()
	clientRepo := &fakeClientRepo{clients: map[int64]*clients.Client{1: {ID: 1, Name: "Ana"}}}
	deviceRepo := &fakeDeviceRepo{devices: map[int64]*devices.Device{2: {ID: 2, ClientID: 1}}}
	paySource := &fakePaySource{payments: []payments.Payment{
		{Amount: 40, Items: []payments.Item{
			{Type: payments.ItemRepair, Name: "Abono reparación", Quantity: 1, Price: 40},
		}},
	}}
	svc := NewService(repo, clientRepo, deviceRepo, paySource)

	deviceRef := int64(2)
	o, err := svc.Create(context.Background(), "t1", CreateOrderRequest{
		ClientID: 1, DeviceID: &deviceRef, Problem: "pantalla rota", EstimatedCost: 100,
	})
	require.NoError(t, err)

	detail, err := svc.Detail(context.Background(), "t1", o.ID)
	require.NoError(t, err)
	require.Equal(t, "Ana", detail.Client.Name)
	require.Equal(t, 40.0, detail.Balance.TotalPaid)
	require.Equal(t, 60.0, detail.Balance.PendingBalance)
	require.True(t, detail.Balance.IsCostDefined)
}
