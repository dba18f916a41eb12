package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tallerpro/tallerpro/internal/clients"
	"github.com/tallerpro/tallerpro/internal/devices"
	"github.com/tallerpro/tallerpro/internal/payments"
)

var (
	// ErrDeviceRequired rejects orders that neither reference nor describe a device.
	ErrDeviceRequired = errors.New("order requires a device")
	// ErrBadChecklist rejects checklist answers other than yes/no.
	ErrBadChecklist = errors.New("checklist answers must be yes or no")
)

const maxChecklistEntries = 12

// PaymentSource exposes the payment history needed for order enrichment.
type PaymentSource interface {
	PaymentsForOrder(ctx context.Context, tenantID string, orderID int64) ([]payments.Payment, error)
}

type Service struct {
	repo       Repository
	clientRepo clients.Repository
	deviceRepo devices.Repository
	paySource  PaymentSource
}

func NewService(repo Repository, clientRepo clients.Repository, deviceRepo devices.Repository, paySource PaymentSource) *Service {
	return &Service{
		repo:       repo,
		clientRepo: clientRepo,
		deviceRepo: deviceRepo,
		paySource:  paySource,
	}
}

func (s *Service) Create(ctx context.Context, tenantID string, req CreateOrderRequest) (*Order, error) {
	if req.DeviceID == nil && req.Device == nil {
		return nil, ErrDeviceRequired
	}
	if err := validateChecklist(req.IntakeChecklist); err != nil {
		return nil, err
	}

	if _, err := s.clientRepo.Get(ctx, tenantID, req.ClientID); err != nil {
		return nil, fmt.Errorf("resolve client: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = PriorityNormal
	}

	order := Order{
		TenantID:        tenantID,
		ClientID:        req.ClientID,
		Status:          StatusReceived,
		Problem:         req.Problem,
		TechnicianName:  req.TechnicianName,
		EstimatedCost:   req.EstimatedCost,
		Priority:        priority,
		EstimatedDate:   req.EstimatedDate,
		Notes:           req.Notes,
		IntakeChecklist: req.IntakeChecklist,
	}

	var newDevice *devices.Device
	if req.Device != nil {
		d := devices.FromRequest(tenantID, *req.Device)
		d.ClientID = req.ClientID
		newDevice = &d
	} else {
		device, err := s.deviceRepo.Get(ctx, tenantID, *req.DeviceID)
		if err != nil {
			return nil, fmt.Errorf("resolve device: %w", err)
		}
		order.DeviceID = device.ID
	}

	id, err := s.repo.Create(ctx, order, newDevice)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return s.repo.Get(ctx, tenantID, id)
}

// Update applies a partial update. Reaching "listo" stamps CompletedAt and
// "entregado" stamps DeliveredAt, each only the first time.
func (s *Service) Update(ctx context.Context, tenantID string, id int64, req UpdateOrderRequest) (*Order, error) {
	existing, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Status != nil {
		updates["status"] = *req.Status
		now := time.Now()
		if *req.Status == StatusReady && existing.CompletedAt == nil {
			updates["completed_at"] = now
		}
		if *req.Status == StatusDelivered && existing.DeliveredAt == nil {
			updates["delivered_at"] = now
		}
	}
	if req.Problem != nil {
		updates["problem"] = *req.Problem
	}
	if req.Diagnosis != nil {
		updates["diagnosis"] = *req.Diagnosis
	}
	if req.Solution != nil {
		updates["solution"] = *req.Solution
	}
	if req.TechnicianName != nil {
		updates["technician_name"] = *req.TechnicianName
	}
	if req.EstimatedCost != nil {
		updates["estimated_cost"] = *req.EstimatedCost
	}
	if req.FinalCost != nil {
		updates["final_cost"] = *req.FinalCost
	}
	if req.Priority != nil {
		updates["priority"] = *req.Priority
	}
	if req.EstimatedDate != nil {
		updates["estimated_date"] = *req.EstimatedDate
	}
	if req.Notes != nil {
		updates["notes"] = *req.Notes
	}

	if len(updates) == 0 {
		return existing, nil
	}
	if err := s.repo.Update(ctx, tenantID, id, updates); err != nil {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID string, id int64) (*Order, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Recent(ctx context.Context, tenantID string, limit int) ([]Order, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.repo.Recent(ctx, tenantID, limit)
}

// Detail loads the order and fans out for its client, device, and payment
// history concurrently, then derives the balance from the one calculator.
func (s *Service) Detail(ctx context.Context, tenantID string, id int64) (*Detail, error) {
	order, err := s.repo.Get(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	detail := &Detail{Order: *order}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		client, err := s.clientRepo.Get(gctx, tenantID, order.ClientID)
		if err != nil {
			return fmt.Errorf("load client: %w", err)
		}
		detail.Client = client
		return nil
	})
	g.Go(func() error {
		device, err := s.deviceRepo.Get(gctx, tenantID, order.DeviceID)
		if err != nil {
			return fmt.Errorf("load device: %w", err)
		}
		detail.Device = device
		return nil
	})
	g.Go(func() error {
		pays, err := s.paySource.PaymentsForOrder(gctx, tenantID, order.ID)
		if err != nil {
			return fmt.Errorf("load payments: %w", err)
		}
		detail.Payments = pays
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if detail.Payments == nil {
		detail.Payments = []payments.Payment{}
	}
	detail.Balance = payments.ComputeBalance(order.EstimatedCost, order.FinalCost, detail.Payments)
	return detail, nil
}

func validateChecklist(list Checklist) error {
	if len(list) > maxChecklistEntries {
		return fmt.Errorf("%w: at most %d entries", ErrBadChecklist, maxChecklistEntries)
	}
	for _, answer := range list {
		if answer == nil {
			continue
		}
		if *answer != "yes" && *answer != "no" {
			return ErrBadChecklist
		}
	}
	return nil
}
