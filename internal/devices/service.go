package devices

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenantID string, req CreateDeviceRequest) (*Device, error) {
	device := FromRequest(tenantID, req)
	id, err := s.repo.Create(ctx, device)
	if err != nil {
		return nil, fmt.Errorf("create device: %w", err)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID string, id int64) (*Device, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, req ListDevicesRequest) ([]Device, error) {
	return s.repo.List(ctx, req)
}

// FromRequest maps a create request onto the storage model.
func FromRequest(tenantID string, req CreateDeviceRequest) Device {
	lockType := req.LockType
	if lockType == "" {
		lockType = LockNone
	}
	return Device{
		TenantID:     tenantID,
		ClientID:     req.ClientID,
		Brand:        req.Brand,
		Model:        req.Model,
		IMEI:         req.IMEI,
		SerialNumber: req.SerialNumber,
		Color:        req.Color,
		Condition:    req.Condition,
		LockType:     lockType,
		LockValue:    req.LockValue,
	}
}
