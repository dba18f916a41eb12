package orders

import (
	"time"

	"github.com/tallerpro/tallerpro/internal/clients"
	"github.com/tallerpro/tallerpro/internal/devices"
	"github.com/tallerpro/tallerpro/internal/payments"
)

// CreateOrderRequest is the payload for POST /api/orders. Either DeviceID
// references an existing device or Device describes one registered at
// intake together with the order.
type CreateOrderRequest struct {
	ClientID        int64                         `json:"client_id" validate:"required,gt=0"`
	DeviceID        *int64                        `json:"device_id,omitempty" validate:"omitempty,gt=0"`
	Device          *devices.CreateDeviceRequest  `json:"device,omitempty"`
	Problem         string                        `json:"problem" validate:"required,max=2000"`
	EstimatedCost   float64                       `json:"estimated_cost" validate:"gte=0"`
	Priority        string                        `json:"priority" validate:"omitempty,oneof=normal urgente"`
	TechnicianName  *string                       `json:"technician_name,omitempty" validate:"omitempty,max=120"`
	EstimatedDate   *time.Time                    `json:"estimated_date,omitempty"`
	Notes           *string                       `json:"notes,omitempty" validate:"omitempty,max=2000"`
	IntakeChecklist Checklist                     `json:"intake_checklist,omitempty"`
}

// UpdateOrderRequest is the payload for PATCH /api/orders/{id}.
type UpdateOrderRequest struct {
	Status         *string    `json:"status,omitempty" validate:"omitempty,oneof=recibido diagnostico en_curso listo entregado"`
	Problem        *string    `json:"problem,omitempty" validate:"omitempty,max=2000"`
	Diagnosis      *string    `json:"diagnosis,omitempty" validate:"omitempty,max=2000"`
	Solution       *string    `json:"solution,omitempty" validate:"omitempty,max=2000"`
	TechnicianName *string    `json:"technician_name,omitempty" validate:"omitempty,max=120"`
	EstimatedCost  *float64   `json:"estimated_cost,omitempty" validate:"omitempty,gte=0"`
	FinalCost      *float64   `json:"final_cost,omitempty" validate:"omitempty,gte=0"`
	Priority       *string    `json:"priority,omitempty" validate:"omitempty,oneof=normal urgente"`
	EstimatedDate  *time.Time `json:"estimated_date,omitempty"`
	Notes          *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ListOrdersRequest carries list filters.
type ListOrdersRequest struct {
	TenantID string
	Status   *string
	ClientID *int64
	Priority *string
	Limit    int
	Offset   int
}

// Detail is the enriched order returned by GET /api/orders/{id}: the order
// plus its client, device, payment history, and computed balance.
type Detail struct {
	Order
	Client   *clients.Client    `json:"client,omitempty"`
	Device   *devices.Device    `json:"device,omitempty"`
	Payments []payments.Payment `json:"payments"`
	Balance  payments.Balance   `json:"balance"`
}
