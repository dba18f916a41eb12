package orders

import "time"

// Repair order statuses. Progression is nominally linear but nothing
// enforces transitions; the counter staff may set any status directly.
const (
	StatusReceived   = "recibido"
	StatusDiagnosis  = "diagnostico"
	StatusInProgress = "en_curso"
	StatusReady      = "listo"
	StatusDelivered  = "entregado"
)

const (
	PriorityNormal = "normal"
	PriorityUrgent = "urgente"
)

// Checklist answers: "yes", "no", or nil when the question was skipped.
type Checklist map[string]*string

type Order struct {
	ID              int64      `json:"id" db:"id"`
	TenantID        string     `json:"-" db:"tenant_id"`
	ClientID        int64      `json:"client_id" db:"client_id"`
	DeviceID        int64      `json:"device_id" db:"device_id"`
	Status          string     `json:"status" db:"status"`
	Problem         string     `json:"problem" db:"problem"`
	Diagnosis       *string    `json:"diagnosis,omitempty" db:"diagnosis"`
	Solution        *string    `json:"solution,omitempty" db:"solution"`
	TechnicianName  *string    `json:"technician_name,omitempty" db:"technician_name"`
	EstimatedCost   float64    `json:"estimated_cost" db:"estimated_cost"`
	FinalCost       float64    `json:"final_cost" db:"final_cost"`
	Priority        string     `json:"priority" db:"priority"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	EstimatedDate   *time.Time `json:"estimated_date,omitempty" db:"estimated_date"`
	CompletedAt     *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	DeliveredAt     *time.Time `json:"delivered_at,omitempty" db:"delivered_at"`
	Notes           *string    `json:"notes,omitempty" db:"notes"`
	IntakeChecklist Checklist  `json:"intake_checklist,omitempty" db:"intake_checklist"`
}
