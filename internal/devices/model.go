package devices

import "time"

// Lock types a device can arrive with.
const (
	LockPIN      = "pin"
	LockPattern  = "patron"
	LockPassword = "password"
	LockNone     = "none"
)

type Device struct {
	ID           int64     `json:"id" db:"id"`
	TenantID     string    `json:"-" db:"tenant_id"`
	ClientID     int64     `json:"client_id" db:"client_id"`
	Brand        string    `json:"brand" db:"brand"`
	Model        string    `json:"model" db:"model"`
	IMEI         *string   `json:"imei,omitempty" db:"imei"`
	SerialNumber *string   `json:"serial_number,omitempty" db:"serial_number"`
	Color        *string   `json:"color,omitempty" db:"color"`
	Condition    *string   `json:"condition,omitempty" db:"condition"`
	LockType     string    `json:"lock_type" db:"lock_type"`
	LockValue    *string   `json:"lock_value,omitempty" db:"lock_value"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
