package devices

// CreateDeviceRequest is the payload for POST /api/devices. The same shape is
// embedded in order creation for devices registered at intake.
type CreateDeviceRequest struct {
	ClientID     int64   `json:"client_id" validate:"required,gt=0"`
	Brand        string  `json:"brand" validate:"required,max=80"`
	Model        string  `json:"model" validate:"required,max=120"`
	IMEI         *string `json:"imei,omitempty" validate:"omitempty,max=40"`
	SerialNumber *string `json:"serial_number,omitempty" validate:"omitempty,max=80"`
	Color        *string `json:"color,omitempty" validate:"omitempty,max=40"`
	Condition    *string `json:"condition,omitempty" validate:"omitempty,max=500"`
	LockType     string  `json:"lock_type" validate:"omitempty,oneof=pin patron password none"`
	LockValue    *string `json:"lock_value,omitempty" validate:"omitempty,max=120"`
}

// ListDevicesRequest carries list filters.
type ListDevicesRequest struct {
	TenantID string
	ClientID *int64
	Limit    int
	Offset   int
}
