package clients

// CreateClientRequest is the payload for POST /api/clients.
type CreateClientRequest struct {
	Name    string  `json:"name" validate:"required,min=2,max=120"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=250"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// UpdateClientRequest is the payload for PATCH /api/clients/{id}.
// Nil fields are left untouched.
type UpdateClientRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=250"`
	Notes   *string `json:"notes,omitempty" validate:"omitempty,max=2000"`
}

// ListClientsRequest carries list filters.
type ListClientsRequest struct {
	TenantID string
	Search   *string
	Limit    int
	Offset   int
}
