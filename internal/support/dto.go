package support

// SupportRequest is the payload for POST /api/support.
type SupportRequest struct {
	Subject string `json:"subject" validate:"required,max=200"`
	Message string `json:"message" validate:"required,max=5000"`
	ReplyTo string `json:"reply_to,omitempty" validate:"omitempty,email"`
}
