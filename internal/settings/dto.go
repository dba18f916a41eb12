package settings

// SaveSettingsRequest is the payload for POST /api/settings. The whole
// singleton is replaced on save.
type SaveSettingsRequest struct {
	BusinessName         string   `json:"business_name" validate:"required,max=200"`
	Address              *string  `json:"address,omitempty" validate:"omitempty,max=300"`
	Phone                *string  `json:"phone,omitempty" validate:"omitempty,max=40"`
	Email                *string  `json:"email,omitempty" validate:"omitempty,email"`
	LogoURL              *string  `json:"logo_url,omitempty" validate:"omitempty,url"`
	CardSurchargePct     float64  `json:"card_surcharge_pct" validate:"gte=0,lte=100"`
	TransferSurchargePct float64  `json:"transfer_surcharge_pct" validate:"gte=0,lte=100"`
	IntakeChecklist      []string `json:"intake_checklist" validate:"max=12,dive,required,max=80"`
	ReceiptDisclaimer    *string  `json:"receipt_disclaimer,omitempty" validate:"omitempty,max=500"`
	TicketFooter         *string  `json:"ticket_footer,omitempty" validate:"omitempty,max=300"`
	PrintFormat          string   `json:"print_format" validate:"omitempty,oneof=a4 ticket"`
}
