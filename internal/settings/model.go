package settings

import "time"

// MaxChecklistOptions caps the configurable intake checklist length.
const MaxChecklistOptions = 12

// Receipt layouts the print views understand.
const (
	PrintFormatA4     = "a4"
	PrintFormatTicket = "ticket"
)

// Settings is the per-tenant configuration singleton.
type Settings struct {
	TenantID             string    `json:"-"`
	BusinessName         string    `json:"business_name"`
	Address              *string   `json:"address,omitempty"`
	Phone                *string   `json:"phone,omitempty"`
	Email                *string   `json:"email,omitempty"`
	LogoURL              *string   `json:"logo_url,omitempty"`
	CardSurchargePct     float64   `json:"card_surcharge_pct"`
	TransferSurchargePct float64   `json:"transfer_surcharge_pct"`
	IntakeChecklist      []string  `json:"intake_checklist"`
	ReceiptDisclaimer    *string   `json:"receipt_disclaimer,omitempty"`
	TicketFooter         *string   `json:"ticket_footer,omitempty"`
	PrintFormat          string    `json:"print_format"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// Defaults returns the settings served before a tenant saves anything.
func Defaults(tenantID string) Settings {
	return Settings{
		TenantID:        tenantID,
		BusinessName:    "Mi Taller",
		IntakeChecklist: []string{"enciende", "pantalla", "bateria", "botones"},
		PrintFormat:     PrintFormatTicket,
	}
}
