package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/tallerpro/tallerpro/internal/payments"
)

var ErrChecklistTooLong = errors.New("intake checklist exceeds option cap")

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns the tenant's settings, falling back to defaults before the
// first save.
func (s *Service) Get(ctx context.Context, tenantID string) (*Settings, error) {
	stored, err := s.repo.Get(ctx, tenantID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			defaults := Defaults(tenantID)
			return &defaults, nil
		}
		return nil, err
	}
	return stored, nil
}

func (s *Service) Save(ctx context.Context, tenantID string, req SaveSettingsRequest) (*Settings, error) {
	if len(req.IntakeChecklist) > MaxChecklistOptions {
		return nil, ErrChecklistTooLong
	}

	next := Settings{
		TenantID:             tenantID,
		BusinessName:         req.BusinessName,
		Address:              req.Address,
		Phone:                req.Phone,
		Email:                req.Email,
		LogoURL:              req.LogoURL,
		CardSurchargePct:     req.CardSurchargePct,
		TransferSurchargePct: req.TransferSurchargePct,
		IntakeChecklist:      req.IntakeChecklist,
		ReceiptDisclaimer:    req.ReceiptDisclaimer,
		TicketFooter:         req.TicketFooter,
		PrintFormat:          req.PrintFormat,
	}
	if next.IntakeChecklist == nil {
		next.IntakeChecklist = []string{}
	}
	if next.PrintFormat == "" {
		next.PrintFormat = PrintFormatTicket
	}

	if err := s.repo.Upsert(ctx, next); err != nil {
		return nil, fmt.Errorf("save settings: %w", err)
	}
	return s.repo.Get(ctx, tenantID)
}

// SurchargeConfig exposes the tenant's surcharge percentages to the payment
// flow. Defaults apply when nothing has been saved yet.
func (s *Service) SurchargeConfig(ctx context.Context, tenantID string) (payments.SurchargeConfig, error) {
	stored, err := s.Get(ctx, tenantID)
	if err != nil {
		return payments.SurchargeConfig{}, err
	}
	return payments.SurchargeConfig{
		CardPct:     stored.CardSurchargePct,
		TransferPct: stored.TransferSurchargePct,
	}, nil
}
