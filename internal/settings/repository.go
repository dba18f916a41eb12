package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("settings not found")

type Repository interface {
	Get(ctx context.Context, tenantID string) (*Settings, error)
	Upsert(ctx context.Context, s Settings) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) Get(ctx context.Context, tenantID string) (*Settings, error) {
	const query = `
		SELECT tenant_id, business_name, address, phone, email, logo_url,
		       card_surcharge_pct, transfer_surcharge_pct, intake_checklist,
		       receipt_disclaimer, ticket_footer, print_format, updated_at
		FROM settings
		WHERE tenant_id = $1
	`
	var s Settings
	var checklist []byte
	err := r.db.QueryRow(ctx, query, tenantID).Scan(
		&s.TenantID, &s.BusinessName, &s.Address, &s.Phone, &s.Email, &s.LogoURL,
		&s.CardSurchargePct, &s.TransferSurchargePct, &checklist,
		&s.ReceiptDisclaimer, &s.TicketFooter, &s.PrintFormat, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if len(checklist) > 0 {
		if err := json.Unmarshal(checklist, &s.IntakeChecklist); err != nil {
			return nil, fmt.Errorf("decode checklist: %w", err)
		}
	}
	return &s, nil
}

func (r *repository) Upsert(ctx context.Context, s Settings) error {
	checklist, err := json.Marshal(s.IntakeChecklist)
	if err != nil {
		return fmt.Errorf("encode checklist: %w", err)
	}

	const query = `
		INSERT INTO settings (tenant_id, business_name, address, phone, email, logo_url,
		                      card_surcharge_pct, transfer_surcharge_pct, intake_checklist,
		                      receipt_disclaimer, ticket_footer, print_format, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (tenant_id) DO UPDATE SET
			business_name = EXCLUDED.business_name,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			email = EXCLUDED.email,
			logo_url = EXCLUDED.logo_url,
			card_surcharge_pct = EXCLUDED.card_surcharge_pct,
			transfer_surcharge_pct = EXCLUDED.transfer_surcharge_pct,
			intake_checklist = EXCLUDED.intake_checklist,
			receipt_disclaimer = EXCLUDED.receipt_disclaimer,
			ticket_footer = EXCLUDED.ticket_footer,
			print_format = EXCLUDED.print_format,
			updated_at = NOW()
	`
	_, err = r.db.Exec(ctx, query,
		s.TenantID, s.BusinessName, s.Address, s.Phone, s.Email, s.LogoURL,
		s.CardSurchargePct, s.TransferSurchargePct, checklist,
		s.ReceiptDisclaimer, s.TicketFooter, s.PrintFormat,
	)
	return err
}
