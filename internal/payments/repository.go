package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallerpro/tallerpro/internal/platform/db"
)

var (
	ErrNotFound          = errors.New("payment not found")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// StockDecrement asks the repository to subtract sold quantity from a
// product inside the same transaction that records the payment.
type StockDecrement struct {
	ProductID int64
	Quantity  int
}

type Repository interface {
	Create(ctx context.Context, payment Payment, decrements []StockDecrement) (int64, error)
	Get(ctx context.Context, tenantID string, id int64) (*Payment, error)
	List(ctx context.Context, req ListPaymentsRequest) ([]Payment, error)
	ListByOrder(ctx context.Context, tenantID string, orderID int64) ([]Payment, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

const paymentColumns = "id, tenant_id, order_id, receipt_number, amount, method, date, notes, items, created_at"

// Create records the payment and applies stock decrements atomically. A
// product line without stock rolls the whole payment back.
func (r *repository) Create(ctx context.Context, payment Payment, decrements []StockDecrement) (int64, error) {
	itemsJSON, err := json.Marshal(payment.Items)
	if err != nil {
		return 0, fmt.Errorf("marshal payment items: %w", err)
	}

	var id int64
	err = db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		const insert = `
			INSERT INTO payments (tenant_id, order_id, receipt_number, amount, method, date, notes, items)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id
		`
		if err := tx.QueryRow(ctx, insert,
			payment.TenantID, payment.OrderID, payment.ReceiptNumber, payment.Amount,
			payment.Method, payment.Date, payment.Notes, itemsJSON,
		).Scan(&id); err != nil {
			return err
		}

		for _, dec := range decrements {
			const update = `
				UPDATE products
				SET quantity = quantity - $1, updated_at = NOW()
				WHERE tenant_id = $2 AND id = $3 AND quantity >= $1
			`
			tag, err := tx.Exec(ctx, update, dec.Quantity, payment.TenantID, dec.ProductID)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return fmt.Errorf("%w: product %d", ErrInsufficientStock, dec.ProductID)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func scanPayment(row pgx.Row) (Payment, error) {
	var p Payment
	var itemsJSON []byte
	err := row.Scan(
		&p.ID, &p.TenantID, &p.OrderID, &p.ReceiptNumber, &p.Amount, &p.Method,
		&p.Date, &p.Notes, &itemsJSON, &p.CreatedAt,
	)
	if err != nil {
		return Payment{}, err
	}
	if len(itemsJSON) > 0 {
		if err := json.Unmarshal(itemsJSON, &p.Items); err != nil {
			return Payment{}, fmt.Errorf("unmarshal payment items: %w", err)
		}
	}
	return p, nil
}

func (r *repository) Get(ctx context.Context, tenantID string, id int64) (*Payment, error) {
	query := fmt.Sprintf("SELECT %s FROM payments WHERE tenant_id = $1 AND id = $2", paymentColumns)
	p, err := scanPayment(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, req ListPaymentsRequest) ([]Payment, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{req.TenantID}
	argPos := 2

	if req.OrderID != nil {
		conditions = append(conditions, fmt.Sprintf("order_id = $%d", argPos))
		args = append(args, *req.OrderID)
		argPos++
	}
	if req.From != nil {
		conditions = append(conditions, fmt.Sprintf("date >= $%d", argPos))
		args = append(args, *req.From)
		argPos++
	}
	if req.To != nil {
		conditions = append(conditions, fmt.Sprintf("date <= $%d", argPos))
		args = append(args, *req.To)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	limitClause := ""
	if req.Limit > 0 {
		limitClause = fmt.Sprintf("LIMIT $%d OFFSET $%d", argPos, argPos+1)
		args = append(args, req.Limit, req.Offset)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM payments
		%s
		ORDER BY date DESC, id DESC
		%s
	`, paymentColumns, whereClause, limitClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) ListByOrder(ctx context.Context, tenantID string, orderID int64) ([]Payment, error) {
	return r.List(ctx, ListPaymentsRequest{TenantID: tenantID, OrderID: &orderID})
}
