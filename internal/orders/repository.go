package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tallerpro/tallerpro/internal/devices"
	"github.com/tallerpro/tallerpro/internal/platform/db"
	"github.com/tallerpro/tallerpro/internal/platform/httpx"
)

// ErrNotFound wraps the shared sentinel so callers outside this package can
// match on httpx.ErrNotFound without importing orders.
var ErrNotFound = fmt.Errorf("order: %w", httpx.ErrNotFound)

// MonthCount is the number of orders created in one calendar month.
type MonthCount struct {
	Month time.Time
	Count int
}

type Repository interface {
	Get(ctx context.Context, tenantID string, id int64) (*Order, error)
	List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error)
	Recent(ctx context.Context, tenantID string, limit int) ([]Order, error)
	Create(ctx context.Context, order Order, newDevice *devices.Device) (int64, error)
	Update(ctx context.Context, tenantID string, id int64, updates map[string]interface{}) error
	StatusCounts(ctx context.Context, tenantID string) (map[string]int, error)
	CountCreatedByMonth(ctx context.Context, tenantID string, from, to time.Time) ([]MonthCount, error)
	OrderCosts(ctx context.Context, tenantID string, orderID int64) (estimated, final float64, err error)
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

const orderColumns = `id, tenant_id, client_id, device_id, status, problem, diagnosis, solution,
	technician_name, estimated_cost, final_cost, priority, created_at, estimated_date,
	completed_at, delivered_at, notes, intake_checklist`

func scanOrder(row pgx.Row) (Order, error) {
	var o Order
	var checklistJSON []byte
	err := row.Scan(
		&o.ID, &o.TenantID, &o.ClientID, &o.DeviceID, &o.Status, &o.Problem, &o.Diagnosis,
		&o.Solution, &o.TechnicianName, &o.EstimatedCost, &o.FinalCost, &o.Priority,
		&o.CreatedAt, &o.EstimatedDate, &o.CompletedAt, &o.DeliveredAt, &o.Notes, &checklistJSON,
	)
	if err != nil {
		return Order{}, err
	}
	if len(checklistJSON) > 0 {
		if err := json.Unmarshal(checklistJSON, &o.IntakeChecklist); err != nil {
			return Order{}, fmt.Errorf("unmarshal checklist: %w", err)
		}
	}
	return o, nil
}

func (r *repository) Get(ctx context.Context, tenantID string, id int64) (*Order, error) {
	query := fmt.Sprintf("SELECT %s FROM repair_orders WHERE tenant_id = $1 AND id = $2", orderColumns)
	o, err := scanOrder(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *repository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{req.TenantID}
	argPos := 2

	if req.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argPos))
		args = append(args, *req.Status)
		argPos++
	}
	if req.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argPos))
		args = append(args, *req.ClientID)
		argPos++
	}
	if req.Priority != nil {
		conditions = append(conditions, fmt.Sprintf("priority = $%d", argPos))
		args = append(args, *req.Priority)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM repair_orders %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM repair_orders
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, orderColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *repository) Recent(ctx context.Context, tenantID string, limit int) ([]Order, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM repair_orders
		WHERE tenant_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, orderColumns)

	rows, err := r.db.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Create inserts the order, registering the intake device first when one is
// supplied, all within a single transaction.
func (r *repository) Create(ctx context.Context, order Order, newDevice *devices.Device) (int64, error) {
	checklistJSON, err := json.Marshal(order.IntakeChecklist)
	if err != nil {
		return 0, fmt.Errorf("marshal checklist: %w", err)
	}

	var id int64
	err = db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		deviceID := order.DeviceID
		if newDevice != nil {
			deviceID, err = devices.InsertDevice(ctx, tx, *newDevice)
			if err != nil {
				return fmt.Errorf("insert intake device: %w", err)
			}
		}

		const insert = `
			INSERT INTO repair_orders (tenant_id, client_id, device_id, status, problem,
				technician_name, estimated_cost, priority, estimated_date, notes, intake_checklist)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id
		`
		return tx.QueryRow(ctx, insert,
			order.TenantID, order.ClientID, deviceID, order.Status, order.Problem,
			order.TechnicianName, order.EstimatedCost, order.Priority, order.EstimatedDate,
			order.Notes, checklistJSON,
		).Scan(&id)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, tenantID string, id int64, updates map[string]interface{}) error {
	query := "UPDATE repair_orders SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{
		"status", "problem", "diagnosis", "solution", "technician_name",
		"estimated_cost", "final_cost", "priority", "estimated_date", "notes",
		"completed_at", "delivered_at",
	} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE tenant_id = $%d AND id = $%d", argPos, argPos+1)
	args = append(args, tenantID, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) StatusCounts(ctx context.Context, tenantID string) (map[string]int, error) {
	const query = `
		SELECT status, COUNT(*)
		FROM repair_orders
		WHERE tenant_id = $1
		GROUP BY status
	`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

func (r *repository) CountCreatedByMonth(ctx context.Context, tenantID string, from, to time.Time) ([]MonthCount, error) {
	const query = `
		SELECT date_trunc('month', created_at) AS month, COUNT(*)
		FROM repair_orders
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at <= $3
		GROUP BY month
		ORDER BY month
	`
	rows, err := r.db.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MonthCount
	for rows.Next() {
		var mc MonthCount
		if err := rows.Scan(&mc.Month, &mc.Count); err != nil {
			return nil, err
		}
		out = append(out, mc)
	}
	return out, rows.Err()
}

func (r *repository) OrderCosts(ctx context.Context, tenantID string, orderID int64) (float64, float64, error) {
	const query = "SELECT estimated_cost, final_cost FROM repair_orders WHERE tenant_id = $1 AND id = $2"
	var estimated, final float64
	err := r.db.QueryRow(ctx, query, tenantID, orderID).Scan(&estimated, &final)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, err
	}
	return estimated, final, nil
}
