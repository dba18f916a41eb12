package devices

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("device not found")

type Repository interface {
	Get(ctx context.Context, tenantID string, id int64) (*Device, error)
	List(ctx context.Context, req ListDevicesRequest) ([]Device, error)
	Create(ctx context.Context, device Device) (int64, error)
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

const deviceColumns = "id, tenant_id, client_id, brand, model, imei, serial_number, color, condition, lock_type, lock_value, created_at"

func scanDevice(row pgx.Row) (Device, error) {
	var d Device
	err := row.Scan(
		&d.ID, &d.TenantID, &d.ClientID, &d.Brand, &d.Model, &d.IMEI, &d.SerialNumber,
		&d.Color, &d.Condition, &d.LockType, &d.LockValue, &d.CreatedAt,
	)
	return d, err
}

func (r *repository) Get(ctx context.Context, tenantID string, id int64) (*Device, error) {
	query := fmt.Sprintf("SELECT %s FROM devices WHERE tenant_id = $1 AND id = $2", deviceColumns)
	d, err := scanDevice(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *repository) List(ctx context.Context, req ListDevicesRequest) ([]Device, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{req.TenantID}
	argPos := 2

	if req.ClientID != nil {
		conditions = append(conditions, fmt.Sprintf("client_id = $%d", argPos))
		args = append(args, *req.ClientID)
		argPos++
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM devices
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d
	`, deviceColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, device Device) (int64, error) {
	return InsertDevice(ctx, r.db, device)
}

// InsertDevice writes a device row using any executor, so order intake can
// register a device inside its own transaction.
func InsertDevice(ctx context.Context, db interface {
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}, device Device) (int64, error) {
	const query = `
		INSERT INTO devices (tenant_id, client_id, brand, model, imei, serial_number, color, condition, lock_type, lock_value)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	lockType := device.LockType
	if lockType == "" {
		lockType = LockNone
	}
	var id int64
	err := db.QueryRow(ctx, query,
		device.TenantID, device.ClientID, device.Brand, device.Model, device.IMEI,
		device.SerialNumber, device.Color, device.Condition, lockType, device.LockValue,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
