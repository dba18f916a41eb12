package clients

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("client not found")

type Repository interface {
	Get(ctx context.Context, tenantID string, id int64) (*Client, error)
	List(ctx context.Context, req ListClientsRequest) ([]Client, int, error)
	Create(ctx context.Context, client Client) (int64, error)
	Update(ctx context.Context, tenantID string, id int64, updates map[string]interface{}) error
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

const clientColumns = "id, tenant_id, name, phone, email, address, notes, created_at, updated_at"

func (r *repository) Get(ctx context.Context, tenantID string, id int64) (*Client, error) {
	query := fmt.Sprintf("SELECT %s FROM clients WHERE tenant_id = $1 AND id = $2", clientColumns)
	var c Client
	err := r.db.QueryRow(ctx, query, tenantID, id).Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Notes,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) List(ctx context.Context, req ListClientsRequest) ([]Client, int, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{req.TenantID}
	argPos := 2

	if req.Search != nil && *req.Search != "" {
		pattern := "%" + *req.Search + "%"
		normalized := "%" + NormalizeSearch(*req.Search) + "%"
		conditions = append(conditions, fmt.Sprintf(
			"(name ILIKE $%d OR phone ILIKE $%d OR email ILIKE $%d OR name ILIKE $%d)",
			argPos, argPos, argPos, argPos+1))
		args = append(args, pattern, normalized)
		argPos += 2
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM clients %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM clients
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, clientColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Client
	for rows.Next() {
		var c Client
		if err := rows.Scan(
			&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, err
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, client Client) (int64, error) {
	const query = `
		INSERT INTO clients (tenant_id, name, phone, email, address, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		client.TenantID, client.Name, client.Phone, client.Email, client.Address, client.Notes,
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, tenantID string, id int64, updates map[string]interface{}) error {
	query := "UPDATE clients SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"name", "phone", "email", "address", "notes"} {
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
