package products

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound      = errors.New("product not found")
	ErrDuplicateSKU  = errors.New("sku already exists")
	ErrStockNegative = errors.New("stock adjustment below zero")
)

const uniqueViolation = "23505"

type Repository interface {
	Get(ctx context.Context, tenantID string, id int64) (*Product, error)
	List(ctx context.Context, req ListProductsRequest) ([]Product, int, error)
	Create(ctx context.Context, product Product) (int64, error)
	Update(ctx context.Context, tenantID string, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, tenantID string, id int64) error
	Restock(ctx context.Context, tenantID string, id int64, quantity int) error
	LowStock(ctx context.Context, tenantID string) ([]Product, error)
	Tenants(ctx context.Context) ([]string, error)
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

const productColumns = "id, tenant_id, name, sku, category, cost, price, quantity, low_stock_threshold, description, created_at, updated_at"

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Name, &p.SKU, &p.Category, &p.Cost, &p.Price,
		&p.Quantity, &p.LowStockThreshold, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *repository) Get(ctx context.Context, tenantID string, id int64) (*Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE tenant_id = $1 AND id = $2", productColumns)
	p, err := scanProduct(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) List(ctx context.Context, req ListProductsRequest) ([]Product, int, error) {
	conditions := []string{"tenant_id = $1"}
	args := []interface{}{req.TenantID}
	argPos := 2

	if req.Search != nil && *req.Search != "" {
		pattern := "%" + *req.Search + "%"
		conditions = append(conditions, fmt.Sprintf("(name ILIKE $%d OR sku ILIKE $%d)", argPos, argPos))
		args = append(args, pattern)
		argPos++
	}
	if req.Category != nil && *req.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", argPos))
		args = append(args, *req.Category)
		argPos++
	}
	if req.LowStock {
		conditions = append(conditions, "quantity <= low_stock_threshold")
	}

	whereClause := "WHERE " + conditions[0]
	for i := 1; i < len(conditions); i++ {
		whereClause += " AND " + conditions[i]
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM products %s", whereClause)
	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY name
		LIMIT $%d OFFSET $%d
	`, productColumns, whereClause, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, product Product) (int64, error) {
	const query = `
		INSERT INTO products (tenant_id, name, sku, category, cost, price, quantity, low_stock_threshold, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		product.TenantID, product.Name, product.SKU, product.Category, product.Cost,
		product.Price, product.Quantity, product.LowStockThreshold, product.Description,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, ErrDuplicateSKU
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, tenantID string, id int64, updates map[string]interface{}) error {
	query := "UPDATE products SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"name", "sku", "category", "cost", "price", "quantity", "low_stock_threshold", "description"} {
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
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrDuplicateSKU
		}
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, tenantID string, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM products WHERE tenant_id = $1 AND id = $2", tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Restock(ctx context.Context, tenantID string, id int64, quantity int) error {
	const query = `
		UPDATE products
		SET quantity = quantity + $1, updated_at = NOW()
		WHERE tenant_id = $2 AND id = $3 AND quantity + $1 >= 0
	`
	tag, err := r.db.Exec(ctx, query, quantity, tenantID, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		if _, getErr := r.Get(ctx, tenantID, id); getErr != nil {
			return getErr
		}
		return ErrStockNegative
	}
	return nil
}

func (r *repository) LowStock(ctx context.Context, tenantID string) ([]Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE tenant_id = $1 AND quantity <= low_stock_threshold
		ORDER BY name
	`, productColumns)

	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Tenants(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, "SELECT DISTINCT tenant_id FROM products")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var tenant string
		if err := rows.Scan(&tenant); err != nil {
			return nil, err
		}
		out = append(out, tenant)
	}
	return out, rows.Err()
}
