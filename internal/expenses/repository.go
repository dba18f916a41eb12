package expenses

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("expense not found")

type Repository interface {
	Get(ctx context.Context, tenantID string, id int64) (*Expense, error)
	List(ctx context.Context, req ListExpensesRequest) ([]Expense, error)
	Create(ctx context.Context, expense Expense) (int64, error)
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

const expenseColumns = "id, tenant_id, category, description, amount, method, date, notes, created_at"

func scanExpense(row pgx.Row) (Expense, error) {
	var e Expense
	err := row.Scan(
		&e.ID, &e.TenantID, &e.Category, &e.Description, &e.Amount,
		&e.Method, &e.Date, &e.Notes, &e.CreatedAt,
	)
	return e, err
}

func (r *repository) Get(ctx context.Context, tenantID string, id int64) (*Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expenses WHERE tenant_id = $1 AND id = $2", expenseColumns)
	e, err := scanExpense(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *repository) List(ctx context.Context, req ListExpensesRequest) ([]Expense, error) {
	query := fmt.Sprintf("SELECT %s FROM expenses WHERE tenant_id = $1", expenseColumns)
	args := []interface{}{req.TenantID}
	argPos := 2

	if req.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", argPos)
		args = append(args, *req.From)
		argPos++
	}
	if req.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", argPos)
		args = append(args, *req.To)
		argPos++
	}
	if req.Category != nil && *req.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argPos)
		args = append(args, *req.Category)
		argPos++
	}

	query += fmt.Sprintf(" ORDER BY date DESC, id DESC LIMIT $%d OFFSET $%d", argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, expense Expense) (int64, error) {
	const query = `
		INSERT INTO expenses (tenant_id, category, description, amount, method, date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query,
		expense.TenantID, expense.Category, expense.Description, expense.Amount,
		expense.Method, expense.Date, expense.Notes,
	).Scan(&id)
	return id, err
}
