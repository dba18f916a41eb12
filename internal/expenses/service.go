package expenses

import (
	"context"
	"fmt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenantID string, req CreateExpenseRequest) (*Expense, error) {
	expense := Expense{
		TenantID:    tenantID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Method:      req.Method,
		Date:        req.Date,
		Notes:       req.Notes,
	}

	id, err := s.repo.Create(ctx, expense)
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, req ListExpensesRequest) ([]Expense, error) {
	return s.repo.List(ctx, req)
}
