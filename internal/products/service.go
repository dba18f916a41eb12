package products

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

func (s *Service) Create(ctx context.Context, tenantID string, req CreateProductRequest) (*Product, error) {
	product := Product{
		TenantID:          tenantID,
		Name:              req.Name,
		SKU:               req.SKU,
		Category:          req.Category,
		Cost:              req.Cost,
		Price:             req.Price,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		Description:       req.Description,
	}

	id, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Update(ctx context.Context, tenantID string, id int64, req UpdateProductRequest) (*Product, error) {
	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.SKU != nil {
		updates["sku"] = *req.SKU
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Cost != nil {
		updates["cost"] = *req.Cost
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.Quantity != nil {
		updates["quantity"] = *req.Quantity
	}
	if req.LowStockThreshold != nil {
		updates["low_stock_threshold"] = *req.LowStockThreshold
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, tenantID, id, updates); err != nil {
			return nil, fmt.Errorf("update product: %w", err)
		}
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) Get(ctx context.Context, tenantID string, id int64) (*Product, error) {
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) List(ctx context.Context, req ListProductsRequest) ([]Product, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, tenantID string, id int64) error {
	return s.repo.Delete(ctx, tenantID, id)
}

func (s *Service) Restock(ctx context.Context, tenantID string, id int64, req RestockRequest) (*Product, error) {
	if err := s.repo.Restock(ctx, tenantID, id, req.Quantity); err != nil {
		return nil, fmt.Errorf("restock product: %w", err)
	}
	return s.repo.Get(ctx, tenantID, id)
}

func (s *Service) LowStock(ctx context.Context, tenantID string) ([]Product, error) {
	return s.repo.LowStock(ctx, tenantID)
}
