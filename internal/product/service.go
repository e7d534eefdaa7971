package product

import (
	"context"
	"errors"
	"strings"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateProductInput) (*Product, error)
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*Product, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*Product, error)
	SearchByName(ctx context.Context, keyword string) ([]*Product, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input CreateProductInput) (*Product, error) {
	log := logger.FromCtx(ctx)

	if strings.TrimSpace(input.Name) == "" {
		return nil, errors.New("name cannot be empty")
	}
	if input.Price < 0 || input.Stock < 0 {
		return nil, errors.New("price and stock must not be negative")
	}
	if !utils.IsValidID(input.CategoryID) {
		return nil, errors.New("invalid category id")
	}

	supplierID, ok := utils.GetUserIDFromContext(ctx)
	if !ok {
		return nil, errors.New("unauthorized: supplier not found in context")
	}

	p := &Product{
		ID:          utils.NewID(),
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Stock:       input.Stock,
		Unit:        input.Unit,
		ImageURL:    input.ImageURL,
		SupplierID:  supplierID,
		CategoryID:  input.CategoryID,
		IsActive:    true,
		Status:      StatusPending,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("supplier_id", supplierID),
	)

	return p, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	if !utils.IsValidID(id) {
		return nil, ErrNotFound
	}
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, errors.New("name cannot be empty")
	}
	if input.Status != nil {
		switch *input.Status {
		case StatusPending, StatusApproved, StatusRejected:
		default:
			return nil, errors.New("invalid product status")
		}
	}

	return s.repo.Update(ctx, id, input)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if !utils.IsValidID(id) {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	if !utils.IsValidID(id) {
		return nil, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context) ([]*Product, error) {
	return s.repo.List(ctx)
}

func (s *service) ListByCategory(ctx context.Context, categoryID string) ([]*Product, error) {
	return s.repo.ListByCategory(ctx, strings.TrimSpace(categoryID))
}

func (s *service) ListBySupplier(ctx context.Context, supplierID string) ([]*Product, error) {
	return s.repo.ListBySupplier(ctx, supplierID)
}

func (s *service) SearchByName(ctx context.Context, keyword string) ([]*Product, error) {
	return s.repo.SearchByName(ctx, keyword)
}
