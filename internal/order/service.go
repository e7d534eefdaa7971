package order

import (
	"context"
	"errors"
	"time"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*Order, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	GetAll(ctx context.Context) ([]*Order, error)
	GetByCustomer(ctx context.Context, customerID string) ([]*Order, error)
	GetBySupplier(ctx context.Context, supplierID string) ([]*Order, error)
	UpdateStatus(ctx context.Context, id string, status Status) error

	RevenueBySupplier(ctx context.Context, supplierID string, from, to *time.Time) (*SupplierRevenue, error)
	DailyRevenue(ctx context.Context, supplierID *string, from, to *time.Time) ([]DailyRevenue, error)
	TopProducts(ctx context.Context, limit int) ([]ProductSales, error)
	CountByStatus(ctx context.Context) ([]StatusCount, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Create validates the cart, recomputes the total server-side and persists
// order plus line items. Stock checks and deductions happen atomically in
// the repository transaction.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*Order, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateOrder"),
		zap.String("customer_id", input.CustomerID),
		zap.Int("item_count", len(input.Items)),
	)

	if len(input.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	items := make([]Item, 0, len(input.Items))
	var total int64

	for _, in := range input.Items {
		if in.Quantity <= 0 {
			return nil, errors.New("quantity must be greater than zero")
		}
		if in.Price < 0 {
			return nil, errors.New("price must not be negative")
		}
		if !utils.IsValidID(in.ProductID) || !utils.IsValidID(in.SupplierID) {
			return nil, errors.New("invalid product or supplier id")
		}

		total += int64(in.Quantity) * in.Price
		items = append(items, Item{
			ProductID:  in.ProductID,
			SupplierID: in.SupplierID,
			Quantity:   in.Quantity,
			Price:      in.Price,
		})
	}

	// The client sends its own total; a disagreement means stale prices
	// or a tampered payload, either way the order is rejected.
	if input.TotalAmount != 0 && input.TotalAmount != total {
		log.Warn("total mismatch",
			zap.Int64("client_total", input.TotalAmount),
			zap.Int64("computed_total", total),
		)
		return nil, ErrTotalMismatch
	}

	o := &Order{
		ID:              utils.NewID(),
		CustomerID:      input.CustomerID,
		Status:          StatusPlaced,
		TotalAmount:     total,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   input.PaymentMethod,
		Items:           items,
	}

	if err := s.repo.Create(ctx, o); err != nil {
		log.Error("failed to create order", zap.Error(err))
		return nil, err
	}

	log.Info("order created",
		zap.String("order_id", o.ID),
		zap.Int64("total_amount", o.TotalAmount),
	)

	return o, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Order, error) {
	if !utils.IsValidID(id) {
		return nil, ErrOrderNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetAll(ctx context.Context) ([]*Order, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return s.repo.GetByCustomer(ctx, customerID)
}

func (s *service) GetBySupplier(ctx context.Context, supplierID string) ([]*Order, error) {
	return s.repo.GetBySupplier(ctx, supplierID)
}

func (s *service) UpdateStatus(ctx context.Context, id string, status Status) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *service) RevenueBySupplier(ctx context.Context, supplierID string, from, to *time.Time) (*SupplierRevenue, error) {
	return s.repo.RevenueBySupplier(ctx, supplierID, from, to)
}

func (s *service) DailyRevenue(ctx context.Context, supplierID *string, from, to *time.Time) ([]DailyRevenue, error) {
	return s.repo.DailyRevenue(ctx, supplierID, from, to)
}

func (s *service) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.repo.TopProducts(ctx, limit)
}

func (s *service) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	return s.repo.CountByStatus(ctx)
}
