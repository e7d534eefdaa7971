package review

import (
	"context"
	"errors"
	"strings"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/order"
	"agrimart-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Create(ctx context.Context, userID string, input CreateReviewInput) (*Review, error)
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)
}

type service struct {
	repo   Repository
	orders order.Service
}

func NewService(repo Repository, orders order.Service) Service {
	return &service{repo: repo, orders: orders}
}

// Create attaches a review to a purchased product. The order must belong
// to the caller and be completed, the product must be one of its line
// items, and each line item can be reviewed once.
func (s *service) Create(ctx context.Context, userID string, input CreateReviewInput) (*Review, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "CreateReview"),
		zap.String("order_id", input.OrderID),
		zap.String("product_id", input.ProductID),
	)

	if input.Rating < 1 || input.Rating > 5 {
		return nil, ErrInvalidRating
	}
	if !utils.IsValidID(input.OrderID) || !utils.IsValidID(input.ProductID) {
		return nil, ErrOrderNotEligible
	}

	o, err := s.orders.GetByID(ctx, input.OrderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			return nil, ErrOrderNotEligible
		}
		return nil, err
	}

	if o.CustomerID != userID || !strings.EqualFold(string(o.Status), string(order.StatusCompleted)) {
		log.Warn("order not eligible for review",
			zap.String("status", string(o.Status)),
		)
		return nil, ErrOrderNotEligible
	}

	var matched *order.Item
	for i := range o.Items {
		if o.Items[i].ProductID == input.ProductID {
			matched = &o.Items[i]
			break
		}
	}
	if matched == nil {
		return nil, ErrProductNotInOrder
	}
	if matched.IsReviewed {
		return nil, ErrAlreadyReviewed
	}

	rev := &Review{
		ID:        utils.NewID(),
		UserID:    userID,
		ProductID: input.ProductID,
		OrderID:   input.OrderID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}

	if err := s.repo.Create(ctx, rev); err != nil {
		log.Error("failed to create review", zap.Error(err))
		return nil, err
	}

	log.Info("review created", zap.String("review_id", rev.ID))

	return rev, nil
}

func (s *service) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	if !utils.IsValidID(productID) {
		return nil, errors.New("invalid product id")
	}
	return s.repo.ListByProduct(ctx, productID)
}
