package payment

import (
	"context"
	"encoding/json"
	"errors"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/order"

	"go.uber.org/zap"
)

type Service interface {
	// Reconcile matches an inbound bank-transfer notification to a
	// pending order and marks it paid when the amount agrees. Returns
	// order.ErrOrderNotFound when the memo references an unknown order.
	Reconcile(ctx context.Context, payload WebhookPayload) (*Result, error)
}

type service struct {
	repo   Repository
	orders order.Service
}

func NewService(repo Repository, orders order.Service) Service {
	return &service{repo: repo, orders: orders}
}

func (s *service) Reconcile(ctx context.Context, payload WebhookPayload) (*Result, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "Reconcile"),
		zap.Int64("gateway_txn_id", payload.ID),
		zap.String("transfer_type", payload.TransferType),
	)

	if payload.TransferType != "in" {
		log.Info("ignoring outbound transfer")
		return &Result{Message: "not an inbound transfer, ignored"}, nil
	}

	orderID, ok := ExtractOrderID(payload.Content)
	if !ok {
		log.Warn("no order reference in transfer content",
			zap.String("content", payload.Content),
		)
		return &Result{Message: "no order reference found in transfer content"}, nil
	}

	log = log.With(zap.String("order_id", orderID))

	o, err := s.orders.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			log.Warn("referenced order does not exist")
		} else {
			log.Error("failed to load order", zap.Error(err))
		}
		return nil, err
	}

	seen, err := s.repo.HasEvent(ctx, payload.ID)
	if err != nil {
		return nil, err
	}
	if seen {
		log.Info("duplicate notification, already processed")
		return &Result{Message: "notification already processed", OrderID: orderID}, nil
	}

	if o.IsPaid {
		log.Info("order already paid")
		return &Result{Message: "order already paid", OrderID: orderID}, nil
	}

	if payload.TransferAmount != o.TotalAmount {
		log.Warn("transfer amount mismatch",
			zap.Int64("transferred", payload.TransferAmount),
			zap.Int64("expected", o.TotalAmount),
		)
		return &Result{Message: "transfer amount does not match order total", OrderID: orderID}, nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ev := &Event{
		GatewayTxnID: payload.ID,
		OrderID:      orderID,
		Amount:       payload.TransferAmount,
		Payload:      raw,
	}

	if err := s.repo.RecordAndMarkPaid(ctx, ev); err != nil {
		if errors.Is(err, ErrDuplicateEvent) {
			// Lost a race with an identical delivery; the order is paid.
			log.Info("duplicate notification, lost insert race")
			return &Result{Message: "notification already processed", OrderID: orderID}, nil
		}
		log.Error("failed to record payment", zap.Error(err))
		return nil, err
	}

	log.Info("payment reconciled", zap.Int64("amount", ev.Amount))

	return &Result{Processed: true, OrderID: orderID}, nil
}
