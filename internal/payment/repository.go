package payment

import (
	"context"
	"database/sql"
	"errors"

	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

var ErrDuplicateEvent = errors.New("payment event already processed")

type Repository interface {
	HasEvent(ctx context.Context, gatewayTxnID int64) (bool, error)

	// RecordAndMarkPaid stores the event and flips the order to paid in
	// one transaction. A conflicting gateway transaction id yields
	// ErrDuplicateEvent and leaves the order untouched.
	RecordAndMarkPaid(ctx context.Context, ev *Event) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) HasEvent(ctx context.Context, gatewayTxnID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM payment_events WHERE gateway_txn_id = $1)
	`, gatewayTxnID).Scan(&exists)
	return exists, err
}

func (r *repository) RecordAndMarkPaid(ctx context.Context, ev *Event) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "RecordAndMarkPaid"),
		zap.Int64("gateway_txn_id", ev.GatewayTxnID),
		zap.String("order_id", ev.OrderID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("failed to begin transaction", zap.Error(err))
		return err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO payment_events (gateway_txn_id, order_id, amount, payload)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (gateway_txn_id) DO NOTHING
		RETURNING id, received_at
	`, ev.GatewayTxnID, ev.OrderID, ev.Amount, ev.Payload).Scan(&ev.ID, &ev.ReceivedAt)

	if errors.Is(err, sql.ErrNoRows) {
		// A concurrent delivery of the same notification won the insert.
		return ErrDuplicateEvent
	}
	if err != nil {
		log.Error("failed to insert payment event", zap.Error(err))
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE orders
		SET is_paid = TRUE, status = 'paid', updated_at = NOW()
		WHERE id = $1
	`, ev.OrderID)
	if err != nil {
		log.Error("failed to mark order paid", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit payment transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order marked as paid")

	return nil
}
