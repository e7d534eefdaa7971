package review

import (
	"context"
	"database/sql"
	"strings"

	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	// Create inserts the review and flags the matching line item as
	// reviewed in one transaction. The UNIQUE(order_id, product_id)
	// constraint backs the one-review-per-item rule.
	Create(ctx context.Context, rev *Review) error
	ListByProduct(ctx context.Context, productID string) ([]*Review, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, rev *Review) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateReview"),
		zap.String("order_id", rev.OrderID),
		zap.String("product_id", rev.ProductID),
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
		INSERT INTO reviews (id, user_id, product_id, order_id, rating, comment)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`, rev.ID, rev.UserID, rev.ProductID, rev.OrderID, rev.Rating, rev.Comment).Scan(&rev.CreatedAt)
	if err != nil {
		if strings.Contains(err.Error(), "reviews_order_id_product_id_key") {
			return ErrAlreadyReviewed
		}
		log.Error("failed to insert review", zap.Error(err))
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE order_items
		SET is_reviewed = TRUE
		WHERE order_id = $1 AND product_id = $2
	`, rev.OrderID, rev.ProductID)
	if err != nil {
		log.Error("failed to flag line item as reviewed", zap.Error(err))
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit review transaction", zap.Error(err))
		return err
	}

	committed = true
	return nil
}

func (r *repository) ListByProduct(ctx context.Context, productID string) ([]*Review, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT rv.id, rv.user_id, rv.product_id, rv.order_id,
		       rv.rating, rv.comment, rv.created_at,
		       u.name, u.avatar_url
		FROM reviews rv
		JOIN users u ON u.id = rv.user_id
		WHERE rv.product_id = $1
		ORDER BY rv.created_at DESC
	`, productID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []*Review
	for rows.Next() {
		var rev Review
		if err := rows.Scan(
			&rev.ID, &rev.UserID, &rev.ProductID, &rev.OrderID,
			&rev.Rating, &rev.Comment, &rev.CreatedAt,
			&rev.UserName, &rev.UserAvatar,
		); err != nil {
			return nil, err
		}
		reviews = append(reviews, &rev)
	}

	return reviews, rows.Err()
}
