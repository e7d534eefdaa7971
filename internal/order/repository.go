package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"agrimart-be/internal/logger"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, o *Order) error
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

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// Create persists the order and its line items after decrementing stock
// for every item. The whole operation runs in one transaction: a stock
// shortfall on any item rolls back every earlier decrement.
func (r *repository) Create(ctx context.Context, o *Order) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "CreateOrder"),
		zap.String("order_id", o.ID),
		zap.Int("item_count", len(o.Items)),
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

	// Conditional decrement: the WHERE guard makes check-and-deduct a
	// single atomic statement, so concurrent orders can never drive
	// stock negative.
	for _, item := range o.Items {
		res, err := tx.ExecContext(ctx, `
			UPDATE products
			SET stock = stock - $1, updated_at = NOW()
			WHERE id = $2 AND stock >= $1
		`, item.Quantity, item.ProductID)
		if err != nil {
			log.Error("failed to deduct stock",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}

		affected, _ := res.RowsAffected()
		if affected == 0 {
			var name string
			err := tx.QueryRowContext(ctx,
				`SELECT name FROM products WHERE id = $1`,
				item.ProductID,
			).Scan(&name)

			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			if err != nil {
				return err
			}
			return fmt.Errorf("%w: %s", ErrInsufficientStock, name)
		}
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO orders (
			id, customer_id, status, is_paid,
			total_amount, shipping_address, payment_method
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`,
		o.ID, o.CustomerID, o.Status, o.IsPaid,
		o.TotalAmount, o.ShippingAddress, o.PaymentMethod,
	).Scan(&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		log.Error("failed to insert order", zap.Error(err))
		return err
	}

	for i := range o.Items {
		item := &o.Items[i]
		item.OrderID = o.ID

		err = tx.QueryRowContext(ctx, `
			INSERT INTO order_items (order_id, product_id, supplier_id, quantity, price)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`, o.ID, item.ProductID, item.SupplierID, item.Quantity, item.Price).Scan(&item.ID)
		if err != nil {
			log.Error("failed to insert order item",
				zap.String("product_id", item.ProductID),
				zap.Error(err),
			)
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("failed to commit order transaction", zap.Error(err))
		return err
	}

	committed = true
	log.Info("order transaction committed")

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Order, error) {
	var o Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_id, status, is_paid, total_amount,
		       shipping_address, payment_method, created_at, updated_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&o.ID, &o.CustomerID, &o.Status, &o.IsPaid, &o.TotalAmount,
		&o.ShippingAddress, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, []*Order{&o}); err != nil {
		return nil, err
	}

	return &o, nil
}

func (r *repository) GetAll(ctx context.Context) ([]*Order, error) {
	return r.listOrders(ctx, `
		SELECT o.id, o.customer_id, o.status, o.is_paid, o.total_amount,
		       o.shipping_address, o.payment_method, o.created_at, o.updated_at,
		       u.name, u.phone
		FROM orders o
		JOIN users u ON u.id = o.customer_id
		ORDER BY o.created_at DESC
	`)
}

func (r *repository) GetByCustomer(ctx context.Context, customerID string) ([]*Order, error) {
	return r.listOrders(ctx, `
		SELECT o.id, o.customer_id, o.status, o.is_paid, o.total_amount,
		       o.shipping_address, o.payment_method, o.created_at, o.updated_at,
		       u.name, u.phone
		FROM orders o
		JOIN users u ON u.id = o.customer_id
		WHERE o.customer_id = $1
		ORDER BY o.created_at DESC
	`, customerID)
}

// GetBySupplier returns orders that carry at least one line item belonging
// to the supplier.
func (r *repository) GetBySupplier(ctx context.Context, supplierID string) ([]*Order, error) {
	return r.listOrders(ctx, `
		SELECT o.id, o.customer_id, o.status, o.is_paid, o.total_amount,
		       o.shipping_address, o.payment_method, o.created_at, o.updated_at,
		       u.name, u.phone
		FROM orders o
		JOIN users u ON u.id = o.customer_id
		WHERE EXISTS (
			SELECT 1 FROM order_items oi
			WHERE oi.order_id = o.id AND oi.supplier_id = $1
		)
		ORDER BY o.created_at DESC
	`, supplierID)
}

func (r *repository) listOrders(ctx context.Context, query string, args ...any) ([]*Order, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query orders", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		var o Order
		if err := rows.Scan(
			&o.ID, &o.CustomerID, &o.Status, &o.IsPaid, &o.TotalAmount,
			&o.ShippingAddress, &o.PaymentMethod, &o.CreatedAt, &o.UpdatedAt,
			&o.CustomerName, &o.CustomerPhone,
		); err != nil {
			log.Error("failed to scan order row", zap.Error(err))
			return nil, err
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}

	return orders, nil
}

// loadItems hydrates line items (with product name and image) for the
// given orders in one query.
func (r *repository) loadItems(ctx context.Context, orders []*Order) error {
	if len(orders) == 0 {
		return nil
	}

	byID := make(map[string]*Order, len(orders))
	ids := make([]string, 0, len(orders))
	for _, o := range orders {
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, oi.supplier_id,
		       oi.quantity, oi.price, oi.is_reviewed,
		       p.name, p.image_url
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.id
	`, pq.Array(ids))
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var item Item
		if err := rows.Scan(
			&item.ID, &item.OrderID, &item.ProductID, &item.SupplierID,
			&item.Quantity, &item.Price, &item.IsReviewed,
			&item.ProductName, &item.ProductImage,
		); err != nil {
			return err
		}
		if o, ok := byID[item.OrderID]; ok {
			o.Items = append(o.Items, item)
		}
	}

	return rows.Err()
}

func (r *repository) UpdateStatus(ctx context.Context, id string, status Status) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = $1, updated_at = NOW() WHERE id = $2
	`, status, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrOrderNotFound
	}
	return nil
}

// RevenueBySupplier sums quantity*price over completed orders containing
// the supplier's items, optionally bounded by a date range. Recomputed on
// every call.
func (r *repository) RevenueBySupplier(ctx context.Context, supplierID string, from, to *time.Time) (*SupplierRevenue, error) {
	query := `
		SELECT COALESCE(SUM(oi.quantity * oi.price), 0),
		       COUNT(DISTINCT o.id),
		       COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.supplier_id = $1 AND o.status = 'completed'
	`

	args := []any{supplierID}
	argIndex := 2

	if from != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
		args = append(args, *from)
		argIndex++
	}
	if to != nil {
		query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
		args = append(args, *to)
		argIndex++
	}

	var rev SupplierRevenue
	err := r.db.QueryRowContext(ctx, query, args...).
		Scan(&rev.TotalRevenue, &rev.TotalOrdersCount, &rev.TotalProductsSold)
	if err != nil {
		return nil, err
	}

	return &rev, nil
}

func (r *repository) DailyRevenue(ctx context.Context, supplierID *string, from, to *time.Time) ([]DailyRevenue, error) {
	query := `
		SELECT date_trunc('day', o.created_at) AS day,
		       COALESCE(SUM(oi.quantity * oi.price), 0),
		       COUNT(DISTINCT o.id)
		FROM orders o
		JOIN order_items oi ON oi.order_id = o.id
		WHERE o.status = 'completed'
	`

	args := []any{}
	argIndex := 1

	if supplierID != nil && *supplierID != "" {
		query += fmt.Sprintf(" AND oi.supplier_id = $%d", argIndex)
		args = append(args, *supplierID)
		argIndex++
	}
	if from != nil {
		query += fmt.Sprintf(" AND o.created_at >= $%d", argIndex)
		args = append(args, *from)
		argIndex++
	}
	if to != nil {
		query += fmt.Sprintf(" AND o.created_at <= $%d", argIndex)
		args = append(args, *to)
		argIndex++
	}

	query += " GROUP BY 1 ORDER BY 1"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []DailyRevenue
	for rows.Next() {
		var d DailyRevenue
		if err := rows.Scan(&d.Day, &d.Revenue, &d.Orders); err != nil {
			return nil, err
		}
		result = append(result, d)
	}

	return result, rows.Err()
}

func (r *repository) TopProducts(ctx context.Context, limit int) ([]ProductSales, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT oi.product_id, p.name, SUM(oi.quantity)::int AS units
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		JOIN products p ON p.id = oi.product_id
		WHERE o.status = 'completed'
		GROUP BY oi.product_id, p.name
		ORDER BY units DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []ProductSales
	for rows.Next() {
		var p ProductSales
		if err := rows.Scan(&p.ProductID, &p.ProductName, &p.UnitsSold); err != nil {
			return nil, err
		}
		result = append(result, p)
	}

	return result, rows.Err()
}

func (r *repository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT status, COUNT(*)::int
		FROM orders
		GROUP BY status
		ORDER BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []StatusCount
	for rows.Next() {
		var sc StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		result = append(result, sc)
	}

	return result, rows.Err()
}
