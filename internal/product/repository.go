package product

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error)
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*Product, error)
	List(ctx context.Context) ([]*Product, error)
	ListByCategory(ctx context.Context, categoryID string) ([]*Product, error)
	ListBySupplier(ctx context.Context, supplierID string) ([]*Product, error)
	SearchByName(ctx context.Context, keyword string) ([]*Product, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const productColumns = `
	id, name, description, price, stock, unit, image_url,
	supplier_id, category_id, is_active, status, created_at, updated_at
`

func scanProduct(row interface{ Scan(...any) error }, p *Product) error {
	return row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Unit, &p.ImageURL,
		&p.SupplierID, &p.CategoryID, &p.IsActive, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *repository) Create(ctx context.Context, p *Product) error {
	log := logger.FromCtx(ctx)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO products (
			id, name, description, price, stock, unit, image_url,
			supplier_id, category_id, is_active, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at, updated_at
	`,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Unit, p.ImageURL,
		p.SupplierID, p.CategoryID, p.IsActive, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		log.Error("db: failed to insert product",
			zap.String("name", p.Name),
			zap.Error(err),
		)
	}

	return err
}

func (r *repository) Update(ctx context.Context, id string, input UpdateProductInput) (*Product, error) {
	set := []string{}
	args := []any{}
	argIndex := 1

	add := func(column string, value any) {
		set = append(set, fmt.Sprintf("%s = $%d", column, argIndex))
		args = append(args, value)
		argIndex++
	}

	if input.Name != nil {
		add("name", *input.Name)
	}
	if input.Description != nil {
		add("description", *input.Description)
	}
	if input.Price != nil {
		add("price", *input.Price)
	}
	if input.Stock != nil {
		add("stock", *input.Stock)
	}
	if input.Unit != nil {
		add("unit", *input.Unit)
	}
	if input.ImageURL != nil {
		add("image_url", *input.ImageURL)
	}
	if input.CategoryID != nil {
		add("category_id", *input.CategoryID)
	}
	if input.IsActive != nil {
		add("is_active", *input.IsActive)
	}
	if input.Status != nil {
		add("status", *input.Status)
	}

	if len(set) == 0 {
		return nil, ErrNoUpdateFields
	}

	set = append(set, "updated_at = NOW()")

	query := fmt.Sprintf(`
		UPDATE products SET %s
		WHERE id = $%d
		RETURNING %s
	`, strings.Join(set, ", "), argIndex, productColumns)
	args = append(args, id)

	var p Product
	err := scanProduct(r.db.QueryRowContext(ctx, query, args...), &p)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns the product with its supplier contact info, overlaying
// the supplier's store profile when one exists.
func (r *repository) GetByID(ctx context.Context, id string) (*Product, error) {
	var p Product
	var sup SupplierInfo

	err := r.db.QueryRowContext(ctx, `
		SELECT p.id, p.name, p.description, p.price, p.stock, p.unit, p.image_url,
		       p.supplier_id, p.category_id, p.is_active, p.status, p.created_at, p.updated_at,
		       u.id, u.name, u.email, u.phone, u.address,
		       sp.store_name, sp.image_url
		FROM products p
		JOIN users u ON u.id = p.supplier_id
		LEFT JOIN store_profiles sp ON sp.user_id = u.id
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Unit, &p.ImageURL,
		&p.SupplierID, &p.CategoryID, &p.IsActive, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		&sup.ID, &sup.Name, &sup.Email, &sup.Phone, &sup.Address,
		&sup.StoreName, &sup.StoreImage,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	p.Supplier = &sup
	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]*Product, error) {
	return r.list(ctx, fmt.Sprintf(`
		SELECT %s FROM products
		WHERE is_active = TRUE
		ORDER BY created_at DESC
	`, productColumns))
}

func (r *repository) ListByCategory(ctx context.Context, categoryID string) ([]*Product, error) {
	return r.list(ctx, fmt.Sprintf(`
		SELECT %s FROM products
		WHERE category_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`, productColumns), categoryID)
}

func (r *repository) ListBySupplier(ctx context.Context, supplierID string) ([]*Product, error) {
	return r.list(ctx, fmt.Sprintf(`
		SELECT %s FROM products
		WHERE supplier_id = $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`, productColumns), supplierID)
}

func (r *repository) SearchByName(ctx context.Context, keyword string) ([]*Product, error) {
	return r.list(ctx, fmt.Sprintf(`
		SELECT %s FROM products
		WHERE name ILIKE $1 AND is_active = TRUE
		ORDER BY created_at DESC
	`, productColumns), "%"+keyword+"%")
}

func (r *repository) list(ctx context.Context, query string, args ...any) ([]*Product, error) {
	log := logger.FromCtx(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query products", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		var p Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		products = append(products, &p)
	}

	return products, rows.Err()
}
