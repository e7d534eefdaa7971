package category

import (
	"context"
	"database/sql"
	"errors"

	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

var ErrNotFound = errors.New("category not found")

type Repository interface {
	Create(ctx context.Context, cat *Category) error
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id, name string, imageURL *string) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, cat *Category) error {
	log := logger.FromCtx(ctx)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO categories (id, name, image_url)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`, cat.ID, cat.Name, cat.ImageURL).Scan(&cat.CreatedAt)

	if err != nil {
		log.Error("db: failed to insert category",
			zap.String("name", cat.Name),
			zap.Error(err),
		)
	}

	return err
}

func (r *repository) List(ctx context.Context) ([]*Category, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, image_url, created_at
		FROM categories
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		var cat Category
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, &cat)
	}

	return categories, rows.Err()
}

func (r *repository) Update(ctx context.Context, id, name string, imageURL *string) (*Category, error) {
	var cat Category
	err := r.db.QueryRowContext(ctx, `
		UPDATE categories
		SET name = $1, image_url = COALESCE($2, image_url)
		WHERE id = $3
		RETURNING id, name, image_url, created_at
	`, name, imageURL, id).Scan(&cat.ID, &cat.Name, &cat.ImageURL, &cat.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &cat, nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
