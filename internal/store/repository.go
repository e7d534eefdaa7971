package store

import (
	"context"
	"database/sql"
	"errors"

	"agrimart-be/internal/logger"

	"go.uber.org/zap"
)

type Repository interface {
	FindByUser(ctx context.Context, userID string) (*Profile, error)
	FindByID(ctx context.Context, id string) (*Profile, error)
	Create(ctx context.Context, p *Profile) error
	Update(ctx context.Context, p *Profile) error
	ListAll(ctx context.Context) ([]*Profile, error)

	// Approve marks the profile approved and promotes its owner to the
	// supplier role in one transaction.
	Approve(ctx context.Context, id string) (*Profile, error)
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const profileColumns = `
	id, user_id, store_name, phone, address, image_url,
	is_approved, created_at, updated_at
`

func (r *repository) FindByUser(ctx context.Context, userID string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM store_profiles
		WHERE user_id = $1
	`, userID).Scan(
		&p.ID, &p.UserID, &p.StoreName, &p.Phone, &p.Address, &p.ImageURL,
		&p.IsApproved, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) FindByID(ctx context.Context, id string) (*Profile, error) {
	var p Profile
	err := r.db.QueryRowContext(ctx, `
		SELECT `+profileColumns+`
		FROM store_profiles
		WHERE id = $1
	`, id).Scan(
		&p.ID, &p.UserID, &p.StoreName, &p.Phone, &p.Address, &p.ImageURL,
		&p.IsApproved, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Profile) error {
	log := logger.FromCtx(ctx)

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO store_profiles (id, user_id, store_name, phone, address, image_url, is_approved)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.StoreName, p.Phone, p.Address, p.ImageURL).Scan(&p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		log.Error("db: failed to insert store profile",
			zap.String("user_id", p.UserID),
			zap.Error(err),
		)
	}

	return err
}

func (r *repository) Update(ctx context.Context, p *Profile) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE store_profiles
		SET store_name = $1, phone = $2, address = $3,
		    image_url = COALESCE($4, image_url),
		    is_approved = FALSE, updated_at = NOW()
		WHERE id = $5
	`, p.StoreName, p.Phone, p.Address, p.ImageURL, p.ID)
	if err != nil {
		return err
	}

	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *repository) ListAll(ctx context.Context) ([]*Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT sp.id, sp.user_id, sp.store_name, sp.phone, sp.address, sp.image_url,
		       sp.is_approved, sp.created_at, sp.updated_at,
		       u.name, u.email
		FROM store_profiles sp
		JOIN users u ON u.id = sp.user_id
		ORDER BY sp.created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		var p Profile
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.StoreName, &p.Phone, &p.Address, &p.ImageURL,
			&p.IsApproved, &p.CreatedAt, &p.UpdatedAt,
			&p.OwnerName, &p.OwnerEmail,
		); err != nil {
			return nil, err
		}
		profiles = append(profiles, &p)
	}

	return profiles, rows.Err()
}

func (r *repository) Approve(ctx context.Context, id string) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "repository"),
		zap.String("method", "ApproveProfile"),
		zap.String("profile_id", id),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	committed := false
	defer func() {
		if !committed {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error("failed to rollback transaction", zap.Error(rbErr))
			}
		}
	}()

	var p Profile
	err = tx.QueryRowContext(ctx, `
		UPDATE store_profiles
		SET is_approved = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING `+profileColumns+`
	`, id).Scan(
		&p.ID, &p.UserID, &p.StoreName, &p.Phone, &p.Address, &p.ImageURL,
		&p.IsApproved, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrProfileNotFound
	}
	if err != nil {
		log.Error("failed to approve profile", zap.Error(err))
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE users SET role = 'supplier' WHERE id = $1
	`, p.UserID)
	if err != nil {
		log.Error("failed to promote user to supplier", zap.Error(err))
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	committed = true
	log.Info("store profile approved", zap.String("user_id", p.UserID))

	return &p, nil
}
