package store

import (
	"context"
	"errors"
	"strings"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/utils"

	"go.uber.org/zap"
)

type Service interface {
	Upsert(ctx context.Context, userID string, input UpsertProfileInput) (*Profile, error)
	GetByUser(ctx context.Context, userID string) (*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error)
	Approve(ctx context.Context, id string) (*Profile, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// Upsert registers or amends a supplier application. An approved profile
// is frozen, and a complete profile that is still pending cannot be
// resubmitted until an admin decides.
func (s *service) Upsert(ctx context.Context, userID string, input UpsertProfileInput) (*Profile, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("method", "UpsertProfile"),
		zap.String("user_id", userID),
	)

	if strings.TrimSpace(input.StoreName) == "" {
		return nil, errors.New("store name cannot be empty")
	}

	existing, err := s.repo.FindByUser(ctx, userID)
	if err != nil && !errors.Is(err, ErrProfileNotFound) {
		return nil, err
	}

	if existing != nil {
		if existing.IsApproved {
			return nil, ErrAlreadyApproved
		}
		if existing.Complete() {
			return nil, ErrPendingApproval
		}

		existing.StoreName = input.StoreName
		existing.Phone = input.Phone
		existing.Address = input.Address
		existing.ImageURL = input.ImageURL

		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}

		log.Info("store profile updated", zap.String("profile_id", existing.ID))
		return existing, nil
	}

	p := &Profile{
		ID:        utils.NewID(),
		UserID:    userID,
		StoreName: input.StoreName,
		Phone:     input.Phone,
		Address:   input.Address,
		ImageURL:  input.ImageURL,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	log.Info("store profile created", zap.String("profile_id", p.ID))
	return p, nil
}

func (s *service) GetByUser(ctx context.Context, userID string) (*Profile, error) {
	return s.repo.FindByUser(ctx, userID)
}

func (s *service) ListAll(ctx context.Context) ([]*Profile, error) {
	return s.repo.ListAll(ctx)
}

func (s *service) Approve(ctx context.Context, id string) (*Profile, error) {
	if !utils.IsValidID(id) {
		return nil, ErrProfileNotFound
	}
	return s.repo.Approve(ctx, id)
}
