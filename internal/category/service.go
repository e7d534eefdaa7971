package category

import (
	"context"
	"errors"
	"strings"

	"agrimart-be/internal/utils"
)

type Service interface {
	Create(ctx context.Context, name string, imageURL *string) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
	Update(ctx context.Context, id, name string, imageURL *string) (*Category, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, name string, imageURL *string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name cannot be empty")
	}

	cat := &Category{
		ID:       utils.NewID(),
		Name:     strings.TrimSpace(name),
		ImageURL: imageURL,
	}

	if err := s.repo.Create(ctx, cat); err != nil {
		return nil, err
	}

	return cat, nil
}

func (s *service) List(ctx context.Context) ([]*Category, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id, name string, imageURL *string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("name cannot be empty")
	}
	if !utils.IsValidID(id) {
		return nil, ErrNotFound
	}
	return s.repo.Update(ctx, id, strings.TrimSpace(name), imageURL)
}

func (s *service) Delete(ctx context.Context, id string) error {
	if !utils.IsValidID(id) {
		return ErrNotFound
	}
	return s.repo.Delete(ctx, id)
}
