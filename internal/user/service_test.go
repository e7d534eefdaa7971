package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, u *User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockRepository) List(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

// --- Tests ---

func TestService_Register(t *testing.T) {
	ctx := context.Background()

	input := RegisterInput{
		Name:     "Chi Lan",
		Email:    "lan@example.com",
		Password: "secret123",
	}

	t.Run("Success", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "testsecret")

		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(u *User) bool {
			return u.Email == input.Email &&
				u.Role == RoleCustomer &&
				u.Password != input.Password // stored hashed
		})).Return(nil)

		token, u, err := svc.Register(ctx, input)

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.NotEmpty(t, u.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "testsecret")

		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*user.User")).
			Return(errors.New(`pq: duplicate key value violates unique constraint "users_email_key"`))

		_, _, err := svc.Register(ctx, input)
		assert.ErrorIs(t, err, ErrEmailExists)
	})

	t.Run("RepoError", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "testsecret")

		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Create", ctx, mock.AnythingOfType("*user.User")).
			Return(errors.New("db error"))

		_, _, err := svc.Register(ctx, input)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrEmailExists)
	})
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()

	hash, _ := HashPassword("secret123")
	stored := &User{
		ID:       testUserID,
		Email:    "lan@example.com",
		Password: hash,
		Role:     RoleCustomer,
	}

	t.Run("Success", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "testsecret")

		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "lan@example.com").Return(stored, nil)

		token, u, err := svc.Login(ctx, "lan@example.com", "secret123")

		assert.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, testUserID, u.ID)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "nobody@example.com").
			Return(nil, errors.New("sql: no rows in result set"))

		_, _, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByEmail", ctx, "lan@example.com").Return(stored, nil)

		_, _, err := svc.Login(ctx, "lan@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
