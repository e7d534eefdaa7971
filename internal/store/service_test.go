package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByUser(ctx context.Context, userID string) (*Profile, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) FindByID(ctx context.Context, id string) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, p *Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, p *Profile) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockRepository) ListAll(ctx context.Context) ([]*Profile, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*Profile), args.Error(1)
}

func (m *MockRepository) Approve(ctx context.Context, id string) (*Profile, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Profile), args.Error(1)
}

// --- Tests ---

const (
	testUserID    = "64f1a2b3c4d5e6f708192a01"
	testProfileID = "64f1a2b3c4d5e6f708192a07"
)

func upsertInput() UpsertProfileInput {
	return UpsertProfileInput{
		StoreName: "Minh Farm",
		Phone:     "0901234567",
		Address:   "Da Lat",
	}
}

func TestService_Upsert(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesNewProfile", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByUser", ctx, testUserID).Return(nil, ErrProfileNotFound)
		mockRepo.On("Create", ctx, mock.MatchedBy(func(p *Profile) bool {
			return p.UserID == testUserID && p.StoreName == "Minh Farm" && !p.IsApproved
		})).Return(nil)

		p, err := svc.Upsert(ctx, testUserID, upsertInput())

		assert.NoError(t, err)
		assert.NotEmpty(t, p.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("EmptyStoreName", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		input := upsertInput()
		input.StoreName = "  "

		_, err := svc.Upsert(ctx, testUserID, input)
		assert.Error(t, err)
		mockRepo.AssertNotCalled(t, "FindByUser")
	})

	t.Run("ApprovedProfileFrozen", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("FindByUser", ctx, testUserID).
			Return(&Profile{ID: testProfileID, UserID: testUserID, IsApproved: true}, nil)

		_, err := svc.Upsert(ctx, testUserID, upsertInput())

		assert.ErrorIs(t, err, ErrAlreadyApproved)
		mockRepo.AssertNotCalled(t, "Update")
	})

	t.Run("CompletePendingProfileLocked", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		existing := &Profile{
			ID: testProfileID, UserID: testUserID,
			StoreName: "Minh Farm", Phone: "0901234567", Address: "Da Lat",
		}
		mockRepo.On("FindByUser", ctx, testUserID).Return(existing, nil)

		_, err := svc.Upsert(ctx, testUserID, upsertInput())

		assert.ErrorIs(t, err, ErrPendingApproval)
	})

	t.Run("AmendsIncompleteProfile", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		existing := &Profile{ID: testProfileID, UserID: testUserID, StoreName: "Minh Farm"}
		mockRepo.On("FindByUser", ctx, testUserID).Return(existing, nil)
		mockRepo.On("Update", ctx, mock.MatchedBy(func(p *Profile) bool {
			return p.ID == testProfileID && p.Phone == "0901234567"
		})).Return(nil)

		p, err := svc.Upsert(ctx, testUserID, upsertInput())

		assert.NoError(t, err)
		assert.Equal(t, testProfileID, p.ID)
		mockRepo.AssertExpectations(t)
	})
}

func TestService_Approve(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		mockRepo.On("Approve", ctx, testProfileID).
			Return(&Profile{ID: testProfileID, IsApproved: true}, nil)

		p, err := svc.Approve(ctx, testProfileID)

		assert.NoError(t, err)
		assert.True(t, p.IsApproved)
	})

	t.Run("MalformedID", func(t *testing.T) {
		mockRepo := new(MockRepository)
		svc := NewService(mockRepo)

		_, err := svc.Approve(ctx, "nope")

		assert.ErrorIs(t, err, ErrProfileNotFound)
		mockRepo.AssertNotCalled(t, "Approve")
	})
}
