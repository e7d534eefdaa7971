package payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"agrimart-be/internal/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mocks ---

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) HasEvent(ctx context.Context, gatewayTxnID int64) (bool, error) {
	args := m.Called(ctx, gatewayTxnID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) RecordAndMarkPaid(ctx context.Context, ev *Event) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) Create(ctx context.Context, input order.CreateOrderInput) (*order.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetByID(ctx context.Context, id string) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderService) GetAll(ctx context.Context) ([]*order.Order, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetByCustomer(ctx context.Context, customerID string) ([]*order.Order, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) GetBySupplier(ctx context.Context, supplierID string) ([]*order.Order, error) {
	args := m.Called(ctx, supplierID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(ctx context.Context, id string, status order.Status) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderService) RevenueBySupplier(ctx context.Context, supplierID string, from, to *time.Time) (*order.SupplierRevenue, error) {
	args := m.Called(ctx, supplierID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.SupplierRevenue), args.Error(1)
}

func (m *MockOrderService) DailyRevenue(ctx context.Context, supplierID *string, from, to *time.Time) ([]order.DailyRevenue, error) {
	args := m.Called(ctx, supplierID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.DailyRevenue), args.Error(1)
}

func (m *MockOrderService) TopProducts(ctx context.Context, limit int) ([]order.ProductSales, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.ProductSales), args.Error(1)
}

func (m *MockOrderService) CountByStatus(ctx context.Context) ([]order.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.StatusCount), args.Error(1)
}

// --- Tests ---

const testOrderID = "64f1a2b3c4d5e6f708192a3e"

func inboundPayload() WebhookPayload {
	return WebhookPayload{
		ID:             9001,
		Gateway:        "Vietcombank",
		Content:        "DON " + testOrderID,
		TransferType:   "in",
		TransferAmount: 125000,
	}
}

func TestService_Reconcile(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		mockOrders.On("GetByID", ctx, testOrderID).
			Return(&order.Order{ID: testOrderID, TotalAmount: 125000}, nil)
		mockRepo.On("HasEvent", ctx, int64(9001)).Return(false, nil)
		mockRepo.On("RecordAndMarkPaid", ctx, mock.MatchedBy(func(ev *Event) bool {
			return ev.GatewayTxnID == 9001 &&
				ev.OrderID == testOrderID &&
				ev.Amount == 125000 &&
				len(ev.Payload) > 0
		})).Return(nil)

		res, err := svc.Reconcile(ctx, inboundPayload())

		assert.NoError(t, err)
		assert.True(t, res.Processed)
		assert.Equal(t, testOrderID, res.OrderID)
		mockRepo.AssertExpectations(t)
		mockOrders.AssertExpectations(t)
	})

	t.Run("OutboundTransferIgnored", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		payload := inboundPayload()
		payload.TransferType = "out"

		res, err := svc.Reconcile(ctx, payload)

		assert.NoError(t, err)
		assert.False(t, res.Processed)
		mockOrders.AssertNotCalled(t, "GetByID")
	})

	t.Run("NoOrderReference", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		payload := inboundPayload()
		payload.Content = "chuyen tien"

		res, err := svc.Reconcile(ctx, payload)

		assert.NoError(t, err)
		assert.False(t, res.Processed)
		assert.Contains(t, res.Message, "no order reference")
		mockOrders.AssertNotCalled(t, "GetByID")
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		mockOrders.On("GetByID", ctx, testOrderID).Return(nil, order.ErrOrderNotFound)

		_, err := svc.Reconcile(ctx, inboundPayload())

		assert.ErrorIs(t, err, order.ErrOrderNotFound)
		mockRepo.AssertNotCalled(t, "RecordAndMarkPaid")
	})

	t.Run("DuplicateNotification", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		mockOrders.On("GetByID", ctx, testOrderID).
			Return(&order.Order{ID: testOrderID, TotalAmount: 125000, IsPaid: true}, nil)
		mockRepo.On("HasEvent", ctx, int64(9001)).Return(true, nil)

		res, err := svc.Reconcile(ctx, inboundPayload())

		assert.NoError(t, err)
		assert.False(t, res.Processed)
		assert.Contains(t, res.Message, "already processed")
		mockRepo.AssertNotCalled(t, "RecordAndMarkPaid")
	})

	t.Run("OrderAlreadyPaid", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		mockOrders.On("GetByID", ctx, testOrderID).
			Return(&order.Order{ID: testOrderID, TotalAmount: 125000, IsPaid: true}, nil)
		mockRepo.On("HasEvent", ctx, int64(9001)).Return(false, nil)

		res, err := svc.Reconcile(ctx, inboundPayload())

		assert.NoError(t, err)
		assert.False(t, res.Processed)
		assert.Contains(t, res.Message, "already paid")
		mockRepo.AssertNotCalled(t, "RecordAndMarkPaid")
	})

	t.Run("AmountMismatch", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		mockOrders.On("GetByID", ctx, testOrderID).
			Return(&order.Order{ID: testOrderID, TotalAmount: 999999}, nil)
		mockRepo.On("HasEvent", ctx, int64(9001)).Return(false, nil)

		res, err := svc.Reconcile(ctx, inboundPayload())

		assert.NoError(t, err)
		assert.False(t, res.Processed)
		assert.Contains(t, res.Message, "does not match")
		mockRepo.AssertNotCalled(t, "RecordAndMarkPaid")
	})

	t.Run("InsertRace_TreatedAsDuplicate", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		mockOrders.On("GetByID", ctx, testOrderID).
			Return(&order.Order{ID: testOrderID, TotalAmount: 125000}, nil)
		mockRepo.On("HasEvent", ctx, int64(9001)).Return(false, nil)
		mockRepo.On("RecordAndMarkPaid", ctx, mock.AnythingOfType("*payment.Event")).
			Return(ErrDuplicateEvent)

		res, err := svc.Reconcile(ctx, inboundPayload())

		assert.NoError(t, err)
		assert.False(t, res.Processed)
		assert.Contains(t, res.Message, "already processed")
	})

	t.Run("RepoError", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		svc := NewService(mockRepo, mockOrders)

		mockOrders.On("GetByID", ctx, testOrderID).
			Return(&order.Order{ID: testOrderID, TotalAmount: 125000}, nil)
		mockRepo.On("HasEvent", ctx, int64(9001)).Return(false, nil)
		mockRepo.On("RecordAndMarkPaid", ctx, mock.AnythingOfType("*payment.Event")).
			Return(errors.New("db error"))

		_, err := svc.Reconcile(ctx, inboundPayload())
		assert.Error(t, err)
	})
}
