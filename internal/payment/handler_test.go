package payment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"agrimart-be/internal/order"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func webhookRequest(t *testing.T, body any, authorization string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}

	req := httptest.NewRequest("POST", "/api/payment/webhook", &buf)
	req.Header.Set("Content-Type", "application/json")
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return req
}

func newWebhookRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/payment/webhook", h.Webhook)
	return r
}

func TestHandler_Webhook(t *testing.T) {
	const key = "sepay-secret"

	t.Run("Success", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		h := NewHandler(NewService(mockRepo, mockOrders), key)

		mockOrders.On("GetByID", mock.Anything, testOrderID).
			Return(&order.Order{ID: testOrderID, TotalAmount: 125000}, nil)
		mockRepo.On("HasEvent", mock.Anything, int64(9001)).Return(false, nil)
		mockRepo.On("RecordAndMarkPaid", mock.Anything, mock.AnythingOfType("*payment.Event")).Return(nil)

		rr := httptest.NewRecorder()
		newWebhookRouter(h).ServeHTTP(rr, webhookRequest(t, inboundPayload(), "Apikey "+key))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"success":true`)
	})

	t.Run("BareKeyAccepted", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		h := NewHandler(NewService(mockRepo, mockOrders), key)

		payload := inboundPayload()
		payload.TransferType = "out"

		rr := httptest.NewRecorder()
		newWebhookRouter(h).ServeHTTP(rr, webhookRequest(t, payload, key))

		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("WrongKey", func(t *testing.T) {
		h := NewHandler(NewService(new(MockRepository), new(MockOrderService)), key)

		rr := httptest.NewRecorder()
		newWebhookRouter(h).ServeHTTP(rr, webhookRequest(t, inboundPayload(), "Apikey nope"))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("MissingKey", func(t *testing.T) {
		h := NewHandler(NewService(new(MockRepository), new(MockOrderService)), key)

		rr := httptest.NewRecorder()
		newWebhookRouter(h).ServeHTTP(rr, webhookRequest(t, inboundPayload(), ""))

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("KeyNotConfigured", func(t *testing.T) {
		h := NewHandler(NewService(new(MockRepository), new(MockOrderService)), "")

		rr := httptest.NewRecorder()
		newWebhookRouter(h).ServeHTTP(rr, webhookRequest(t, inboundPayload(), "Apikey "+key))

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
	})

	t.Run("MalformedBody", func(t *testing.T) {
		h := NewHandler(NewService(new(MockRepository), new(MockOrderService)), key)

		req := httptest.NewRequest("POST", "/api/payment/webhook", bytes.NewBufferString("{nope"))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Apikey "+key)

		rr := httptest.NewRecorder()
		newWebhookRouter(h).ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("OrderNotFound", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockOrders := new(MockOrderService)
		h := NewHandler(NewService(mockRepo, mockOrders), key)

		mockOrders.On("GetByID", mock.Anything, testOrderID).Return(nil, order.ErrOrderNotFound)

		rr := httptest.NewRecorder()
		newWebhookRouter(h).ServeHTTP(rr, webhookRequest(t, inboundPayload(), "Apikey "+key))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}
