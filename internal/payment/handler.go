package payment

import (
	"errors"
	"net/http"
	"regexp"
	"strings"

	"agrimart-be/internal/logger"
	"agrimart-be/internal/order"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var apikeyPrefix = regexp.MustCompile(`(?i)^Apikey\s+`)

type Handler struct {
	svc        Service
	webhookKey string
}

func NewHandler(svc Service, webhookKey string) *Handler {
	return &Handler{svc: svc, webhookKey: webhookKey}
}

// Webhook receives SePay transaction notifications. The gateway
// authenticates with "Authorization: Apikey <key>".
func (h *Handler) Webhook(c *gin.Context) {
	log := logger.FromCtx(c.Request.Context())

	if h.webhookKey == "" {
		log.Error("SEPAY_WEBHOOK_KEY is not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "webhook not configured"})
		return
	}

	supplied := strings.TrimSpace(c.GetHeader("Authorization"))
	supplied = apikeyPrefix.ReplaceAllString(supplied, "")
	if supplied != h.webhookKey {
		log.Warn("webhook rejected: invalid api key")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid api key"})
		return
	}

	var payload WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.svc.Reconcile(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		log.Error("webhook processing failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process notification"})
		return
	}

	c.JSON(http.StatusOK, result)
}
