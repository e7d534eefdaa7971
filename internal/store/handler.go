package store

import (
	"errors"
	"net/http"

	"agrimart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type upsertProfileRequest struct {
	StoreName string  `json:"storeName" binding:"required"`
	Phone     string  `json:"phone" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	ImageURL  *string `json:"imageUrl"`
}

func (h *Handler) Upsert(c *gin.Context) {
	var req upsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	p, err := h.svc.Upsert(c.Request.Context(), userID, UpsertProfileInput{
		StoreName: req.StoreName,
		Phone:     req.Phone,
		Address:   req.Address,
		ImageURL:  req.ImageURL,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyApproved), errors.Is(err, ErrPendingApproval):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save store profile"})
		}
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) Mine(c *gin.Context) {
	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	p, err := h.svc.GetByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch store profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *Handler) ListAll(c *gin.Context) {
	profiles, err := h.svc.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list store profiles"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *Handler) Approve(c *gin.Context) {
	p, err := h.svc.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve store profile"})
		return
	}

	c.JSON(http.StatusOK, p)
}
