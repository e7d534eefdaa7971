package review

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

type createReviewRequest struct {
	OrderID   string  `json:"orderId" binding:"required"`
	ProductID string  `json:"productId" binding:"required"`
	Rating    int     `json:"rating" binding:"required,min=1,max=5"`
	Comment   *string `json:"comment"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, _ := utils.GetUserIDFromContext(c.Request.Context())

	rev, err := h.svc.Create(c.Request.Context(), userID, CreateReviewInput{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrOrderNotEligible),
			errors.Is(err, ErrProductNotInOrder),
			errors.Is(err, ErrAlreadyReviewed),
			errors.Is(err, ErrInvalidRating):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create review"})
		}
		return
	}

	c.JSON(http.StatusCreated, rev)
}

func (h *Handler) ListByProduct(c *gin.Context) {
	reviews, err := h.svc.ListByProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reviews)
}
