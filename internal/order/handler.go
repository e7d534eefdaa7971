package order

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"agrimart-be/internal/utils"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type createOrderRequest struct {
	ShippingAddress string                   `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                   `json:"paymentMethod" binding:"required"`
	TotalAmount     int64                    `json:"totalAmount"`
	Items           []createOrderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type createOrderItemRequest struct {
	ProductID  string `json:"productId" binding:"required"`
	SupplierID string `json:"supplierId" binding:"required"`
	Quantity   int    `json:"quantity" binding:"required,gt=0"`
	Price      int64  `json:"price" binding:"gte=0"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	customerID, _ := utils.GetUserIDFromContext(c.Request.Context())

	input := CreateOrderInput{
		CustomerID:      customerID,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		TotalAmount:     req.TotalAmount,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, CreateOrderItem{
			ProductID:  item.ProductID,
			SupplierID: item.SupplierID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}

	o, err := h.svc.Create(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, ErrProductNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, ErrInsufficientStock),
			errors.Is(err, ErrEmptyOrder),
			errors.Is(err, ErrTotalMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
		}
		return
	}

	c.JSON(http.StatusCreated, o)
}

func (h *Handler) GetByID(c *gin.Context) {
	o, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, o)
}

func (h *Handler) GetAll(c *gin.Context) {
	orders, err := h.svc.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetByCustomer(c *gin.Context) {
	orders, err := h.svc.GetByCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) GetBySupplier(c *gin.Context) {
	orders, err := h.svc.GetBySupplier(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := h.svc.UpdateStatus(c.Request.Context(), c.Param("id"), Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidStatus):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": c.Param("id"), "status": req.Status})
}

func (h *Handler) RevenueBySupplier(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rev, err := h.svc.RevenueBySupplier(c.Request.Context(), c.Param("id"), from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute revenue"})
		return
	}

	c.JSON(http.StatusOK, rev)
}

func (h *Handler) DailyRevenue(c *gin.Context) {
	from, to, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var supplierID *string
	if v := c.Query("supplierId"); v != "" {
		supplierID = &v
	}

	rows, err := h.svc.DailyRevenue(c.Request.Context(), supplierID, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute daily revenue"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *Handler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	rows, err := h.svc.TopProducts(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute top products"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

func (h *Handler) CountByStatus(c *gin.Context) {
	rows, err := h.svc.CountByStatus(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count orders"})
		return
	}

	c.JSON(http.StatusOK, rows)
}

// parseDateRange reads optional from/to query params, accepting either
// RFC3339 or plain yyyy-mm-dd values.
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	parse := func(value string) (*time.Time, error) {
		if value == "" {
			return nil, nil
		}
		if t, err := time.Parse(time.RFC3339, value); err == nil {
			return &t, nil
		}
		t, err := time.Parse("2006-01-02", value)
		if err != nil {
			return nil, errors.New("invalid date: " + value)
		}
		return &t, nil
	}

	from, err := parse(c.Query("from"))
	if err != nil {
		return nil, nil, err
	}
	to, err := parse(c.Query("to"))
	if err != nil {
		return nil, nil, err
	}
	return from, to, nil
}
