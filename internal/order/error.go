package order

import "errors"

var (
	ErrOrderNotFound     = errors.New("order not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrEmptyOrder        = errors.New("order must contain at least one item")
	ErrTotalMismatch     = errors.New("total amount does not match line items")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrAlreadyPaid       = errors.New("order already paid")
)
