package review

import "errors"

var (
	ErrOrderNotEligible  = errors.New("order not found or not completed")
	ErrProductNotInOrder = errors.New("product is not part of the order")
	ErrAlreadyReviewed   = errors.New("product already reviewed for this order")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)
