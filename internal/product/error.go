package product

import "errors"

var (
	ErrNotFound       = errors.New("product not found")
	ErrNoUpdateFields = errors.New("no fields to update")
)
