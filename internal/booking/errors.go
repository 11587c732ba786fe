package booking

import "errors"

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInsufficientStock = errors.New("not enough stock available")
	ErrValidation        = errors.New("invalid input data")
)
