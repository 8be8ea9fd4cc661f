package domain

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrOrderNotFound    = errors.New("order not found")

	ErrCartItemOwnership = errors.New("cart item belongs to another user")
	ErrOrderOwnership    = errors.New("order belongs to another user")

	ErrInvalidArgument = errors.New("invalid argument")
	ErrInvalidQuantity = errors.New("invalid quantity")
	ErrEmptyCart       = errors.New("cart is empty")

	ErrExchangeRateUnavailable = errors.New("exchange rate unavailable")

	// ErrCartItemConflict is a concurrent insert of the same (user, product) line.
	ErrCartItemConflict = errors.New("cart item conflict")

	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
)
