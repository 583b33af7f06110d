package domain

import "errors"

// Error taxonomy shared by services and mapped to HTTP status codes at the
// API boundary.
var (
	// ErrNotFound: a referenced entity does not exist at execution time.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidTransition: the request's current status does not permit
	// the attempted lifecycle action.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInsufficientStock: approving would take availableQuantity below
	// zero.
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrQuantityBounds: a mutation would push availableQuantity outside
	// [0, totalQuantity].
	ErrQuantityBounds = errors.New("available quantity out of bounds")

	// ErrInvalidArgument: caller-supplied input failed validation.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrForbidden: the session's role does not permit the operation.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidCredentials: login failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
)
