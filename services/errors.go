package services

import (
	"errors"
	"fmt"
)

// Error taxonomy for lifecycle operations. Handlers translate these with
// errors.Is; none are fatal to the process.
var (
	// ErrNotFound means the request (or user) id matched nothing in the store
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition means the operation was attempted from a status
	// that does not permit it. State is left unchanged.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidArgument covers malformed operation input
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrAlreadyRated means the rating slot was already written; slots are
	// write-once.
	ErrAlreadyRated = errors.New("rating already submitted")
)

var (
	ErrEmptyReason      = fmt.Errorf("%w: cancellation reason must not be empty", ErrInvalidArgument)
	ErrEmptyMessage     = fmt.Errorf("%w: message text must not be empty", ErrInvalidArgument)
	ErrRatingOutOfRange = fmt.Errorf("%w: rating value must be between 1 and 5", ErrInvalidArgument)
	ErrMissingCost      = fmt.Errorf("%w: request has no cost to invoice", ErrInvalidArgument)
	ErrUnknownCategory  = fmt.Errorf("%w: unknown service category", ErrInvalidArgument)
	ErrEmailExists      = fmt.Errorf("%w: a user with this email already exists", ErrInvalidArgument)
)
