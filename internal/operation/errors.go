package operation

import (
	"errors"
	"fmt"
)

// Storage-level errors, returned by Repository implementations.
var (
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrRecordNotFound   = errors.New("record does not exist")
	ErrRecordExists     = errors.New("record already exists")
)

// Errors observed by callers of the Service.
var (
	ErrNotFound      = errors.New("operation does not exist")
	ErrAlreadyExists = errors.New("operation already exists")
)

// ErrValidation is the parent of every input validation error.
var ErrValidation = errors.New("invalid input")

var (
	ErrInvalidCategory    = fmt.Errorf("%w: the category can be either \"income\" or \"expense\"", ErrValidation)
	ErrInvalidAmount      = fmt.Errorf("%w: the amount must be a number between 0 and 1,000,000, inclusive, with at most %d decimal places", ErrValidation, AmountPlaces)
	ErrInvalidDescription = fmt.Errorf("%w: the description must be 1 to %d characters long", ErrValidation, MaxDescriptionLen)
	ErrInvalidDate        = fmt.Errorf("%w: the date must be in the format DD-MM-YYYY", ErrValidation)
	ErrInvalidChoice      = fmt.Errorf("%w: there is no such choice", ErrValidation)
	ErrInvalidPerPage     = fmt.Errorf("%w: operations per page must be at least 1", ErrValidation)
)
