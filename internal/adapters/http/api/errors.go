package api

import (
	"errors"
	"fmt"

	"github.com/okian/childcare/internal/domain/balance"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest       = errors.New("bad request")
	ErrCalculation      = errors.New("calculation failed")
	ErrMethodNotAllowed = errors.New("method not allowed")
	ErrPanic            = errors.New("handler panic")
)

// Error codes returned to clients.
const (
	codeInvalidDate      = "invalid_date"
	codeMalformedUsage   = "malformed_usage"
	codeBadRequest       = "bad_request"
	codeMethodNotAllowed = "method_not_allowed"
	codeInternal         = "internal_error"
)

// CalculationErrorMessage is the single user-facing text for every failed
// calculation.
const CalculationErrorMessage = "error occurred during calculation"

// Wrap annotates err with the operation that produced it.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", op, err)
}

// WrapKind annotates err with op and a sentinel kind so errors.Is matches both.
func WrapKind(op string, kind, err error) error {
	if err == nil {
		return NewKind(op, kind)
	}
	return fmt.Errorf("%s: %w: %w", op, kind, err)
}

// NewKind returns a bare kind error for op.
func NewKind(op string, kind error) error {
	return fmt.Errorf("%s: %w", op, kind)
}

// errorCode maps an error onto the client-facing code.
func errorCode(err error) string {
	switch {
	case errors.Is(err, balance.ErrInvalidDate):
		return codeInvalidDate
	case errors.Is(err, balance.ErrMalformedUsage):
		return codeMalformedUsage
	case errors.Is(err, ErrMethodNotAllowed):
		return codeMethodNotAllowed
	case errors.Is(err, ErrPanic):
		return codeInternal
	default:
		return codeBadRequest
	}
}
