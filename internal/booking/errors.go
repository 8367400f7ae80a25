package booking

import (
	"errors"
	"net/http"
	"tripbook/internal/pricing"
	"tripbook/pkg/bookingclient"
)

var (
	ErrSessionNotFound       = errors.New("booking session not found")
	ErrTripRequired          = errors.New("trip with an id is required")
	ErrSeatNotFound          = errors.New("seat is not part of the loaded seat map")
	ErrSeatUnavailable       = errors.New("this seat is no longer available")
	ErrInvalidSeatID         = errors.New("seat information is invalid, reload and try again")
	ErrSeatLimitReached      = errors.New("one seat per adult is already selected")
	ErrInvalidPassengerCount = errors.New("at least one adult is required and infants cannot be negative")
	ErrTripTypeUnpriced      = errors.New("no price is available for this trip type")
	ErrSeatMapUnavailable    = errors.New("seat map is not available for this trip yet, try again later")
	ErrSeatLoadFailed        = errors.New("unable to load seat availability right now, try again later")
	ErrLoginRequired         = errors.New("sign in to continue your booking")
	ErrNoBooking             = errors.New("no booking has been submitted for this session")
	ErrPaymentIncomplete     = errors.New("payment is not complete for this booking")
	ErrBookingPending        = errors.New("an unpaid booking exists for this session, cancel it before changing the selection")
)

type ErrorCode string

const (
	ErrorCodeValidation      ErrorCode = "VALIDATION_ERROR"
	ErrorCodeNotFound        ErrorCode = "NOT_FOUND"
	ErrorCodeConflict        ErrorCode = "CONFLICT"
	ErrorCodeUnauthorized    ErrorCode = "UNAUTHORIZED"
	ErrorCodeUpstream        ErrorCode = "UPSTREAM_FAILURE"
	ErrorCodeInternalFailure ErrorCode = "INTERNAL_FAILURE"
)

// AppError is the JSON error body returned by the HTTP layer.
type AppError struct {
	Status  int       `json:"-"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"error"`
	Details []string  `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	return e.Message
}

func newAppError(status int, code ErrorCode, err error) *AppError {
	return &AppError{Status: status, Code: code, Message: err.Error()}
}

// toAppError maps domain and upstream errors onto HTTP statuses.
func toAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var validationErr *pricing.ValidationError
	if errors.As(err, &validationErr) {
		return &AppError{
			Status:  http.StatusUnprocessableEntity,
			Code:    ErrorCodeValidation,
			Message: "booking is not valid",
			Details: validationErr.Problems,
		}
	}

	switch {
	case errors.Is(err, ErrSessionNotFound), errors.Is(err, ErrSeatNotFound):
		return newAppError(http.StatusNotFound, ErrorCodeNotFound, err)
	case errors.Is(err, ErrTripRequired):
		return newAppError(http.StatusBadRequest, ErrorCodeValidation, err)
	case errors.Is(err, ErrInvalidSeatID),
		errors.Is(err, ErrInvalidPassengerCount),
		errors.Is(err, ErrTripTypeUnpriced):
		return newAppError(http.StatusUnprocessableEntity, ErrorCodeValidation, err)
	case errors.Is(err, ErrSeatUnavailable),
		errors.Is(err, ErrSeatLimitReached),
		errors.Is(err, ErrNoBooking),
		errors.Is(err, ErrPaymentIncomplete),
		errors.Is(err, ErrBookingPending):
		return newAppError(http.StatusConflict, ErrorCodeConflict, err)
	case errors.Is(err, ErrLoginRequired):
		return newAppError(http.StatusUnauthorized, ErrorCodeUnauthorized, err)
	case errors.Is(err, bookingclient.ErrUnauthorized):
		return newAppError(http.StatusUnauthorized, ErrorCodeUnauthorized, ErrLoginRequired)
	}

	var apiErr *bookingclient.APIError
	if errors.As(err, &apiErr) || errors.Is(err, bookingclient.ErrNotFound) {
		return &AppError{Status: http.StatusBadGateway, Code: ErrorCodeUpstream, Message: err.Error()}
	}

	return &AppError{Status: http.StatusInternalServerError, Code: ErrorCodeInternalFailure, Message: "Internal Server Error"}
}
