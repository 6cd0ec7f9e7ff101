package types

import (
	"errors"
	"net/http"
)

type ErrorKind uint8

const (
	KIND_VALIDATION ErrorKind = iota + 1
	KIND_NOT_FOUND
	KIND_CONFLICT
	KIND_UNAUTHORIZED
	KIND_EXTERNAL_SERVICE
	KIND_PERSISTENCE
)

// AppError carries a message that is safe to show to the caller.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) HTTPStatus() int {
	switch e.Kind {
	case KIND_VALIDATION:
		return http.StatusBadRequest
	case KIND_NOT_FOUND:
		return http.StatusNotFound
	case KIND_CONFLICT:
		return http.StatusConflict
	case KIND_UNAUTHORIZED:
		return http.StatusForbidden
	case KIND_EXTERNAL_SERVICE:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func NewAppError(kind ErrorKind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

var (
	ErrInvalidDateRange      = NewAppError(KIND_VALIDATION, "check-out date must be after check-in date")
	ErrDateInPast            = NewAppError(KIND_VALIDATION, "check-in date cannot be in the past")
	ErrEmptyCart             = NewAppError(KIND_VALIDATION, "your cart is empty")
	ErrInvalidRating         = NewAppError(KIND_VALIDATION, "rating must be between 1 and 5")
	ErrCommentTooLong        = NewAppError(KIND_VALIDATION, "comment must be at most 1000 characters")
	ErrRoomNotFound          = NewAppError(KIND_NOT_FOUND, "room not found")
	ErrRoomTypeNotFound      = NewAppError(KIND_NOT_FOUND, "room type not found")
	ErrBookingNotFound       = NewAppError(KIND_NOT_FOUND, "booking not found")
	ErrCartItemNotFound      = NewAppError(KIND_NOT_FOUND, "cart item not found")
	ErrFeedbackNotFound      = NewAppError(KIND_NOT_FOUND, "feedback not found")
	ErrRoomUnavailable       = NewAppError(KIND_CONFLICT, "one or more rooms are no longer available, please update your selection")
	ErrBookingNotCancellable = NewAppError(KIND_CONFLICT, "booking can no longer be cancelled")
	ErrBookingCompleted      = NewAppError(KIND_CONFLICT, "booking has already been completed and cannot be cancelled")
	ErrRoomNumberTaken       = NewAppError(KIND_CONFLICT, "room number already exists")
	ErrRoomTypeNameTaken     = NewAppError(KIND_CONFLICT, "room type name already exists")
	ErrRoomTypeInUse         = NewAppError(KIND_CONFLICT, "room type still has rooms assigned")
	ErrRoomHasBookings       = NewAppError(KIND_CONFLICT, "room has bookings and can only be deactivated")
	ErrNotOwner              = NewAppError(KIND_UNAUTHORIZED, "you do not have access to this booking")
	ErrPaymentProvider       = NewAppError(KIND_EXTERNAL_SERVICE, "payment provider is unavailable, please try again later")
	ErrStorageUnavailable    = NewAppError(KIND_EXTERNAL_SERVICE, "file storage is unavailable, please try again later")
	ErrPersistence           = NewAppError(KIND_PERSISTENCE, "we could not save your request, please try again")
	ErrBookingNumberTaken    = NewAppError(KIND_PERSISTENCE, "could not allocate a booking number, please try again")
	ErrInvalidSignature      = errors.New("invalid webhook signature")
	ErrMalformedPayload      = errors.New("malformed webhook payload")
	ErrWebhookNotConfigured  = errors.New("webhook secret is not configured")
)

// AsAppError maps err onto an AppError, falling back to a persistence failure.
func AsAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return ErrPersistence
}
