package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is a domain error carrying the HTTP status and the exact client-facing
// message. Internal causes stay in Err and are logged, never exposed.
type Error struct {
	Code    string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// AsError unwraps err into a domain *Error if there is one in the chain.
func AsError(err error) (*Error, bool) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr, true
	}
	return nil, false
}

var (
	// ErrAlreadyPending is returned when a live, unconsumed registration
	// already exists for the email.
	ErrAlreadyPending = &Error{
		Code:    "ALREADY_PENDING",
		Status:  http.StatusInternalServerError,
		Message: "You have already signed up. Please check your email to verify your account",
	}

	// ErrAlreadyConfirmed is returned when the email already belongs to a
	// confirmed account.
	ErrAlreadyConfirmed = &Error{
		Code:    "ALREADY_CONFIRMED",
		Status:  http.StatusInternalServerError,
		Message: "You have already signed up and confirmed your account",
	}

	// ErrInvalidToken is returned for unknown or already consumed tokens.
	ErrInvalidToken = &Error{
		Code:    "INVALID_TOKEN",
		Status:  http.StatusNotFound,
		Message: "Invalid or already used verification token",
	}

	// ErrExpiredToken is returned when the token's TTL has passed.
	ErrExpiredToken = &Error{
		Code:    "EXPIRED_TOKEN",
		Status:  http.StatusGone,
		Message: "Verification token has expired. Please sign up again",
	}

	// ErrConflict is returned when the users unique index rejects a promotion
	// that raced with another verification.
	ErrConflict = &Error{
		Code:    "CONFLICT",
		Status:  http.StatusConflict,
		Message: "Account has already been verified",
	}
)

func newNotificationError(err error) *Error {
	return &Error{
		Code:    "NOTIFICATION_FAILED",
		Status:  http.StatusBadGateway,
		Message: "Failed to send the email. Please try again later",
		Err:     err,
	}
}

func newStoreError(err error) *Error {
	return &Error{
		Code:    "STORE_ERROR",
		Status:  http.StatusInternalServerError,
		Message: "internal server error",
		Err:     err,
	}
}

// FieldError is one reported validation violation, in the response shape the
// sign-up endpoint emits.
type FieldError struct {
	Location string `json:"location"`
	Param    string `json:"param"`
	Msg      string `json:"msg"`
}

// ValidationError aggregates every violated field, ordered firstName,
// lastName, email, password.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Fields))
}

// AsValidationError unwraps err into a *ValidationError if there is one.
func AsValidationError(err error) (*ValidationError, bool) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr, true
	}
	return nil, false
}
