package util

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5"

	"github.com/alirazi1992/Update3-Ticketing/internal/domain"
)

// DomainError standardizes application errors surfaced over HTTP.
type DomainError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    map[string]any
	Err        error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError constructs a DomainError.
func NewDomainError(code, message string, status int, details map[string]any) *DomainError {
	return &DomainError{Code: code, Message: message, HTTPStatus: status, Details: details}
}

func NewValidationError(message string, details map[string]any) error {
	return NewDomainError("VALIDATION_FAILED", message, http.StatusBadRequest, details)
}

func NewNotFound(resource string, details map[string]any) error {
	if details == nil {
		details = map[string]any{}
	}
	return &DomainError{
		Code:       "NOT_FOUND",
		Message:    fmt.Sprintf("%s not found", resource),
		HTTPStatus: http.StatusNotFound,
		Details:    details,
	}
}

func NewUnauthorized(message string) error {
	return NewDomainError("UNAUTHORIZED", message, http.StatusUnauthorized, nil)
}

func NewForbidden(message string) error {
	return NewDomainError("FORBIDDEN", message, http.StatusForbidden, nil)
}

func NewConflict(message string, details map[string]any) error {
	return NewDomainError("CONFLICT", message, http.StatusConflict, details)
}

func NewBadRequest(message string) error {
	return NewDomainError("BAD_REQUEST", message, http.StatusBadRequest, nil)
}

func NewInternalError(err error) error {
	return &DomainError{
		Code:       "INTERNAL_ERROR",
		Message:    "internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// ToDomainError converts service and storage errors to DomainError.
func ToDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}

	switch {
	case errors.Is(err, domain.ErrTicketNotFound):
		return asDomain(NewNotFound("ticket", nil))
	case errors.Is(err, domain.ErrUserNotFound):
		return asDomain(NewNotFound("user", nil))
	case errors.Is(err, domain.ErrCategoryNotFound):
		return asDomain(NewNotFound("category", nil))
	case errors.Is(err, domain.ErrNotificationNotFound):
		return asDomain(NewNotFound("notification", nil))
	case errors.Is(err, domain.ErrEmailTaken):
		return asDomain(NewConflict(domain.ErrEmailTaken.Error(), nil))
	case errors.Is(err, domain.ErrCategoryNameTaken):
		return asDomain(NewConflict(domain.ErrCategoryNameTaken.Error(), nil))
	case errors.Is(err, domain.ErrCategoryInUse):
		return asDomain(NewConflict(domain.ErrCategoryInUse.Error(), nil))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return asDomain(NewUnauthorized(domain.ErrInvalidCredentials.Error()))
	case errors.Is(err, domain.ErrPasswordMismatch):
		return asDomain(NewBadRequest(domain.ErrPasswordMismatch.Error()))
	case errors.Is(err, pgx.ErrNoRows):
		return asDomain(NewNotFound("resource", nil))
	}

	return asDomain(NewInternalError(err))
}

// MapError is a convenience wrapper returning error.
func MapError(err error) error {
	return ToDomainError(err)
}

func asDomain(err error) *DomainError {
	de, ok := err.(*DomainError)
	if !ok {
		return &DomainError{
			Code:       "INTERNAL_ERROR",
			Message:    "internal server error",
			HTTPStatus: http.StatusInternalServerError,
			Err:        err,
		}
	}
	return de
}
