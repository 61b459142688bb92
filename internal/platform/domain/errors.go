package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain error so transport layers can map it.
type ErrorKind string

const (
	KindNotFound     ErrorKind = "NOT_FOUND"
	KindValidation   ErrorKind = "VALIDATION_ERROR"
	KindConflict     ErrorKind = "CONFLICT"
	KindForbidden    ErrorKind = "FORBIDDEN"
	KindUnauthorized ErrorKind = "UNAUTHORIZED"
)

// Error is a typed domain error.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with id %s not found", entity, id)}
}

// NewValidationError reports invalid input.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewConflictError reports a concurrent modification or uniqueness violation.
func NewConflictError(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

// NewForbiddenError reports an authenticated caller acting outside its rights.
func NewForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NewUnauthorizedError reports missing or invalid credentials.
func NewUnauthorizedError(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Message: msg}
}

// KindOf returns the kind of the first domain error in err's chain, or "".
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}

// IsNotFound reports whether err is a not-found domain error.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsValidation reports whether err is a validation domain error.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsConflict reports whether err is a conflict domain error.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsForbidden reports whether err is a forbidden domain error.
func IsForbidden(err error) bool { return KindOf(err) == KindForbidden }

// Currency codes used for monetary amounts.
const (
	CurrencyNPR = "NPR"
	CurrencyUSD = "USD"
)
